package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seedServiceMock struct {
	seeded bool
	err    error
}

func (m *seedServiceMock) Run(ctx context.Context) (bool, error) {
	return m.seeded, m.err
}

func TestSeedHandlerFreshStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSeedHandler(&seedServiceMock{seeded: true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/seed", nil)
	c.Request = req

	handler.Seed(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, "database seeded with sample data", env.Message)
}

func TestSeedHandlerPopulatedStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSeedHandler(&seedServiceMock{seeded: false})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/seed", nil)
	c.Request = req

	handler.Seed(c)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "database already contains data, skipping seed", env.Message)
}
