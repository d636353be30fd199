package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "ClassTrack API",
        "description": "Academic task tracking backend: courses, assignments, statistics",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Courses", "description": "Course management with completion progress"},
        {"name": "Assignments", "description": "Assignment lifecycle and audit trail"},
        {"name": "Statistics", "description": "Aggregate figures over all assignments"},
        {"name": "Seed", "description": "Sample data for fresh installs"}
    ],
    "paths": {
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses with assignment stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing required field"}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Course not found"}
                }
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Replace course fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CourseRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Course not found"}
                }
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course and cascade to its assignments",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"}
                }
            }
        },
        "/assignments": {
            "get": {
                "tags": ["Assignments"],
                "summary": "List assignments joined with course info",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Assignments"],
                "summary": "Create assignment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing required field"}
                }
            }
        },
        "/assignments/week": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Incomplete assignments due within 7 days",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/assignments/{id}": {
            "get": {
                "tags": ["Assignments"],
                "summary": "Get assignment by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Assignment not found"}
                }
            },
            "put": {
                "tags": ["Assignments"],
                "summary": "Replace assignment fields (course not updatable)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated"},
                    "404": {"description": "Assignment not found"}
                }
            },
            "delete": {
                "tags": ["Assignments"],
                "summary": "Delete assignment, recording it in the audit trail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"}
                }
            }
        },
        "/assignments/{id}/complete": {
            "patch": {
                "tags": ["Assignments"],
                "summary": "Toggle completion flag",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "New completion state", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Assignment not found"}
                }
            }
        },
        "/stats": {
            "get": {
                "tags": ["Statistics"],
                "summary": "Aggregate statistics over all assignments",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/seed": {
            "post": {
                "tags": ["Seed"],
                "summary": "Insert sample data when the store is empty",
                "responses": {
                    "200": {"description": "Seeded or skipped"},
                    "500": {"description": "Storage failure"}
                }
            }
        }
    },
    "definitions": {
        "CourseRequest": {
            "type": "object",
            "required": ["name", "code", "color", "credits", "semester"],
            "properties": {
                "name": {"type": "string"},
                "code": {"type": "string"},
                "color": {"type": "string"},
                "credits": {"type": "integer"},
                "semester": {"type": "string"}
            }
        },
        "AssignmentRequest": {
            "type": "object",
            "required": ["courseId", "title", "dueDate", "priority"],
            "properties": {
                "courseId": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string", "format": "date"},
                "priority": {"type": "string", "enum": ["low", "medium", "high"]},
                "points": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {"type": "object"},
                "message": {"type": "string"},
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
