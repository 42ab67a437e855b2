// Package docs registers the ExamOrch OpenAPI document with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/sessions": {
            "get": {
                "tags": ["sessions"],
                "summary": "List exam sessions",
                "responses": {"200": {"description": "Sessions retrieved successfully", "schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "post": {
                "tags": ["sessions"],
                "summary": "Create an exam session",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSessionRequest"}}],
                "responses": {
                    "201": {"description": "Exam session created successfully", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/sessions/{id}": {
            "get": {
                "tags": ["sessions"],
                "summary": "Get an exam session",
                "parameters": [{"$ref": "#/parameters/sessionId"}],
                "responses": {
                    "200": {"description": "Session retrieved successfully", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Exam session not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/sessions/{id}/close-enrollment": {
            "patch": {
                "tags": ["sessions"],
                "summary": "Close enrollment for a session",
                "parameters": [{"$ref": "#/parameters/sessionId"}],
                "responses": {
                    "200": {"description": "Enrollment closed successfully", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Enrollment is already closed for this session", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Exam session not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/sessions/{id}/enroll": {
            "post": {
                "tags": ["candidates"],
                "summary": "Enroll a candidate, or add them to the waitlist when the session is full",
                "parameters": [
                    {"$ref": "#/parameters/sessionId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollRequest"}}
                ],
                "responses": {
                    "200": {"description": "Candidate enrolled successfully or added to waitlist", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Enrollment closed, duplicate or overlapping enrollment", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Exam session not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/sessions/{id}/enroll/{studentId}": {
            "delete": {
                "tags": ["candidates"],
                "summary": "Withdraw a candidate; a freed seat goes to the head of the waitlist",
                "parameters": [
                    {"$ref": "#/parameters/sessionId"},
                    {"in": "path", "name": "studentId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Candidate withdrawn", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Session already started or candidate not in session", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Exam session not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/sessions/{id}/candidates": {
            "get": {
                "tags": ["candidates"],
                "summary": "List enrolled candidates",
                "parameters": [{"$ref": "#/parameters/sessionId"}],
                "responses": {"200": {"description": "Enrolled candidates retrieved successfully", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/sessions/{id}/waitlist": {
            "get": {
                "tags": ["candidates"],
                "summary": "List waitlisted candidates",
                "parameters": [{"$ref": "#/parameters/sessionId"}],
                "responses": {"200": {"description": "Waitlisted candidates retrieved successfully", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/candidates/{studentId}/status": {
            "get": {
                "tags": ["candidates"],
                "summary": "Get a candidate's enrollment status across sessions",
                "parameters": [{"in": "path", "name": "studentId", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Candidate status retrieved successfully", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/sessions/{id}/proctors": {
            "get": {
                "tags": ["proctors"],
                "summary": "List proctors assigned to a session",
                "parameters": [{"$ref": "#/parameters/sessionId"}],
                "responses": {
                    "200": {"description": "Proctors retrieved successfully", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Exam session or proctor not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "tags": ["proctors"],
                "summary": "Assign a proctor to a session",
                "parameters": [
                    {"$ref": "#/parameters/sessionId"},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AssignProctorRequest"}}
                ],
                "responses": {
                    "200": {"description": "Proctor assigned to session successfully", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Proctor already assigned or booked on an overlapping session", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Exam session not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/sessions/{id}/proctors/{proctorId}": {
            "delete": {
                "tags": ["proctors"],
                "summary": "Remove a proctor from a session",
                "parameters": [
                    {"$ref": "#/parameters/sessionId"},
                    {"in": "path", "name": "proctorId", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Proctor removed from session successfully", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Proctor is not assigned to this session", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Exam session not found", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/proctors/{proctorId}/sessions": {
            "get": {
                "tags": ["proctors"],
                "summary": "List sessions a proctor is assigned to",
                "parameters": [{"in": "path", "name": "proctorId", "required": true, "type": "string"}],
                "responses": {"200": {"description": "Sessions retrieved successfully", "schema": {"$ref": "#/definitions/Envelope"}}}
            }
        }
    },
    "parameters": {
        "sessionId": {"in": "path", "name": "id", "required": true, "type": "string"}
    },
    "definitions": {
        "Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {"type": "object"}
            }
        },
        "CreateSessionRequest": {
            "type": "object",
            "required": ["title", "duration", "maxCandidates", "startTime"],
            "properties": {
                "title": {"type": "string", "minLength": 3, "maxLength": 200},
                "duration": {"type": "integer", "minimum": 1, "description": "minutes"},
                "maxCandidates": {"type": "integer", "minimum": 1},
                "startTime": {"type": "string", "format": "date-time"}
            }
        },
        "EnrollRequest": {
            "type": "object",
            "required": ["email", "name", "studentId"],
            "properties": {
                "email": {"type": "string", "format": "email"},
                "name": {"type": "string", "minLength": 2, "maxLength": 100},
                "studentId": {"type": "string", "minLength": 3, "maxLength": 50}
            }
        },
        "AssignProctorRequest": {
            "type": "object",
            "required": ["proctorId", "proctorName", "proctorEmail"],
            "properties": {
                "proctorId": {"type": "string", "minLength": 1, "maxLength": 100},
                "proctorName": {"type": "string", "minLength": 2, "maxLength": 100},
                "proctorEmail": {"type": "string", "format": "email"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{"http"},
	Title:            "ExamOrch API",
	Description:      "Exam session scheduling with capacity limits, waitlists and proctor assignment.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
