package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "FTV User Import API",
        "description": "CSV user import preview for the FTV media club dashboard",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "Authorization": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "UserImport", "description": "CSV user import preview, report and template"},
        {"name": "Observability", "description": "Health and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Observability"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Import metrics snapshot",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ImportMetricsSnapshot"}}
                }
            }
        },
        "/api/v1/users/import-csv-preview": {
            "post": {
                "tags": ["UserImport"],
                "summary": "Preview a CSV user import",
                "description": "Parses, normalizes and validates an uploaded CSV without persisting anything",
                "security": [{"Authorization": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true, "description": "CSV file"}
                ],
                "responses": {
                    "200": {"description": "Every row validated", "schema": {"$ref": "#/definitions/UserImportPreviewResponse"}},
                    "400": {"description": "Invalid upload, parse failure or row errors", "schema": {"$ref": "#/definitions/UserImportValidationFailure"}},
                    "401": {"description": "Missing Authorization header", "schema": {"$ref": "#/definitions/Failure"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/Failure"}},
                    "500": {"description": "Unexpected failure", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/api/v1/users/import-csv-report": {
            "post": {
                "tags": ["UserImport"],
                "summary": "Download a validation report",
                "security": [{"Authorization": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true, "description": "CSV file"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "description": "Report format, csv by default"}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "400": {"description": "Invalid upload or parse failure", "schema": {"$ref": "#/definitions/Failure"}},
                    "401": {"description": "Missing Authorization header", "schema": {"$ref": "#/definitions/Failure"}},
                    "413": {"description": "File too large", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/api/v1/users/import-csv-template": {
            "get": {
                "tags": ["UserImport"],
                "summary": "Download the import template",
                "security": [{"Authorization": []}],
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "Template file", "schema": {"type": "file"}},
                    "401": {"description": "Missing Authorization header", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        }
    },
    "definitions": {
        "Failure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ParsedUser": {
            "type": "object",
            "properties": {
                "vezetek_nev": {"type": "string"},
                "kereszt_nev": {"type": "string"},
                "email": {"type": "string"},
                "telefonszam": {"type": "string"},
                "stab": {"type": "string"},
                "kezdes_eve": {"type": "integer"},
                "tagozat": {"type": "string"},
                "radio": {"type": "string"},
                "gyartasvezeto": {"type": "boolean"},
                "mediatana": {"type": "boolean"},
                "osztalyfonok": {"type": "boolean"},
                "osztalyai": {"type": "array", "items": {"type": "string"}}
            }
        },
        "ImportSummary": {
            "type": "object",
            "properties": {
                "total_users": {"type": "integer"},
                "users_with_stab": {"type": "integer"},
                "users_with_radio": {"type": "integer"},
                "users_with_classes": {"type": "integer"},
                "production_managers": {"type": "integer"},
                "media_teachers": {"type": "integer"},
                "class_teachers": {"type": "integer"}
            }
        },
        "ModelPreview": {
            "type": "object",
            "properties": {
                "stabs": {"type": "array", "items": {"type": "string"}},
                "radio_stabs": {"type": "array", "items": {"type": "string"}},
                "classes": {"type": "array", "items": {"type": "string"}},
                "class_teacher_assignments": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UserImportPreviewResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "parsed_users": {"type": "array", "items": {"$ref": "#/definitions/ParsedUser"}},
                "summary": {"$ref": "#/definitions/ImportSummary"},
                "model_preview": {"$ref": "#/definitions/ModelPreview"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UserImportValidationFailure": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "errors": {"type": "array", "items": {"type": "string"}},
                "warnings": {"type": "array", "items": {"type": "string"}},
                "valid_records": {"type": "integer"},
                "invalid_records": {"type": "integer"},
                "total_records": {"type": "integer"}
            }
        },
        "ImportMetricsSnapshot": {
            "type": "object",
            "properties": {
                "requests_total": {"type": "integer"},
                "average_request_duration_ms": {"type": "number"},
                "previews_total": {"type": "integer"},
                "previews_failed": {"type": "integer"},
                "rows_accepted": {"type": "integer"},
                "rows_rejected": {"type": "integer"},
                "goroutines": {"type": "integer"}
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
