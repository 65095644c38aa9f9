package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "DRRMO Records API",
        "description": "Silay City DRRMO flood-risk record keeping and archival",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Staff login and session management"},
        {"name": "Assessments", "description": "Flood-risk assessment records"},
        {"name": "Reports", "description": "Citizen-facing flood-risk reports"},
        {"name": "Certificates", "description": "Zoning certificates"},
        {"name": "FloodActivities", "description": "Flood event register activity"},
        {"name": "UserLogs", "description": "User activity log"},
        {"name": "Archival", "description": "Bulk archive and restore runs"},
        {"name": "Dashboard", "description": "Record tallies and flood impact"},
        {"name": "Exports", "description": "CSV and PDF exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate staff by email and password",
                "responses": {
                    "200": {"description": "Tokens issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Exchange refresh token",
                "responses": {
                    "200": {"description": "New token pair"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Revoke refresh token",
                "responses": {
                    "204": {"description": "Session revoked"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current user info",
                "responses": {
                    "200": {"description": "User info"}
                }
            }
        },
        "/assessments": {
            "get": {
                "tags": ["Assessments"],
                "summary": "List assessment records",
                "parameters": [
                    {"name": "barangay", "in": "query", "type": "string"},
                    {"name": "risk", "in": "query", "type": "string"},
                    {"name": "archived", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Records with pagination"}
                }
            },
            "post": {
                "tags": ["Assessments"],
                "summary": "Log a flood-risk assessment",
                "responses": {
                    "201": {"description": "Record created"}
                }
            }
        },
        "/assessments/{id}": {
            "get": {
                "tags": ["Assessments"],
                "summary": "Get one assessment record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Record"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List report records",
                "responses": {
                    "200": {"description": "Records with pagination"}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Generate a flood-risk report",
                "responses": {
                    "201": {"description": "Record created"}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Get one report record",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Record"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/certificates": {
            "get": {
                "tags": ["Certificates"],
                "summary": "List certificate records",
                "responses": {
                    "200": {"description": "Records with pagination"}
                }
            },
            "post": {
                "tags": ["Certificates"],
                "summary": "Issue a zoning certificate",
                "responses": {
                    "201": {"description": "Record created"}
                }
            }
        },
        "/certificates/{id}/pdf": {
            "get": {
                "tags": ["Certificates"],
                "summary": "Download the printable certificate",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF document"}
                }
            }
        },
        "/flood-activities": {
            "get": {
                "tags": ["FloodActivities"],
                "summary": "List flood event activity",
                "responses": {
                    "200": {"description": "Entries with pagination"}
                }
            },
            "post": {
                "tags": ["FloodActivities"],
                "summary": "Log a flood event register change",
                "responses": {
                    "201": {"description": "Entry created"}
                }
            }
        },
        "/user-logs": {
            "get": {
                "tags": ["UserLogs"],
                "summary": "List user activity entries",
                "responses": {
                    "200": {"description": "Entries with pagination"}
                }
            }
        },
        "/records/archive": {
            "post": {
                "tags": ["Archival"],
                "summary": "Run a bulk archive over old activity records",
                "responses": {
                    "200": {"description": "Run result with per-kind counts"},
                    "400": {"description": "Invalid run options"}
                }
            }
        },
        "/records/restore": {
            "post": {
                "tags": ["Archival"],
                "summary": "Run a bulk restore over archived records",
                "responses": {
                    "200": {"description": "Run result with per-kind counts"},
                    "400": {"description": "Invalid run options"}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Record tallies and flood impact figures",
                "responses": {
                    "200": {"description": "Dashboard aggregate"}
                }
            }
        },
        "/exports/{dataset}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export a record register as CSV or PDF",
                "parameters": [
                    {"name": "dataset", "in": "path", "type": "string", "required": true},
                    {"name": "format", "in": "query", "type": "string"},
                    {"name": "archived", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "File download"},
                    "400": {"description": "Unknown dataset or format"}
                }
            }
        }
    },
    "definitions": {
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"type": "object"},
                "meta": {"type": "object"}
            }
        },
        "ArchivalResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["DRY_RUN", "NOTHING_TO_DO", "CANCELLED", "COMPLETED"]},
                "cutoff": {"type": "string", "format": "date-time"},
                "started_at": {"type": "string", "format": "date-time"},
                "previewed": {"type": "object"},
                "applied": {"type": "object"}
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
