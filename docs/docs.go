// Package docs holds the Swagger document served at /swagger. Keep it in
// step with the @Summary/@Param annotations on the handlers.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/exports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filter the export log by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). If 'to' is date-only, it is treated as end-of-day inclusive.",
                "produces": ["application/json"],
                "tags": ["exports"],
                "summary": "List exports",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range. Date-only treated as end of day.", "name": "to", "in": "query"},
                    {"enum": ["error", "userByRoom", "deviceByRoom", "deviceByUser", "columnData"], "type": "string", "description": "Chart type", "name": "type", "in": "query"},
                    {"type": "string", "description": "Room, device or user label", "name": "label", "in": "query"},
                    {"enum": ["SUCCESS", "FAILED"], "type": "string", "description": "Outcome", "name": "status", "in": "query"},
                    {"type": "boolean", "description": "Only exports run by the caller", "name": "mine", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, exports", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/exports/files/{name}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["exports"],
                "summary": "Download export",
                "parameters": [
                    {"type": "string", "description": "File name returned by the dialog outcome", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/sessions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Opens a session for a chart selector and runs its first fetch.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Open list session",
                "parameters": [
                    {"description": "Selector", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.OpenSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/service.View"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/sessions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Get session view",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.View"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Close session",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/sessions/{id}/dialog": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Drives the export confirmation flow. Returns the next prompt or the export outcome.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Export dialog event",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true},
                    {"description": "Event", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.DialogRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.DialogStep"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/sessions/{id}/refresh": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Fetch failures are logged; the previous list is returned unchanged.",
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Refetch session records",
                "parameters": [{"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.View"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/sessions/{id}/search": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sessions"],
                "summary": "Search session records",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "id", "in": "path", "required": true},
                    {"description": "Query", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.SearchRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/service.View"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-in": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/auth/sign-up": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register operator",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.authCredentials"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "integer"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/ws": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Upgrades to WebSocket and pushes {\"type\":\"snapshot\",\"data\":View} whenever the session changes. The bearer token goes in the Authorization header or, for browsers, in ?token=.",
                "tags": ["sessions"],
                "summary": "Session snapshot stream",
                "parameters": [
                    {"type": "string", "description": "Session id", "name": "session", "in": "query", "required": true},
                    {"type": "string", "description": "Bearer token when no Authorization header is sent", "name": "token", "in": "query"}
                ],
                "responses": {
                    "101": {"description": "Switching Protocols"},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.authCredentials": {
            "type": "object",
            "required": ["password", "username"],
            "properties": {
                "password": {"type": "string", "example": "s3cret-pass"},
                "username": {"type": "string", "example": "operator"}
            }
        },
        "handlers.DialogRequest": {
            "type": "object",
            "required": ["event"],
            "properties": {
                "event": {"description": "export_requested, range_requested, range_chosen, confirmed, cancelled", "type": "string", "example": "export_requested"},
                "window": {"description": "last_7_days, last_1_month, last_3_months (range_chosen only)", "type": "string", "example": "last_7_days"}
            }
        },
        "handlers.OpenSessionRequest": {
            "type": "object",
            "required": ["type"],
            "properties": {
                "label": {"description": "Room, device or user the list is scoped to", "type": "string", "example": "P.101"},
                "type": {"description": "Chart type: error, userByRoom, deviceByRoom, deviceByUser, columnData", "type": "string", "example": "deviceByRoom"}
            }
        },
        "handlers.SearchRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string", "example": "laptop"}
            }
        },
        "models.DisplayTuple": {
            "type": "object",
            "properties": {
                "icon": {"type": "string"},
                "icon_color": {"type": "string"},
                "subtitle": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "service.DialogStep": {
            "type": "object",
            "properties": {
                "outcome": {"$ref": "#/definitions/service.ExportOutcome"},
                "prompt": {"$ref": "#/definitions/service.Prompt"},
                "state": {"type": "string"}
            }
        },
        "service.ExportOutcome": {
            "type": "object",
            "properties": {
                "file_name": {"type": "string"},
                "message": {"type": "string"},
                "ok": {"type": "boolean"},
                "rows": {"type": "integer"},
                "title": {"type": "string"}
            }
        },
        "service.ListItem": {
            "type": "object",
            "properties": {
                "display": {"$ref": "#/definitions/models.DisplayTuple"},
                "record": {"type": "object", "additionalProperties": true}
            }
        },
        "service.Prompt": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "options": {"type": "array", "items": {"$ref": "#/definitions/service.PromptOption"}},
                "title": {"type": "string"}
            }
        },
        "service.PromptOption": {
            "type": "object",
            "properties": {
                "event": {"type": "object", "additionalProperties": {"type": "string"}},
                "style": {"type": "string"},
                "text": {"type": "string"}
            }
        },
        "service.View": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "dialog": {"type": "string"},
                "generation": {"type": "integer"},
                "items": {"type": "array", "items": {"$ref": "#/definitions/service.ListItem"}},
                "query": {"type": "string"},
                "range": {"type": "object", "additionalProperties": {"type": "string"}},
                "selector": {"type": "object", "additionalProperties": {"type": "string"}},
                "session_id": {"type": "string"},
                "title": {"type": "string"},
                "total": {"type": "integer"},
                "updated_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Device Inventory API",
	Description:      "Room, device and user inventory lists with Excel export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
