// Package docs holds the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Liveness",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/poules/layout": {
            "get": {
                "tags": ["poules"],
                "summary": "Poule sizes, tables and round-robin order for a player count",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Number of players", "name": "players", "in": "query", "required": true},
                    {"type": "boolean", "description": "Allow a poule of two", "name": "allow_two", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.PouleLayoutResponse"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/tournaments": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["tournaments"],
                "summary": "List the caller's club tournaments",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Tournament"}}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tournaments"],
                "summary": "Create a tournament for the caller's club",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Tournament", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateTournamentInput"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Tournament"}},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/tournaments/{tournamentID}": {
            "get": {
                "tags": ["tournaments"],
                "summary": "Get a tournament",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Tournament"}},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/tournaments/{tournamentID}/poule-results": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["progression"],
                "summary": "Replace the round-robin result rows of a tournament",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"description": "One row per participant per played match", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.PouleResultsInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        },
        "/tournaments/{tournamentID}/generate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["progression"],
                "summary": "Generate poules, bracket and classification matches",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}
            }
        },
        "/tournaments/{tournamentID}/matches/{matchID}/result": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["progression"],
                "summary": "Record a match result",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true},
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Scores and winner", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.MatchResultInput"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"},
                    "409": {"description": "Conflict"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/tournaments/{tournamentID}/finalize": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["progression"],
                "summary": "Compute and store final positions and points",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "lists unfinished_match_ids"}}
            }
        },
        "/tournaments/{tournamentID}/state": {
            "get": {
                "tags": ["progression"],
                "summary": "Current matches, standings and mode of a tournament",
                "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Tournament ID", "name": "tournamentID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "handlers.PouleLayoutResponse": {
            "type": "object",
            "properties": {
                "players": {"type": "integer"},
                "allow_two": {"type": "boolean"},
                "layout": {
                    "type": "object",
                    "properties": {
                        "sizes": {"type": "array", "items": {"type": "integer"}},
                        "tables_needed": {"type": "integer"}
                    }
                },
                "schedules": {"type": "array", "items": {"type": "array", "items": {"type": "object"}}}
            }
        },
        "handlers.PouleResultsInput": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.PouleResult"}}
            }
        },
        "models.PouleResult": {
            "type": "object",
            "properties": {
                "poule_number": {"type": "integer"},
                "participant_id": {"type": "integer"},
                "participant_name": {"type": "string"},
                "match_points": {"type": "integer"},
                "points": {"type": "integer"},
                "turns": {"type": "integer"},
                "best_run": {"type": "integer"}
            }
        },
        "models.Tournament": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "tenant_id": {"type": "string"},
                "name": {"type": "string"},
                "format": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "services.CreateTournamentInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "format": {"type": "string"}
            }
        },
        "services.MatchResultInput": {
            "type": "object",
            "properties": {
                "score1": {"type": "integer"},
                "score2": {"type": "integer"},
                "winner_id": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Carambole progression API",
	Description:      "Poule, bracket and classification progression for carom billiards tournaments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
