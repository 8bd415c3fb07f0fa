// Package docs registers the OpenAPI document of the stats API with swag.
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
        "/health": {"get": {"tags": ["System"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}},
        "/ready": {"get": {"tags": ["System"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}},
        "/system/install": {"post": {"tags": ["System"], "summary": "Install Database Schema", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.MessageResponse"}}}}},
        "/playerstats": {
            "get": {"tags": ["playerstats"], "summary": "List all player stats", "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.PlayerMatchStat"}}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.MessageResponse"}}}},
            "post": {"tags": ["playerstats"], "summary": "Insert player stats", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/models.NewStats"}}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}, "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.MessageResponse"}}, "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.MessageResponse"}}}},
            "put": {"tags": ["playerstats"], "summary": "Update player stats", "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/models.NewStats"}}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}, "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/models.MessageResponse"}}}},
            "delete": {"tags": ["playerstats"], "summary": "Delete a match's player stats", "security": [{"BearerAuth": []}], "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/models.DeleteStatsRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.MessageResponse"}}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}
        },
        "/playerstats/{steamId}": {"get": {"tags": ["playerstats"], "summary": "Player stats by steam id", "parameters": [{"in": "path", "name": "steamId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/playerstats/match/{matchId}": {"get": {"tags": ["playerstats"], "summary": "Player stats by match", "parameters": [{"in": "path", "name": "matchId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/ranks": {"get": {"tags": ["ranks"], "summary": "Lifetime rank aggregates", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/ranks/season/{seasonId}": {"get": {"tags": ["ranks"], "summary": "Season rank rows", "parameters": [{"in": "path", "name": "seasonId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/ranks/{steamId}": {
            "get": {"tags": ["ranks"], "summary": "Player lifetime rank", "parameters": [{"in": "path", "name": "steamId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"tags": ["ranks"], "summary": "Reset a player's ranks", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "steamId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/ranks/{steamId}/seasons": {"get": {"tags": ["ranks"], "summary": "Player rank per season", "parameters": [{"in": "path", "name": "steamId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/ranks/{steamId}/season/{seasonId}": {
            "get": {"tags": ["ranks"], "summary": "Player rank for a season", "parameters": [{"in": "path", "name": "steamId", "type": "string", "required": true}, {"in": "path", "name": "seasonId", "type": "integer", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["ranks"], "summary": "Apply a rank delta", "description": "score and lastconnect replace the stored value, every other field is added to it.", "parameters": [{"in": "path", "name": "steamId", "type": "string", "required": true}, {"in": "path", "name": "seasonId", "type": "integer", "required": true}, {"in": "body", "name": "body", "required": true, "schema": {"type": "object", "additionalProperties": {"type": "number"}}}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "412": {"description": "Precondition Failed"}}}
        }
    },
    "definitions": {
        "models.MessageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "models.DeleteStatsRequest": {"type": "object", "required": ["match_id"], "properties": {"match_id": {"type": "integer"}}},
        "models.NewStats": {
            "type": "object",
            "required": ["api_key", "match_id", "map_id", "team_id", "steam_id", "name"],
            "properties": {
                "api_key": {"type": "string"}, "match_id": {"type": "integer"}, "map_id": {"type": "integer"},
                "team_id": {"type": "integer"}, "steam_id": {"type": "string"}, "name": {"type": "string"},
                "kills": {"type": "integer"}, "deaths": {"type": "integer"}, "roundsplayed": {"type": "integer"},
                "assists": {"type": "integer"}, "flashbang_assists": {"type": "integer"}, "teamkills": {"type": "integer"},
                "suicides": {"type": "integer"}, "headshot_kills": {"type": "integer"}, "damage": {"type": "integer"},
                "bomb_plants": {"type": "integer"}, "bomb_defuses": {"type": "integer"},
                "v1": {"type": "integer"}, "v2": {"type": "integer"}, "v3": {"type": "integer"}, "v4": {"type": "integer"}, "v5": {"type": "integer"},
                "k1": {"type": "integer"}, "k2": {"type": "integer"}, "k3": {"type": "integer"}, "k4": {"type": "integer"}, "k5": {"type": "integer"},
                "firstdeath_ct": {"type": "integer"}, "firstdeath_t": {"type": "integer"}, "firstkill_ct": {"type": "integer"}, "firstkill_t": {"type": "integer"}
            }
        },
        "models.PlayerMatchStat": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"}, "match_id": {"type": "integer"}, "map_id": {"type": "integer"},
                "team_id": {"type": "integer"}, "steam_id": {"type": "string"}, "name": {"type": "string"},
                "kills": {"type": "integer"}, "deaths": {"type": "integer"}, "roundsplayed": {"type": "integer"},
                "assists": {"type": "integer"}, "damage": {"type": "integer"}
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
	Title:            "G5 Stats API",
	Description:      "Per-match player statistics and seasonal ranks for Get5 matches.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
