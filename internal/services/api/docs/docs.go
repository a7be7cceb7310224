// Package docs holds the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "tags": [
        {"name": "Search", "description": "Level search and ranking"},
        {"name": "Meta", "description": "Service health and build info"}
    ],
    "paths": {
        "/search": {
            "get": {
                "tags": ["Search"],
                "summary": "Search levels",
                "description": "One page of 20 levels and the size of the filtered set. Invalid parameters fall back to defaults. A session enables show_filter and userMoves.",
                "operationId": "searchLevels",
                "parameters": [
                    {"name": "search", "in": "query", "description": "Name text", "schema": {"type": "string"}},
                    {"name": "searchAuthor", "in": "query", "description": "Exact author name", "schema": {"type": "string"}},
                    {"name": "min_steps", "in": "query", "description": "Lowest leastMoves, needs max_steps", "schema": {"type": "integer"}},
                    {"name": "max_steps", "in": "query", "description": "Highest leastMoves, needs min_steps", "schema": {"type": "integer"}},
                    {"name": "time_range", "in": "query", "schema": {"type": "string", "enum": ["Day", "Week", "Month", "Year", "All"], "default": "All"}},
                    {"name": "sort_by", "in": "query", "schema": {"type": "string", "enum": ["least_moves", "ts", "reviews_score", "total_reviews", "players_beaten", "calc_difficulty_estimate"], "default": "ts"}},
                    {"name": "sort_dir", "in": "query", "schema": {"type": "string", "enum": ["asc", "desc"], "default": "desc"}},
                    {"name": "page", "in": "query", "description": "1-based page", "schema": {"type": "integer", "default": 1}},
                    {"name": "show_filter", "in": "query", "description": "Progress filter, needs a session", "schema": {"type": "string", "enum": ["hide_won", "only_attempted"]}},
                    {"name": "block_filter", "in": "query", "description": "Bitmask of excluded tiles: 1 block, 2 hole, 4 restricted", "schema": {"type": "integer", "default": 0}},
                    {"name": "difficulty_filter", "in": "query", "description": "Difficulty band name", "schema": {"type": "string", "enum": ["Pending", "Kindergarten", "Elementary", "Junior High", "Highschool", "Bachelors", "Masters", "PhD", "Professor", "Grandmaster", "Super Grandmaster"]}}
                ],
                "responses": {
                    "200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/domain.Result"}}}},
                    "405": {"description": "Method not allowed", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorBody"}, "example": {"error": "Method not allowed"}}}},
                    "500": {"description": "Error querying Levels", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorBody"}, "example": {"error": "Error querying Levels"}}}}
                }
            }
        },
        "/meta/health": {
            "get": {
                "tags": ["Meta"], "summary": "Health check", "operationId": "metaHealth",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.HealthResponse"}}}}}
            }
        },
        "/meta/ready": {
            "get": {
                "tags": ["Meta"], "summary": "Readiness probe with store checks", "operationId": "metaReady",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ReadyResponse"}}}}}
            }
        },
        "/meta/version": {
            "get": {
                "tags": ["Meta"], "summary": "Build and version info", "operationId": "metaVersion",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/version.BuildInfo"}}}}}
            }
        },
        "/meta/service": {
            "get": {
                "tags": ["Meta"], "summary": "Service info and uptime", "operationId": "metaService",
                "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/http.ServiceResponse"}}}}}
            }
        }
    },
    "components": {
        "securitySchemes": {
            "session": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}
        },
        "schemas": {
            "domain.Author": {
                "type": "object",
                "properties": {"_id": {"type": "string"}, "name": {"type": "string"}}
            },
            "domain.Level": {
                "type": "object",
                "properties": {
                    "_id": {"type": "string", "example": "614e1c5f8d2a4b0012345678"},
                    "name": {"type": "string", "example": "Tutorial"},
                    "slug": {"type": "string", "example": "sspenst/tutorial"},
                    "userId": {"$ref": "#/components/schemas/domain.Author"},
                    "leastMoves": {"type": "integer", "example": 12},
                    "data": {"type": "string", "example": "4000\n0103"},
                    "isDraft": {"type": "boolean"},
                    "ts": {"type": "integer", "example": 1700000000},
                    "calc_reviews_score_laplace": {"type": "number"},
                    "calc_reviews_score_avg": {"type": "number"},
                    "calc_reviews_count": {"type": "integer"},
                    "calc_stats_players_beaten": {"type": "integer"},
                    "calc_difficulty_estimate": {"type": "number"},
                    "userMoves": {"type": "integer", "description": "Set for signed-in searches"}
                }
            },
            "domain.Result": {
                "type": "object",
                "properties": {
                    "levels": {"type": "array", "items": {"$ref": "#/components/schemas/domain.Level"}},
                    "totalRows": {"type": "integer", "example": 41}
                }
            },
            "http.HealthResponse": {
                "type": "object",
                "properties": {"ok": {"type": "boolean"}, "service": {"type": "string"}, "started": {"type": "string"}, "now": {"type": "string"}}
            },
            "http.ReadyCheck": {
                "type": "object",
                "properties": {"name": {"type": "string"}, "status": {"type": "string"}, "error": {"type": "string"}}
            },
            "http.ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "example": "ok"},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/http.ReadyCheck"}},
                    "now": {"type": "string"}
                }
            },
            "http.ServiceResponse": {
                "type": "object",
                "properties": {"name": {"type": "string"}, "started": {"type": "string"}, "uptime": {"type": "integer"}}
            },
            "version.BuildInfo": {
                "type": "object",
                "properties": {"service": {"type": "string"}, "version": {"type": "string"}, "commit": {"type": "string"}, "date": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "thinky.gg search API",
	Description:      "Level search and ranking over the thinky.gg catalogue.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
