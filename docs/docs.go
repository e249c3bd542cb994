// Package docs holds the swagger specification served at /docs/doc.json.
// Maintained by hand in the swag template format; keep it in sync with the
// handler annotations when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Scoracle"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/leagues": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "List leagues",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/leagues/{league}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "Get league",
                "parameters": [
                    {"type": "string", "name": "league", "in": "path", "required": true, "description": "League identifier"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/leagues/{league}/logo": {
            "get": {
                "produces": ["application/json"],
                "tags": ["leagues"],
                "summary": "League logo URL",
                "parameters": [
                    {"type": "string", "name": "league", "in": "path", "required": true, "description": "League identifier"},
                    {"type": "boolean", "name": "dark", "in": "query", "description": "Prefer dark-background variant"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/leagues/{league}/teams/{team}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["teams"],
                "summary": "Resolve team",
                "parameters": [
                    {"type": "string", "name": "league", "in": "path", "required": true, "description": "League identifier"},
                    {"type": "string", "name": "team", "in": "path", "required": true, "description": "Team identifier"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/providers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["providers"],
                "summary": "Provider info",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/cache/clear": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Clear caches",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Scoracle Teams API",
	Description:      "Team resolution API mapping loosely-specified league and team identifiers to canonical records via pluggable providers, with feeder-league traversal and curated overrides.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
