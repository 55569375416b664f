// Package docs registers the Swagger document served under /swagger.
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
        "/entities/{type}": {
            "get": {
                "summary": "List the user's entities grouped into active, completed and failed",
                "responses": {}
            },
            "post": {
                "summary": "Create a habit or skill with an initialized heatmap",
                "responses": {}
            }
        },
        "/entities/{type}/{name}/heatmap": {
            "get": {
                "summary": "Entity heatmap with labels in the requested language and the current cycle highlighted",
                "responses": {}
            }
        },
        "/entities/{type}/{name}/heatmap/{row}/{col}": {
            "put": {
                "summary": "Record progress on one heatmap cell",
                "responses": {}
            }
        },
        "/overview": {
            "get": {
                "summary": "Day-bucketed overview of every entity the user owns",
                "responses": {}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo is the document registered with swag.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Kanso Heatmap API",
	Description:      "Heatmap tracking for habits and skills.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
