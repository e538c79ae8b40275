// Package docs registers the OpenAPI description served by the swagger UI.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/revisions": {
            "get": {
                "summary": "List revisions, newest first",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "summary": "Upload a new document revision",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "memo", "in": "formData", "type": "string"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "413": {"description": "File too large"},
                    "422": {"description": "Text extraction failed"}
                }
            }
        },
        "/revisions/{id}": {
            "get": {
                "summary": "Get a revision including its extracted text",
                "produces": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {
                "summary": "Delete a revision and its stored file",
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Not found"}}
            }
        },
        "/revisions/{id}/file": {
            "get": {
                "summary": "Download the original uploaded file",
                "produces": ["application/pdf"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/revisions/{id}/memo": {
            "put": {
                "summary": "Replace the memo of a revision",
                "consumes": ["application/json"],
                "parameters": [{"name": "id", "in": "path", "type": "integer", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        },
        "/diff/{oldID}/{newID}": {
            "get": {
                "summary": "Line diff between the extracted text of two revisions",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "oldID", "in": "path", "type": "integer", "required": true},
                    {"name": "newID", "in": "path", "type": "integer", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "PDF History API",
	Description:      "Tracks uploaded document revisions and diffs their extracted text.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
