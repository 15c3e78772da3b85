// Package docs registers the swagger specification. Regenerate with
// `swag init -g cmd/api/main.go` after changing handler annotations.
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
        "/expenses": {
            "post": {
                "tags": ["expenses"],
                "summary": "Create a new expense",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Validation Error"}}
            }
        },
        "/expenses/group/{groupId}": {
            "get": {
                "tags": ["expenses"],
                "summary": "List group expenses",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/expenses/group/{groupId}/{id}": {
            "get": {
                "tags": ["expenses"],
                "summary": "Get a single expense",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["expenses"],
                "summary": "Delete an expense",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/balances/group/{groupId}": {
            "get": {
                "tags": ["balances"],
                "summary": "Get group net balances",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/balances/group/{groupId}/statements": {
            "get": {
                "tags": ["balances"],
                "summary": "Get group owe statements",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/groups": {
            "get": {
                "tags": ["groups"],
                "summary": "List the caller's groups",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["groups"],
                "summary": "Create a new group",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/groups/{id}": {
            "get": {
                "tags": ["groups"],
                "summary": "Get a group by id",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/groups/join": {
            "post": {
                "tags": ["groups"],
                "summary": "Join a group by code",
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/receipts/parse": {
            "post": {
                "tags": ["receipts"],
                "summary": "Parse recognized receipt text",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/receipts/scan": {
            "post": {
                "tags": ["receipts"],
                "summary": "Scan a receipt image",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications/group/{groupId}": {
            "get": {
                "tags": ["notifications"],
                "summary": "Get a group's activity feed",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "SplitLedger API",
	Description:      "Group expense ledger with netted balance settlement",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
