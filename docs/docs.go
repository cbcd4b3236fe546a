// Package docs registers the OpenAPI description served under /swagger/.
// Regenerate with: swag init -g cmd/api/main.go
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
        "/practitioners": {
            "get": {
                "produces": ["application/json"],
                "tags": ["practitioners"],
                "summary": "List practitioners",
                "parameters": [
                    {"type": "integer", "description": "Zero-based page index", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default 10, max 100)", "name": "size", "in": "query"},
                    {"type": "string", "description": "Sort field with optional direction, e.g. name,desc", "name": "sort", "in": "query"},
                    {"type": "boolean", "description": "Include deactivated practitioners", "name": "include_inactive", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/practitionerList"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/violation"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["practitioners"],
                "summary": "Register a practitioner",
                "parameters": [
                    {"type": "string", "description": "Replay key for safe retries", "name": "Idempotency-Key", "in": "header"},
                    {"description": "Practitioner payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createPractitioner"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/practitioner"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/violation"}}},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/practitioners/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["practitioners"],
                "summary": "Get a practitioner by id",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/practitioner"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["practitioners"],
                "summary": "Partially update a practitioner",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/updateRecord"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/practitioner"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/violation"}}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["practitioners"],
                "summary": "Deactivate a practitioner",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/clients": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "List clients",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "size", "in": "query"},
                    {"type": "string", "name": "sort", "in": "query"},
                    {"type": "boolean", "name": "include_inactive", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/clientList"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/violation"}}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Register a client",
                "parameters": [
                    {"type": "string", "name": "Idempotency-Key", "in": "header"},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/createClient"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/client"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/violation"}}},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/clients/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Get a client by id",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/client"}},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["clients"],
                "summary": "Partially update a client",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/updateRecord"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/client"}},
                    "400": {"description": "Bad Request", "schema": {"type": "array", "items": {"$ref": "#/definitions/violation"}}},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["clients"],
                "summary": "Deactivate a client",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "violation": {
            "type": "object",
            "properties": {"field": {"type": "string"}, "message": {"type": "string"}}
        },
        "address": {
            "type": "object",
            "required": ["street", "district", "city", "state"],
            "properties": {
                "street": {"type": "string"},
                "district": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "number": {"type": "string"},
                "complement": {"type": "string"}
            }
        },
        "pagination": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "size": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "createPractitioner": {
            "type": "object",
            "required": ["name", "email", "phone", "crm", "specialty", "address"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "crm": {"type": "string", "pattern": "^\\d{4,6}$"},
                "specialty": {"type": "string", "enum": ["ORTOPEDIA", "CARDIOLOGIA", "GINECOLOGIA", "DERMATOLOGIA"]},
                "address": {"$ref": "#/definitions/address"}
            }
        },
        "createClient": {
            "type": "object",
            "required": ["name", "email", "cpf", "phone", "address"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "cpf": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"$ref": "#/definitions/address"}
            }
        },
        "updateRecord": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"$ref": "#/definitions/address"}
            }
        },
        "practitioner": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "crm": {"type": "string"},
                "specialty": {"type": "string"},
                "address": {"$ref": "#/definitions/address"},
                "active": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "practitionerList": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "name": {"type": "string"},
                            "email": {"type": "string"},
                            "crm": {"type": "string"},
                            "specialty": {"type": "string"}
                        }
                    }
                },
                "pagination": {"$ref": "#/definitions/pagination"}
            }
        },
        "client": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "cpf": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"$ref": "#/definitions/address"},
                "active": {"type": "boolean"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "clientList": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "id": {"type": "string"},
                            "name": {"type": "string"},
                            "email": {"type": "string"},
                            "cpf": {"type": "string"}
                        }
                    }
                },
                "pagination": {"$ref": "#/definitions/pagination"}
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
	Title:            "Registry API",
	Description:      "Practitioner and client registry.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
