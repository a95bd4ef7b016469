package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Audit Management API",
        "description": "Internal audit management: risk catalog, audit programs, tests, findings and action plans.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http", "https"],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in with email or username",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Session already active", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "409": {"description": "Session already active", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke a refresh token",
                "security": [
                    {"BearerAuth": []}
                ],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/auth/change-password": {
            "post": {
                "tags": ["Auth"],
                "summary": "Change the current password",
                "security": [
                    {"BearerAuth": []}
                ],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user with granted permission keys",
                "security": [
                    {"BearerAuth": []}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/access/check": {
            "get": {
                "tags": ["Access"],
                "summary": "Evaluate route rules for the current session",
                "parameters": [
                    {"name": "rules", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/companies": {
            "get": {
                "tags": ["Companies"],
                "summary": "List companies",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.company.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Companies"],
                "summary": "Create company",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.company.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/companies/{id}": {
            "get": {
                "tags": ["Companies"],
                "summary": "Get company",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.company.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Companies"],
                "summary": "Update company",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.company.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Companies"],
                "summary": "Delete company",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.company.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/processes": {
            "get": {
                "tags": ["Processes"],
                "summary": "List processes",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.process.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Processes"],
                "summary": "Create process",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.process.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/processes/{id}": {
            "get": {
                "tags": ["Processes"],
                "summary": "Get process",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.process.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Processes"],
                "summary": "Update process",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.process.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Processes"],
                "summary": "Delete process",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.process.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/processes/{id}/responsibles": {
            "put": {
                "tags": ["Processes"],
                "summary": "Replace process responsibles",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.process.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/processes/{id}/controls": {
            "put": {
                "tags": ["Processes"],
                "summary": "Replace process controls",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.process.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/controls": {
            "get": {
                "tags": ["Controls"],
                "summary": "List controls",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.control.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Controls"],
                "summary": "Create control",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.control.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/controls/{id}": {
            "get": {
                "tags": ["Controls"],
                "summary": "Get control",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.control.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Controls"],
                "summary": "Update control",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.control.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Controls"],
                "summary": "Delete control",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.control.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/controls/{id}/risks": {
            "put": {
                "tags": ["Controls"],
                "summary": "Replace control risks",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.control.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/risks": {
            "get": {
                "tags": ["Risks"],
                "summary": "List risks",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.risk.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Risks"],
                "summary": "Create risk",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.risk.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/risks/{id}": {
            "get": {
                "tags": ["Risks"],
                "summary": "Get risk",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.risk.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Risks"],
                "summary": "Update risk",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.risk.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Risks"],
                "summary": "Delete risk",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.risk.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/risks/{id}/processes": {
            "put": {
                "tags": ["Risks"],
                "summary": "Replace risk processes",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.risk.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.event.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Events"],
                "summary": "Create event",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.event.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/events/{id}": {
            "get": {
                "tags": ["Events"],
                "summary": "Get event",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.event.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update event",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.event.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.event.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/events/{id}/risks": {
            "put": {
                "tags": ["Events"],
                "summary": "Replace event risks",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.event.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audits": {
            "get": {
                "tags": ["Audit Programs"],
                "summary": "List audit programs",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.audit.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Audit Programs"],
                "summary": "Create audit program",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.audit.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audits/{id}": {
            "get": {
                "tags": ["Audit Programs"],
                "summary": "Get audit program",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.audit.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Audit Programs"],
                "summary": "Update audit program",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.audit.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Audit Programs"],
                "summary": "Delete audit program",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.audit.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audits/{id}/participants": {
            "put": {
                "tags": ["Audit Programs"],
                "summary": "Replace audit program participants",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.audit.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audits/{id}/scope": {
            "put": {
                "tags": ["Audit Programs"],
                "summary": "Replace audit program scope",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.audit.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audit-tests": {
            "get": {
                "tags": ["Audit Tests"],
                "summary": "List audit tests",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.audit_test.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Audit Tests"],
                "summary": "Create audit test",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.audit_test.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audit-tests/{id}": {
            "get": {
                "tags": ["Audit Tests"],
                "summary": "Get audit test",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.audit_test.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Audit Tests"],
                "summary": "Update audit test",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.audit_test.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Audit Tests"],
                "summary": "Delete audit test",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.audit_test.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audit-tests/{id}/participants": {
            "put": {
                "tags": ["Audit Tests"],
                "summary": "Replace audit test participants",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.audit_test.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audit-tests/{id}/controls": {
            "put": {
                "tags": ["Audit Tests"],
                "summary": "Replace audit test controls",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.audit_test.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/findings": {
            "get": {
                "tags": ["Findings"],
                "summary": "List findings",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.finding.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Findings"],
                "summary": "Create finding",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.finding.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/findings/{id}": {
            "get": {
                "tags": ["Findings"],
                "summary": "Get finding",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.finding.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Findings"],
                "summary": "Update finding",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.finding.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Findings"],
                "summary": "Delete finding",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.finding.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/findings/{id}/controls": {
            "put": {
                "tags": ["Findings"],
                "summary": "Replace finding controls",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.finding.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/plans": {
            "get": {
                "tags": ["Action Plans"],
                "summary": "List action plans",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.plan.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Action Plans"],
                "summary": "Create action plan",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.plan.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/plans/{id}": {
            "get": {
                "tags": ["Action Plans"],
                "summary": "Get action plan",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.plan.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Action Plans"],
                "summary": "Update action plan",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.plan.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Action Plans"],
                "summary": "Delete action plan",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.plan.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/plans/{id}/responsibles": {
            "put": {
                "tags": ["Action Plans"],
                "summary": "Replace action plan responsibles",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.plan.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.user.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.user.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.user.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update user",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.user.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.user.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/roles": {
            "get": {
                "tags": ["Roles"],
                "summary": "List roles",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.role.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Roles"],
                "summary": "Create role",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.role.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/roles/{id}": {
            "get": {
                "tags": ["Roles"],
                "summary": "Get role",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.role.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Roles"],
                "summary": "Update role",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.role.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Roles"],
                "summary": "Delete role",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.role.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/roles/{id}/permissions": {
            "put": {
                "tags": ["Roles"],
                "summary": "Replace role permissions",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.role.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/plans/{id}/tasks": {
            "get": {
                "tags": ["Tasks"],
                "summary": "List plan tasks",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.task.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Tasks"],
                "summary": "Create task",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.task.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/tasks/{id}": {
            "get": {
                "tags": ["Tasks"],
                "summary": "Get task",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.task.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Tasks"],
                "summary": "Update task",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.task.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Tasks"],
                "summary": "Delete task",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.task.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/permissions": {
            "get": {
                "tags": ["Permissions"],
                "summary": "List permissions",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.permission.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/permissions/{id}": {
            "put": {
                "tags": ["Permissions"],
                "summary": "Enable or disable a permission",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission update.permission.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audit-tests/{id}/documents": {
            "get": {
                "tags": ["Documents"],
                "summary": "List test evidence",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.document.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Documents"],
                "summary": "Upload evidence (multipart file)",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.document.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/documents/{id}/link": {
            "get": {
                "tags": ["Documents"],
                "summary": "Signed download link",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.document.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/documents/{id}": {
            "delete": {
                "tags": ["Documents"],
                "summary": "Delete evidence",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission delete.document.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/documents/download": {
            "get": {
                "tags": ["Documents"],
                "summary": "Download evidence by signed token",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/audit-logs": {
            "get": {
                "tags": ["Audit Logs"],
                "summary": "List audit trail entries",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.audit_log.",
                "parameters": [
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "boolean"},
                    {"name": "resource", "in": "query", "type": "string"},
                    {"name": "resource_id", "in": "query", "type": "string"},
                    {"name": "user_id", "in": "query", "type": "string"},
                    {"name": "action", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard counters",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.dashboard.",
                "parameters": [
                    {"name": "company_id", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Metrics"],
                "summary": "Aggregated service counters",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.dashboard.",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue a report",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission create.report.",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {"202": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report job status",
                "security": [
                    {"BearerAuth": []}
                ],
                "description": "Requires permission get.report.",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "No session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "403": {"description": "Missing permission", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/reports/download": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished report by signed token",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
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
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
