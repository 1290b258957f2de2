// Package api contains the OpenAPI documentation served at /docs.
//
// The operations are described by the annotations of the handlers in
// internal/controllers, keep both in sync.
package api

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
        "/": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "API root",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/healthz": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/version": {
            "get": {
                "tags": [
                    "General"
                ],
                "summary": "API version",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "General"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1": {
            "get": {
                "tags": [
                    "v1"
                ],
                "summary": "v1 API",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "v1"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/master-budgets": {
            "get": {
                "tags": [
                    "Master Budgets"
                ],
                "summary": "Get master budgets",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Master Budgets"
                ],
                "summary": "Create master budgets",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "options": {
                "tags": [
                    "Master Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/master-budgets/{id}": {
            "get": {
                "tags": [
                    "Master Budgets"
                ],
                "summary": "Get master budget",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Master Budgets"
                ],
                "summary": "Delete master budget",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "tags": [
                    "Master Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/budgets": {
            "get": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Get budgets",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Create budgets",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "options": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/budgets/allocated": {
            "get": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Get allocated budget",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/budgets/{id}": {
            "get": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Get budget",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Delete budget",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "tags": [
                    "Budgets"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/monthly-distributions": {
            "get": {
                "tags": [
                    "Monthly Distributions"
                ],
                "summary": "Get monthly distributions",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "post": {
                "tags": [
                    "Monthly Distributions"
                ],
                "summary": "Create monthly distributions",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "options": {
                "tags": [
                    "Monthly Distributions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/monthly-distributions/{id}": {
            "get": {
                "tags": [
                    "Monthly Distributions"
                ],
                "summary": "Get monthly distribution",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Monthly Distributions"
                ],
                "summary": "Delete monthly distribution",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "tags": [
                    "Monthly Distributions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/budget-lookup": {
            "get": {
                "tags": [
                    "Budget Lookup"
                ],
                "summary": "Look up budget figures",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "Budget Lookup"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/reallocation-sessions": {
            "post": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Open reallocation session",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "options": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/reallocation-sessions/{id}": {
            "get": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Get reallocation session",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "patch": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Change reallocation field",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Close reallocation session",
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/reallocation-sessions/{id}/submit": {
            "post": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Submit reallocation",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "tags": [
                    "Reallocation Sessions"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/budget-reallocations": {
            "get": {
                "tags": [
                    "Budget Reallocations"
                ],
                "summary": "Get budget reallocations",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "Budget Reallocations"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/budget-reallocations/{id}": {
            "get": {
                "tags": [
                    "Budget Reallocations"
                ],
                "summary": "Get budget reallocation",
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "404": {
                        "description": "Not Found"
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            },
            "options": {
                "tags": [
                    "Budget Reallocations"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs",
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID of the resource",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/v1/budget-template": {
            "get": {
                "tags": [
                    "Budget Uploads"
                ],
                "summary": "Budget template",
                "responses": {
                    "200": {
                        "description": "OK"
                    }
                }
            },
            "options": {
                "tags": [
                    "Budget Uploads"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/budget-uploads": {
            "post": {
                "tags": [
                    "Budget Uploads"
                ],
                "summary": "Upload budget",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "options": {
                "tags": [
                    "Budget Uploads"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        },
        "/v1/budget-uploads/preview": {
            "post": {
                "tags": [
                    "Budget Uploads"
                ],
                "summary": "Preview budget upload",
                "responses": {
                    "201": {
                        "description": "Created"
                    },
                    "400": {
                        "description": "Bad Request"
                    }
                }
            },
            "options": {
                "tags": [
                    "Budget Uploads"
                ],
                "summary": "Allowed HTTP verbs",
                "responses": {
                    "204": {
                        "description": "No Content"
                    }
                },
                "description": "Returns an empty response with the HTTP Header \"allow\" set to the allowed HTTP verbs"
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Budget Desk",
	Description:      "The backend for budget allocation and reallocation",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
