package mockbank

import "github.com/xeipuuv/gojsonschema"

var loginSchemaLoader = gojsonschema.NewStringLoader(`
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["username", "password"],
	"additionalProperties": false,
	"properties": {
		"username": {
			"type": "string",
			"minLength": 1
		},
		"password": {
			"type": "string",
			"minLength": 1
		}
	}
}`)

var createUserSchemaLoader = gojsonschema.NewStringLoader(`
{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["email", "username", "password"],
	"additionalProperties": false,
	"properties": {
		"email": {
			"type": "string",
			"format": "email",
			"minLength": 3
		},
		"username": {
			"type": "string",
			"minLength": 3,
			"maxLength": 64
		},
		"password": {
			"type": "string",
			"minLength": 8
		}
	}
}`)
