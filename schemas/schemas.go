// Package schemas holds the embedded JSON Schemas used for input validation.
package schemas

import _ "embed"

// ResultSchemaJSON is the JSON Schema for result documents.
//
//go:embed result.schema.json
var ResultSchemaJSON string
