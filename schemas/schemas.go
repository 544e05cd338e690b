// Package schemas embeds the JSON Schemas used for metadata validation.
package schemas

import _ "embed"

// CharmcraftSchemaJSON is the JSON Schema for charmcraft.yaml.
//
//go:embed charmcraft.schema.json
var CharmcraftSchemaJSON string
