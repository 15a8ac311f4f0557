// Package schemas embeds the JSON Schema documents that request
// payloads, broker events and LLM output are validated against.
package schemas

import "embed"

//go:embed payloads events
var SchemasFS embed.FS
