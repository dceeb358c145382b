// Package schema generates JSON Schema for the clipregex settings document.
package schema

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"clipregex/internal/config"
)

const (
	schemaURI   = "https://json-schema.org/draft/2020-12/schema"
	title       = "clipregex configuration"
	description = "Settings object, or a bare list of rules in the older format"

	configDef = "Config"
	ruleDef   = "Rule"
)

// Generate produces a JSON Schema accepting either the settings object
// derived from config.Config or a top-level array of rules.
func Generate() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}

	settings := r.Reflect(&config.Config{})

	defs := settings.Definitions
	if defs == nil {
		defs = jsonschema.Definitions{}
	}

	settings.Version = ""
	settings.Definitions = nil
	defs[configDef] = settings

	if rule, ok := defs[ruleDef]; ok && rule.Properties != nil {
		if regex, ok := rule.Properties.Get("regex"); ok {
			regex.Format = "regex"
		}
	}

	return &jsonschema.Schema{
		Version:     schemaURI,
		Title:       title,
		Description: description,
		OneOf: []*jsonschema.Schema{
			{Ref: "#/$defs/" + configDef},
			{
				Type:        "array",
				Description: "Legacy format: the list of replacement rules",
				Items:       &jsonschema.Schema{Ref: "#/$defs/" + ruleDef},
			},
		},
		Definitions: defs,
	}
}

// GenerateJSON produces a JSON Schema as bytes, pretty-printed when indent
// is true.
func GenerateJSON(indent bool) ([]byte, error) {
	s := Generate()

	var (
		data []byte
		err  error
	)

	if indent {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}

	if err != nil {
		return nil, errors.Wrap(err, "marshaling schema to JSON")
	}

	return append(data, '\n'), nil
}
