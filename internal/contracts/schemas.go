package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/omriland/CasaTrack-sub000/internal/core/domain"
	"github.com/omriland/CasaTrack-sub000/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	// Add every schema as a resource first so $ref between documents
	// resolves, then compile and register them under generated keys.
	for _, root := range []string{"payloads", "events"} {
		err := fs.WalkDir(schemas.SchemasFS, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".json") {
				file, openErr := schemas.SchemasFS.Open(path)
				if openErr != nil {
					return openErr
				}
				defer file.Close()
				if err := compiler.AddResource(path, file); err != nil {
					log.Fatalf("failed to add schema resource %s: %v", path, err)
				}
			}
			return nil
		})
		if err != nil {
			log.Fatalf("error walking and adding schema resources: %v", err)
		}
	}

	for _, root := range []string{"payloads", "events"} {
		err := fs.WalkDir(schemas.SchemasFS, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, ".json") {
				schema, compileErr := compiler.Compile(path)
				if compileErr != nil {
					log.Fatalf("could not compile schema %s: %v", path, compileErr)
				}
				compiledSchemas[generateKeyFromPath(path)] = schema
			}
			return nil
		})
		if err != nil {
			log.Fatalf("error walking and compiling schemas: %v", err)
		}
	}
}

// generateKeyFromPath turns "payloads/property-create/v1.json" into
// "PropertyCreate/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 3 {
		return ""
	}

	caser := cases.Title(language.English)
	var nameBuilder strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		nameBuilder.WriteString(caser.String(p))
	}

	version := strings.Replace(parts[2], "v", "", 1) + ".0.0"
	return fmt.Sprintf("%s/%s", nameBuilder.String(), version)
}

// Validate checks body against the named schema. A failure is returned
// as domain.ErrValidation so callers can short-circuit before any
// storage or network call.
func Validate(name, version string, body []byte) error {
	key := fmt.Sprintf("%s/%s", name, version)
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("%w: body is not valid JSON: %v", domain.ErrValidation, err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}

// ValidatePayload checks a request payload against the current version
// of the named payload schema.
func ValidatePayload(name string, body []byte) error {
	return Validate(name, "1.0.0", body)
}
