package store

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed save.schema.json
var saveSchemaJSON []byte

var (
	saveSchemaOnce sync.Once
	saveSchema     *gojsonschema.Schema
	saveSchemaErr  error
)

// ValidateSave checks raw save JSON against the embedded schema.
func ValidateSave(data []byte) error {
	saveSchemaOnce.Do(func() {
		saveSchema, saveSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(saveSchemaJSON))
	})
	if saveSchemaErr != nil {
		return fmt.Errorf("compile save schema: %w", saveSchemaErr)
	}

	res, err := saveSchema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("validate save: %w", err)
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("save does not match schema: %s", strings.Join(msgs, "; "))
}
