package score

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed schema/grade.json
var gradeSchemaJSON []byte

var (
	gradeSchemaOnce sync.Once
	gradeSchema     *jsonschema.Schema
	gradeSchemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	gradeSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		gradeSchema, gradeSchemaErr = compiler.Compile(gradeSchemaJSON)
		if gradeSchemaErr != nil {
			gradeSchemaErr = fmt.Errorf("compiling grade schema: %w", gradeSchemaErr)
		}
	})
	return gradeSchema, gradeSchemaErr
}

// ValidateJSON checks one serialized result line against the output
// contract: all keys present, scores in [0,1] or the error sentinel,
// latencies non-negative integers.
func ValidateJSON(line []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	result := schema.ValidateJSON(line)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}
