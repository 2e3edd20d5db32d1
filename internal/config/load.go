package config

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

var (
	schemaOnce  sync.Once
	schemaValue cue.Value
)

// documentSchema compiles the embedded CUE schema once and returns the
// #Document definition.
func documentSchema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		schemaValue = ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Document"))
	})
	return schemaValue
}

// LoadBaseline reads and validates the baseline specification file.
//
// Returns *MissingBaselineError if the file does not exist and
// *MalformedSpecError if it is not valid JSON, fails the embedded CUE
// schema, or violates the VariableSpec cross-field invariant.
func LoadBaseline(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &MissingBaselineError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("read baseline %s: %w", path, err)
	}

	if err := vetSchema(data); err != nil {
		return nil, &MalformedSpecError{Path: path, Reason: err.Error()}
	}

	cfg := New()
	if err := cfg.UnmarshalJSON(data); err != nil {
		return nil, &MalformedSpecError{Path: path, Reason: err.Error()}
	}

	for _, name := range cfg.names {
		if err := cfg.vars[name].Validate(); err != nil {
			return nil, &MalformedSpecError{Path: path, Variable: name, Reason: err.Error()}
		}
	}
	return cfg, nil
}

// vetSchema unifies the document with the embedded CUE schema. JSON is a
// subset of CUE, so the raw bytes compile directly.
func vetSchema(data []byte) error {
	schema := documentSchema()
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	ctx := schema.Context()
	doc := ctx.CompileBytes(data)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	if err := schema.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
