package schema

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var embedded []byte

// Table is the field-order table of one credential variant.
type Table struct {
	Variant string   `json:"variant"`
	Title   string   `json:"title"`
	Schema  string   `json:"schema"`
	Labels  []string `json:"labels"`
}

// Registry maps variant names to their tables.
type Registry struct {
	tables map[string]Table
	order  []string
}

var loadDefault = sync.OnceValues(func() (*Registry, error) {
	return Load("schema.cue", embedded)
})

// Default returns the registry compiled from the embedded schema.cue.
// Compilation happens once per process.
func Default() (*Registry, error) {
	return loadDefault()
}

// Source returns the embedded CUE source.
func Source() []byte {
	return slices.Clone(embedded)
}

// Load compiles CUE source into a Registry. filename is used for error
// positions only.
func Load(filename string, src []byte) (*Registry, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	variantsVal := v.LookupPath(cue.ParsePath("variants"))
	if !variantsVal.Exists() {
		return nil, &CompileError{
			Field:   "variants",
			Message: "variants is required",
			Pos:     v.Pos(),
		}
	}

	iter, err := variantsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	reg := &Registry{tables: make(map[string]Table)}
	for iter.Next() {
		table, err := parseTable(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		reg.tables[table.Variant] = table
		reg.order = append(reg.order, table.Variant)
	}

	if len(reg.order) == 0 {
		return nil, &CompileError{
			Field:   "variants",
			Message: "at least one variant is required",
			Pos:     variantsVal.Pos(),
		}
	}

	return reg, nil
}

// parseTable extracts a single variant table.
func parseTable(name string, v cue.Value) (Table, error) {
	table := Table{Variant: name}

	var err error
	if table.Title, err = lookupString(v, "title"); err != nil {
		return Table{}, err
	}
	if table.Schema, err = lookupString(v, "schema"); err != nil {
		return Table{}, err
	}

	labelsVal := v.LookupPath(cue.ParsePath("labels"))
	iter, err := labelsVal.List()
	if err != nil {
		return Table{}, formatCUEError(err)
	}
	for iter.Next() {
		label, err := iter.Value().String()
		if err != nil {
			return Table{}, formatCUEError(err)
		}
		table.Labels = append(table.Labels, label)
	}

	return table, nil
}

func lookupString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

// Lookup returns the table for variant.
func (r *Registry) Lookup(variant string) (Table, error) {
	t, ok := r.tables[variant]
	if !ok {
		return Table{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	t.Labels = slices.Clone(t.Labels)
	return t, nil
}

// Tables returns every table in declaration order.
func (r *Registry) Tables() []Table {
	out := make([]Table, 0, len(r.order))
	for _, name := range r.order {
		t, _ := r.Lookup(name)
		out = append(out, t)
	}
	return out
}

// Match returns the variants whose label list equals labels exactly,
// in declaration order. The two authorization variants share a label list,
// so a match is not necessarily unique.
func (r *Registry) Match(labels []string) []string {
	var out []string
	for _, name := range r.order {
		if slices.Equal(r.tables[name].Labels, labels) {
			out = append(out, name)
		}
	}
	return out
}

// CompileError represents a schema compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
