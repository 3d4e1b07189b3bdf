package credential

import (
	"fmt"
	"slices"

	"github.com/roach88/vlei/internal/said"
	"github.com/roach88/vlei/internal/schema"
)

// binding maps each non-digest label of a variant to its value.
type binding map[string]string

// tableFor returns the field-order table of variant.
func tableFor(variant Variant) (schema.Table, error) {
	reg, err := schema.Default()
	if err != nil {
		return schema.Table{}, fmt.Errorf("load schema tables: %w", err)
	}
	return reg.Lookup(string(variant))
}

// assemble lays out b in table order with an empty digest entry. Every table
// label must be bound and every binding must name a table label.
func assemble(table schema.Table, b binding) (said.Sad, error) {
	sad := make(said.Sad, 0, len(table.Labels))
	for _, label := range table.Labels {
		if label == LabelDigest {
			sad = append(sad, said.F(label, ""))
			continue
		}
		v, ok := b[label]
		if !ok {
			return nil, fmt.Errorf("%w: %s: label %q has no value", ErrSchemaDrift, table.Variant, label)
		}
		sad = append(sad, said.F(label, v))
	}

	for label := range b {
		if label == LabelDigest || !slices.Contains(table.Labels, label) {
			return nil, fmt.Errorf("%w: %s: value bound to unknown label %q", ErrSchemaDrift, table.Variant, label)
		}
	}

	return sad, nil
}

// derive assembles the variant's mapping, has d digest it, and returns the
// mapping with the adopted digest. Errors from d are returned unchanged.
func derive(d Digester, variant Variant, b binding) (record, error) {
	table, err := tableFor(variant)
	if err != nil {
		return record{}, err
	}

	sad, err := assemble(table, b)
	if err != nil {
		return record{}, err
	}

	_, completed, err := d.Saidify(sad)
	if err != nil {
		return record{}, err
	}

	digest, ok := completed.Get(LabelDigest)
	if !ok || digest == "" {
		return record{}, ErrNoDigest
	}

	return record{
		variant: variant,
		digest:  SAID(digest),
		sad:     sad.With(LabelDigest, digest),
	}, nil
}
