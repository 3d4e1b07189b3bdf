// Package schema holds the per-variant field-order tables of the vLEI
// credential attribute blocks.
//
// The tables live in schema.cue, embedded at build time and compiled through
// the CUE Go API. CUE itself enforces the table shape: a non-empty title, an
// https schema URL, and a unique label list that starts with the digest
// label "d".
//
// Changing a table is a one-line diff in schema.cue, directly comparable to
// the upstream schema document named in the table's schema field.
package schema
