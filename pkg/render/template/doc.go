// Package template defines the seam between callers that lay out pages around
// rendered policies (export bundles, previews) and the template engine that
// executes those layouts. The pongo2-backed implementation lives in the
// gotemplate subpackage.
package template
