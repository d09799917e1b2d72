// Package catalog loads the question and policy template catalogs. Both are
// immutable once loaded: the bundled data under data/ is parsed on first use
// by Default, and LoadFS accepts any filesystem with the same layout so
// callers can ship their own questions or policy documents.
//
// Layout:
//
//	questions.yaml   ordered questions plus the non-skippable id list
//	policies.yaml    policy manifest (id, name, description, file)
//	policies/*.html  policy documents referenced by the manifest
package catalog
