// Package render turns a policy template plus an answer record into finished
// HTML. Rendering is a literal placeholder substitution pass over an ordered
// token table followed by a linkify pass that wraps e-mail addresses, phone
// numbers and bare URLs in anchors. Output is produced on demand and never
// cached; the engine is safe for concurrent use once constructed.
package render
