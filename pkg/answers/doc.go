// Package answers holds the flat answer record built by the wizard and the
// derivation rules that fill dependent fields. Derive is a pure function run
// after every write: a derived field is only computed while it is empty, so an
// explicit user value is never overwritten.
package answers
