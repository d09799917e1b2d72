// Package validation holds the per-input-type format checks applied to wizard
// answers. Only domain and email inputs carry a format rule; the remaining
// types rely on the prompt widget alone.
package validation
