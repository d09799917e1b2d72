package model

import "strings"

// InputType selects the prompt widget and the format validator for a question.
type InputType string

const (
	InputText     InputType = "text"
	InputTextarea InputType = "textarea"
	InputDomain   InputType = "domain"
	InputEmail    InputType = "email"
	InputURL      InputType = "url"
	InputNumber   InputType = "number"
	InputSelect   InputType = "select"
)

// AutoFill is the default sentinel for derived fields. It resolves to an empty
// answer so derivation can fill the value in.
const AutoFill = "AUTO_FILL"

// Valid reports whether t is one of the known input types.
func (t InputType) Valid() bool {
	switch t {
	case InputText, InputTextarea, InputDomain, InputEmail, InputURL, InputNumber, InputSelect:
		return true
	}
	return false
}

// ParseInputType normalises raw catalog values. Empty input maps to text.
func ParseInputType(raw string) (InputType, bool) {
	trimmed := InputType(strings.ToLower(strings.TrimSpace(raw)))
	if trimmed == "" {
		return InputText, true
	}
	return trimmed, trimmed.Valid()
}

// Question is a single wizard prompt. ID is the stable identity used by review
// and edit flows; Field is the answer record key.
type Question struct {
	ID           int       `json:"id" yaml:"id"`
	Field        string    `json:"field" yaml:"field"`
	Type         InputType `json:"type" yaml:"type"`
	Question     string    `json:"question" yaml:"question"`
	Guidance     string    `json:"guidance,omitempty" yaml:"guidance,omitempty"`
	Group        string    `json:"group" yaml:"group"`
	Required     bool      `json:"required,omitempty" yaml:"required,omitempty"`
	DefaultValue string    `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
	Options      []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// HasDefault reports whether the question declares any default, including the
// AutoFill sentinel.
func (q Question) HasDefault() bool {
	return q.DefaultValue != ""
}

// AutoFills reports whether the question defers to derived values.
func (q Question) AutoFills() bool {
	return q.DefaultValue == AutoFill
}

// ResolveDefault returns the value committed when the user submits an empty
// answer. AutoFill resolves to "".
func (q Question) ResolveDefault() string {
	if q.AutoFills() {
		return ""
	}
	return q.DefaultValue
}

// Template is a policy document with bracketed placeholder tokens.
type Template struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	HTML        string `json:"-" yaml:"-"`
}
