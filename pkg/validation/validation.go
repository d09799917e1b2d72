package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/goliatone/go-policygen/pkg/model"
)

// Messages surfaced next to the offending field.
const (
	MessageDomain = "Please enter a valid domain with extension (e.g., example.com, mydomain.net)"
	MessageEmail  = "Please enter a valid email address (e.g., user@domain.com)"
)

var (
	// ErrInvalidDomain reports a domain that does not match the label.tld shape.
	ErrInvalidDomain = errors.New(MessageDomain)
	// ErrInvalidEmail reports a malformed email address.
	ErrInvalidEmail = errors.New(MessageEmail)
)

// The domain pattern matches a single label followed by a TLD. Multi-label
// hosts such as a.b.example.com are rejected.
var (
	domainPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]{0,61}[A-Za-z0-9]?\.[A-Za-z]{2,}$`)
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Validator checks a non-empty answer. Empty answers are never passed in.
type Validator func(value string) error

// Domain validates a bare domain such as example.com.
func Domain(value string) error {
	if !domainPattern.MatchString(value) {
		return ErrInvalidDomain
	}
	return nil
}

// Email validates a permissive user@host.tld address.
func Email(value string) error {
	if !emailPattern.MatchString(value) {
		return ErrInvalidEmail
	}
	return nil
}

// For returns the format validator for an input type, or nil when the type
// carries no format rule.
func For(t model.InputType) Validator {
	switch t {
	case model.InputDomain:
		return Domain
	case model.InputEmail:
		return Email
	case model.InputText, model.InputTextarea, model.InputURL, model.InputNumber, model.InputSelect:
		return nil
	default:
		return nil
	}
}

// Check validates value against the question type. Empty values always pass;
// required-ness is enforced by the caller.
func Check(q model.Question, value string) error {
	if value == "" {
		return nil
	}
	fn := For(q.Type)
	if fn == nil {
		return nil
	}
	return fn(value)
}

// Issue describes a single invalid answer in a record.
type Issue struct {
	QuestionID int    `json:"questionId"`
	Field      string `json:"field"`
	Message    string `json:"message"`
}

func (i Issue) Error() string {
	return i.Field + ": " + i.Message
}

// Answers checks every question against a flat answer map and returns the
// issues in catalog order. Missing required answers are reported when
// requireAll is set and the question has no usable default.
func Answers(questions []model.Question, values map[string]string, requireAll bool) []Issue {
	var issues []Issue
	for _, q := range questions {
		value := strings.TrimSpace(values[q.Field])
		if value == "" {
			if requireAll && q.Required && q.ResolveDefault() == "" {
				issues = append(issues, Issue{QuestionID: q.ID, Field: q.Field, Message: "required"})
			}
			continue
		}
		if err := Check(q, value); err != nil {
			issues = append(issues, Issue{QuestionID: q.ID, Field: q.Field, Message: err.Error()})
		}
	}
	return issues
}
