package wizard

import (
	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/model"
)

// Placeholder returns the input hint for q. URL questions suggest a path
// under the site once a domain is known.
func Placeholder(q model.Question, rec answers.Record) string {
	if q.Type == model.InputURL {
		if domain := rec.Get(answers.FieldPrimaryWebsiteDomain); domain != "" {
			return answers.BaseURL(domain) + "/..."
		}
	}
	switch q.Type {
	case model.InputDomain:
		return "Enter domain (e.g., example.com)..."
	case model.InputEmail:
		return "Enter email address..."
	case model.InputURL:
		return "Enter URL..."
	case model.InputNumber:
		return "Enter number..."
	case model.InputSelect:
		return "Select an option..."
	default:
		return "Enter your answer..."
	}
}
