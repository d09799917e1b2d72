package wizard

import (
	"github.com/goliatone/go-policygen/pkg/answers"
	"github.com/goliatone/go-policygen/pkg/model"
)

// ReviewItem is one answer row on the review screen.
type ReviewItem struct {
	Question model.Question
	Value    string
	Display  string
	// Missing marks required questions without an answer.
	Missing bool
}

// ReviewGroup is a review section in first-seen group order.
type ReviewGroup struct {
	Name  string
	Items []ReviewItem
}

// Review builds the grouped review listing for the current record.
func (w *Wizard) Review() []ReviewGroup {
	groups := w.questions.Groups()
	out := make([]ReviewGroup, 0, len(groups))
	for _, group := range groups {
		section := ReviewGroup{Name: group.Name, Items: make([]ReviewItem, 0, len(group.Questions))}
		for _, q := range group.Questions {
			value := w.record.Get(q.Field)
			section.Items = append(section.Items, ReviewItem{
				Question: q,
				Value:    value,
				Display:  answers.DisplayValue(w.record, q.Field),
				Missing:  q.Required && value == "",
			})
		}
		out = append(out, section)
	}
	return out
}

// MissingRequired lists required questions that still have no answer.
func (w *Wizard) MissingRequired() []model.Question {
	var out []model.Question
	for _, q := range w.questions.All() {
		if q.Required && w.record.Get(q.Field) == "" {
			out = append(out, q)
		}
	}
	return out
}
