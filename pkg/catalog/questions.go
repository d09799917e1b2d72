package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-policygen/pkg/model"
)

// Questions is the ordered, read-only question catalog.
type Questions struct {
	list         []model.Question
	byID         map[int]int
	byField      map[string]int
	nonSkippable map[int]struct{}
}

// NewQuestions validates and indexes the supplied questions. IDs and fields
// must be unique; select questions must declare options.
func NewQuestions(list []model.Question, nonSkippable []int) (*Questions, error) {
	q := &Questions{
		list:         make([]model.Question, 0, len(list)),
		byID:         make(map[int]int, len(list)),
		byField:      make(map[string]int, len(list)),
		nonSkippable: make(map[int]struct{}, len(nonSkippable)),
	}

	for _, raw := range list {
		question, err := normaliseQuestion(raw)
		if err != nil {
			return nil, err
		}
		if _, exists := q.byID[question.ID]; exists {
			return nil, fmt.Errorf("catalog: duplicate question id %d", question.ID)
		}
		if _, exists := q.byField[question.Field]; exists {
			return nil, fmt.Errorf("catalog: duplicate question field %q", question.Field)
		}
		q.byID[question.ID] = len(q.list)
		q.byField[question.Field] = len(q.list)
		q.list = append(q.list, question)
	}

	for _, id := range nonSkippable {
		if _, ok := q.byID[id]; !ok {
			return nil, fmt.Errorf("catalog: non-skippable id %d is not a question", id)
		}
		q.nonSkippable[id] = struct{}{}
	}

	return q, nil
}

func normaliseQuestion(raw model.Question) (model.Question, error) {
	q := raw
	q.Field = strings.TrimSpace(q.Field)
	q.Group = strings.TrimSpace(q.Group)
	if q.ID <= 0 {
		return model.Question{}, fmt.Errorf("catalog: question %q has invalid id %d", q.Field, q.ID)
	}
	if q.Field == "" {
		return model.Question{}, fmt.Errorf("catalog: question %d has no field", q.ID)
	}
	typ, ok := model.ParseInputType(string(q.Type))
	if !ok {
		return model.Question{}, fmt.Errorf("catalog: question %d has unknown type %q", q.ID, q.Type)
	}
	q.Type = typ
	if q.Type == model.InputSelect && len(q.Options) == 0 {
		return model.Question{}, fmt.Errorf("catalog: select question %d has no options", q.ID)
	}
	q.Options = append([]string(nil), q.Options...)
	return q, nil
}

// Len reports the number of questions.
func (q *Questions) Len() int {
	if q == nil {
		return 0
	}
	return len(q.list)
}

// All returns a copy of the questions in catalog order.
func (q *Questions) All() []model.Question {
	if q == nil {
		return nil
	}
	out := make([]model.Question, len(q.list))
	copy(out, q.list)
	return out
}

// At returns the question at position idx in catalog order.
func (q *Questions) At(idx int) (model.Question, bool) {
	if q == nil || idx < 0 || idx >= len(q.list) {
		return model.Question{}, false
	}
	return q.list[idx], true
}

// ByID looks a question up by its stable id.
func (q *Questions) ByID(id int) (model.Question, bool) {
	idx := q.IndexOf(id)
	if idx < 0 {
		return model.Question{}, false
	}
	return q.list[idx], true
}

// ByField looks a question up by its answer field.
func (q *Questions) ByField(field string) (model.Question, bool) {
	if q == nil {
		return model.Question{}, false
	}
	idx, ok := q.byField[field]
	if !ok {
		return model.Question{}, false
	}
	return q.list[idx], true
}

// IndexOf returns the catalog position of id, or -1.
func (q *Questions) IndexOf(id int) int {
	if q == nil {
		return -1
	}
	idx, ok := q.byID[id]
	if !ok {
		return -1
	}
	return idx
}

// Skippable reports whether the skip action is offered for id.
func (q *Questions) Skippable(id int) bool {
	if q == nil {
		return true
	}
	_, blocked := q.nonSkippable[id]
	return !blocked
}

// NonSkippable returns the sorted ids that cannot be skipped.
func (q *Questions) NonSkippable() []int {
	if q == nil {
		return nil
	}
	out := make([]int, 0, len(q.nonSkippable))
	for id := range q.nonSkippable {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Group is a review section: a label plus its questions in catalog order.
type Group struct {
	Name      string
	Questions []model.Question
}

// Groups buckets the questions by group, preserving first-seen group order.
func (q *Questions) Groups() []Group {
	if q == nil {
		return nil
	}
	var groups []Group
	index := make(map[string]int)
	for _, question := range q.list {
		pos, ok := index[question.Group]
		if !ok {
			pos = len(groups)
			index[question.Group] = pos
			groups = append(groups, Group{Name: question.Group})
		}
		groups[pos].Questions = append(groups[pos].Questions, question)
	}
	return groups
}
