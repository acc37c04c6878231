package score

import (
	"errors"
	"strings"
)

// Category classifies a raw URL into the slot it fills on a Subject.
type Category int

const (
	CategoryOther Category = iota
	CategoryModel
	CategoryDataset
	CategoryCode
)

func (c Category) String() string {
	switch c {
	case CategoryModel:
		return "model"
	case CategoryDataset:
		return "dataset"
	case CategoryCode:
		return "code"
	default:
		return "other"
	}
}

// ErrNoModelURL is returned when a URL group contains no model URL.
// A Subject cannot be graded without one.
var ErrNoModelURL = errors.New("no model URL in group")

// Subject is the entity being graded: one required model URL plus optional
// code and dataset URLs. Immutable once built; one Subject per grading pass.
type Subject struct {
	ModelURL   string
	CodeURL    string
	DatasetURL string
}

// Classify maps a raw URL to the Subject slot it belongs to.
// Hugging Face dataset paths take precedence over the model default.
func Classify(raw string) Category {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return CategoryOther
	}
	if strings.Contains(s, "huggingface.co") {
		if strings.Contains(s, "/datasets/") || strings.HasSuffix(strings.TrimRight(s, "/"), "/datasets") {
			return CategoryDataset
		}
		return CategoryModel
	}
	if strings.Contains(s, "github.com") {
		return CategoryCode
	}
	return CategoryOther
}

// ParseGroup builds a Subject from one comma-separated group of URLs.
// Within a category the last URL wins. URLs that classify as "other"
// are ignored. ErrNoModelURL is returned when the group has no model URL.
func ParseGroup(line string) (Subject, error) {
	var s Subject
	for _, part := range strings.Split(line, ",") {
		u := strings.TrimSpace(part)
		if u == "" {
			continue
		}
		switch Classify(u) {
		case CategoryModel:
			s.ModelURL = u
		case CategoryDataset:
			s.DatasetURL = u
		case CategoryCode:
			s.CodeURL = u
		}
	}
	if s.ModelURL == "" {
		return Subject{}, ErrNoModelURL
	}
	return s, nil
}
