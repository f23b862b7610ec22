// Package scheme implements the Scheme aggregate: a scholarship, grant or
// loan opportunity with its eligibility lines, deadline and required
// documents.  Validation of admin input, deadline parsing, the eligibility
// filter and the in-memory catalog repository live here.
package scheme

import (
	"net/url"
	"strings"
	"time"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Enumerations
// ─────────────────────────────────────────────────────────────────────────────

// Type classifies the funding mechanism.
type Type string

const (
	TypeScholarship Type = "scholarship"
	TypeGrant       Type = "grant"
	TypeLoan        Type = "loan"
	TypeOther       Type = "other"
)

// IsValid reports whether t is a known Type.
func (t Type) IsValid() bool {
	switch t {
	case TypeScholarship, TypeGrant, TypeLoan, TypeOther:
		return true
	}
	return false
}

// Level is the administrative level offering the scheme.
type Level string

const (
	LevelNational Level = "national"
	LevelState    Level = "state"
	LevelLocal    Level = "local"
)

// IsValid reports whether l is a known Level.
func (l Level) IsValid() bool {
	switch l {
	case LevelNational, LevelState, LevelLocal:
		return true
	}
	return false
}

// ─────────────────────────────────────────────────────────────────────────────
// Scheme aggregate
// ─────────────────────────────────────────────────────────────────────────────

// Scheme is a single funding opportunity in the catalog.
type Scheme struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Eligibility []string  `json:"eligibility" yaml:"eligibility"`
	Deadline    time.Time `json:"deadline" yaml:"deadline"`
	Link        string    `json:"link" yaml:"link"`
	Documents   []string  `json:"documents" yaml:"documents"`
	Type        Type      `json:"type" yaml:"type"`
	Level       Level     `json:"level" yaml:"level"`
	Category    []string  `json:"category,omitempty" yaml:"category"`
	MinAge      *int      `json:"min_age,omitempty" yaml:"min_age"`
	MaxAge      *int      `json:"max_age,omitempty" yaml:"max_age"`
	MinIncome   *int64    `json:"min_income,omitempty" yaml:"min_income"`
	MaxIncome   *int64    `json:"max_income,omitempty" yaml:"max_income"`
}

// Clone returns a deep copy so callers can never mutate repository state
// through a returned value.
func (s Scheme) Clone() Scheme {
	out := s
	out.Eligibility = append([]string(nil), s.Eligibility...)
	out.Documents = append([]string(nil), s.Documents...)
	out.Category = append([]string(nil), s.Category...)
	if s.MinAge != nil {
		v := *s.MinAge
		out.MinAge = &v
	}
	if s.MaxAge != nil {
		v := *s.MaxAge
		out.MaxAge = &v
	}
	if s.MinIncome != nil {
		v := *s.MinIncome
		out.MinIncome = &v
	}
	if s.MaxIncome != nil {
		v := *s.MaxIncome
		out.MaxIncome = &v
	}
	return out
}

// HasCategory reports whether the scheme is tagged with category (exact,
// case-sensitive).
func (s Scheme) HasCategory(category string) bool {
	for _, c := range s.Category {
		if c == category {
			return true
		}
	}
	return false
}

// DeadlineLabel renders the deadline the way notifications and the
// assistant present it, e.g. "June 30, 2025".
func (s Scheme) DeadlineLabel() string {
	return s.Deadline.Format("January 2, 2006")
}

// ─────────────────────────────────────────────────────────────────────────────
// Draft and Patch (admin input)
// ─────────────────────────────────────────────────────────────────────────────

// Draft is the admin input for creating a scheme. Deadline is free text and
// parsed with ParseDeadline.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Eligibility []string `json:"eligibility"`
	Deadline    string   `json:"deadline"`
	Link        string   `json:"link"`
	Documents   []string `json:"documents"`
	Type        Type     `json:"type"`
	Level       Level    `json:"level"`
	Category    []string `json:"category"`
	MinAge      *int     `json:"min_age,omitempty"`
	MaxAge      *int     `json:"max_age,omitempty"`
	MinIncome   *int64   `json:"min_income,omitempty"`
	MaxIncome   *int64   `json:"max_income,omitempty"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Eligibility *[]string `json:"eligibility,omitempty"`
	Deadline    *string   `json:"deadline,omitempty"`
	Link        *string   `json:"link,omitempty"`
	Documents   *[]string `json:"documents,omitempty"`
	Type        *Type     `json:"type,omitempty"`
	Level       *Level    `json:"level,omitempty"`
	Category    *[]string `json:"category,omitempty"`
	MinAge      *int      `json:"min_age,omitempty"`
	MaxAge      *int      `json:"max_age,omitempty"`
	MinIncome   *int64    `json:"min_income,omitempty"`
	MaxIncome   *int64    `json:"max_income,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Eligibility == nil && p.Deadline == nil &&
		p.Link == nil && p.Documents == nil && p.Type == nil && p.Level == nil && p.Category == nil &&
		p.MinAge == nil && p.MaxAge == nil && p.MinIncome == nil && p.MaxIncome == nil
}

// NewScheme validates d and builds a Scheme with the given identifier.  The
// deadline must parse and lie strictly after now.
func NewScheme(id string, d Draft, now time.Time) (*Scheme, error) {
	deadline, err := ParseDeadline(d.Deadline, now)
	if err != nil {
		return nil, err
	}
	if !deadline.After(now) {
		return nil, errors.New(errors.ErrCodeDeadlineInvalid, "deadline must be in the future").WithDetail(d.Deadline)
	}
	if len(d.Category) == 0 {
		return nil, errors.New(errors.ErrCodeSchemeInvalid, "at least one category is required").WithDetail("category")
	}

	s := &Scheme{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Eligibility: cleanLines(d.Eligibility),
		Deadline:    deadline,
		Link:        strings.TrimSpace(d.Link),
		Documents:   cleanLines(d.Documents),
		Type:        d.Type,
		Level:       d.Level,
		Category:    cleanLines(d.Category),
		MinAge:      d.MinAge,
		MaxAge:      d.MaxAge,
		MinIncome:   d.MinIncome,
		MaxIncome:   d.MaxIncome,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply merges p into a copy of s and validates the result.  A supplied
// deadline must lie strictly after now; an untouched past deadline is kept.
func (s Scheme) Apply(p Patch, now time.Time) (Scheme, error) {
	out := s.Clone()
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		out.Description = strings.TrimSpace(*p.Description)
	}
	if p.Eligibility != nil {
		out.Eligibility = cleanLines(*p.Eligibility)
	}
	if p.Deadline != nil {
		deadline, err := ParseDeadline(*p.Deadline, now)
		if err != nil {
			return Scheme{}, err
		}
		if !deadline.After(now) {
			return Scheme{}, errors.New(errors.ErrCodeDeadlineInvalid, "deadline must be in the future").WithDetail(*p.Deadline)
		}
		out.Deadline = deadline
	}
	if p.Link != nil {
		out.Link = strings.TrimSpace(*p.Link)
	}
	if p.Documents != nil {
		out.Documents = cleanLines(*p.Documents)
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Level != nil {
		out.Level = *p.Level
	}
	if p.Category != nil {
		out.Category = cleanLines(*p.Category)
	}
	if p.MinAge != nil {
		out.MinAge = p.MinAge
	}
	if p.MaxAge != nil {
		out.MaxAge = p.MaxAge
	}
	if p.MinIncome != nil {
		out.MinIncome = p.MinIncome
	}
	if p.MaxIncome != nil {
		out.MaxIncome = p.MaxIncome
	}
	if err := out.Validate(); err != nil {
		return Scheme{}, err
	}
	return out, nil
}

// Validate enforces the field rules shared by create and update.
func (s Scheme) Validate() error {
	if len([]rune(s.Title)) < 2 {
		return invalid("title must be at least 2 characters", "title")
	}
	if len([]rune(s.Description)) < 10 {
		return invalid("description must be at least 10 characters", "description")
	}
	if len(s.Eligibility) == 0 || len([]rune(strings.Join(s.Eligibility, "\n"))) < 10 {
		return invalid("eligibility criteria must be at least 10 characters", "eligibility")
	}
	if s.Deadline.IsZero() {
		return errors.New(errors.ErrCodeDeadlineInvalid, "deadline is required").WithDetail("deadline")
	}
	if !isHTTPURL(s.Link) {
		return invalid("link must be an absolute http(s) URL", "link")
	}
	if len(s.Documents) == 0 || len([]rune(strings.Join(s.Documents, "\n"))) < 5 {
		return invalid("required documents must be at least 5 characters", "documents")
	}
	if !s.Type.IsValid() {
		return invalid("type must be one of scholarship|grant|loan|other", "type")
	}
	if !s.Level.IsValid() {
		return invalid("level must be one of national|state|local", "level")
	}
	if s.MinAge != nil && *s.MinAge < 0 || s.MaxAge != nil && *s.MaxAge < 0 {
		return invalid("age bounds must be non-negative", "age")
	}
	if s.MinAge != nil && s.MaxAge != nil && *s.MinAge > *s.MaxAge {
		return invalid("min_age must not exceed max_age", "age")
	}
	if s.MinIncome != nil && *s.MinIncome < 0 || s.MaxIncome != nil && *s.MaxIncome < 0 {
		return invalid("income bounds must be non-negative", "income")
	}
	if s.MinIncome != nil && s.MaxIncome != nil && *s.MinIncome > *s.MaxIncome {
		return invalid("min_income must not exceed max_income", "income")
	}
	return nil
}

func invalid(msg, field string) error {
	return errors.New(errors.ErrCodeSchemeInvalid, msg).WithDetail(field)
}

func isHTTPURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// cleanLines trims every entry and drops blanks.
func cleanLines(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

//Personal.AI order the ending
