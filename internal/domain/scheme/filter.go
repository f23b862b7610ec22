package scheme

import "strings"

// Criteria is the set of filter values chosen by a user.  Zero-valued fields
// do not restrict the result.
type Criteria struct {
	Text     string `json:"q,omitempty"`
	Type     Type   `json:"type,omitempty"`
	Level    Level  `json:"level,omitempty"`
	Category string `json:"category,omitempty"`
}

// IsEmpty reports whether c lets every scheme through.
func (c Criteria) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == "" && c.Type == "" && c.Level == "" && c.Category == ""
}

// Matches reports whether s satisfies every supplied criterion.
func Matches(s Scheme, c Criteria) bool {
	if text := strings.ToLower(strings.TrimSpace(c.Text)); text != "" {
		if !strings.Contains(strings.ToLower(s.Title), text) &&
			!strings.Contains(strings.ToLower(s.Description), text) {
			return false
		}
	}
	if c.Type != "" && s.Type != c.Type {
		return false
	}
	if c.Level != "" && s.Level != c.Level {
		return false
	}
	if c.Category != "" && !s.HasCategory(c.Category) {
		return false
	}
	return true
}

// Filter returns the schemes matching c in their original order.
func Filter(list []Scheme, c Criteria) []Scheme {
	out := make([]Scheme, 0, len(list))
	for _, s := range list {
		if Matches(s, c) {
			out = append(out, s)
		}
	}
	return out
}

//Personal.AI order the ending
