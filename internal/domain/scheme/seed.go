package scheme

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/turtacn/ScholarAI/pkg/errors"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SampleSchemes returns the built-in demo catalog.
func SampleSchemes() []Scheme {
	categories := []string{"General", "SC", "ST", "OBC"}
	return []Scheme{
		{
			ID:          "1",
			Title:       "National Scholarship Portal Scholarships",
			Description: "Various scholarships offered by the central government for students.",
			Eligibility: []string{"Indian citizen", "Enrolled in recognized institution", "Family income below 6 lakhs per annum"},
			Deadline:    date(2025, time.June, 30),
			Link:        "https://scholarships.gov.in",
			Documents:   []string{"Aadhaar card", "Income certificate", "Previous academic records"},
			Type:        TypeScholarship,
			Level:       LevelNational,
			Category:    append([]string(nil), categories...),
			MinAge:      intPtr(16),
			MaxAge:      intPtr(32),
			MinIncome:   int64Ptr(0),
			MaxIncome:   int64Ptr(600000),
		},
		{
			ID:          "2",
			Title:       "Prime Minister's Research Fellowship (PMRF)",
			Description: "Fellowship for doctoral studies in IITs, IISERs and other premier institutions.",
			Eligibility: []string{"Master's degree with 60% marks", "Selected through national-level test"},
			Deadline:    date(2025, time.April, 15),
			Link:        "https://pmrf.in",
			Documents:   []string{"Master's degree certificate", "Research proposal", "Recommendation letters"},
			Type:        TypeScholarship,
			Level:       LevelNational,
			Category:    append([]string(nil), categories...),
			MinAge:      intPtr(21),
			MaxAge:      intPtr(35),
			MinIncome:   int64Ptr(0),
			MaxIncome:   int64Ptr(1800000),
		},
		{
			ID:          "3",
			Title:       "Central Sector Scheme of Scholarship",
			Description: "Scholarships for college and university students based on merit.",
			Eligibility: []string{"Top 20 percentile in 12th standard", "Family income below 4.5 lakhs per annum"},
			Deadline:    date(2025, time.August, 31),
			Link:        "https://scholarships.gov.in",
			Documents:   []string{"12th marksheet", "Income certificate", "College/university admission proof"},
			Type:        TypeScholarship,
			Level:       LevelNational,
			Category:    append([]string(nil), categories...),
			MinAge:      intPtr(17),
			MaxAge:      intPtr(25),
			MinIncome:   int64Ptr(0),
			MaxIncome:   int64Ptr(450000),
		},
	}
}

// seedFile is the on-disk layout of a catalog seed file:
//
//	schemes:
//	  - id: "1"
//	    title: ...
//	    deadline: 2025-06-30
type seedFile struct {
	Schemes []seedRecord `yaml:"schemes"`
}

type seedRecord struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Eligibility []string `yaml:"eligibility"`
	Deadline    string   `yaml:"deadline"`
	Link        string   `yaml:"link"`
	Documents   []string `yaml:"documents"`
	Type        Type     `yaml:"type"`
	Level       Level    `yaml:"level"`
	Category    []string `yaml:"category"`
	MinAge      *int     `yaml:"min_age"`
	MaxAge      *int     `yaml:"max_age"`
	MinIncome   *int64   `yaml:"min_income"`
	MaxIncome   *int64   `yaml:"max_income"`
}

// LoadSeedFile reads a YAML catalog.  Every record is validated; past
// deadlines are accepted.
func LoadSeedFile(path string) ([]Scheme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSeedFileInvalid, "failed to read seed file").WithDetail(path)
	}
	return ParseSeed(data)
}

// ParseSeed decodes YAML seed data.
func ParseSeed(data []byte) ([]Scheme, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSeedFileInvalid, "failed to decode seed file")
	}

	seen := make(map[string]bool, len(f.Schemes))
	out := make([]Scheme, 0, len(f.Schemes))
	for i, rec := range f.Schemes {
		if rec.ID == "" {
			return nil, errors.Newf(errors.ErrCodeSeedFileInvalid, "scheme #%d has no id", i+1)
		}
		if seen[rec.ID] {
			return nil, errors.Newf(errors.ErrCodeSeedFileInvalid, "duplicate scheme id %s", rec.ID)
		}
		seen[rec.ID] = true

		deadline, err := ParseDeadline(rec.Deadline, time.Now())
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSeedFileInvalid, "invalid deadline").WithDetail(rec.ID)
		}
		s := Scheme{
			ID:          rec.ID,
			Title:       rec.Title,
			Description: rec.Description,
			Eligibility: cleanLines(rec.Eligibility),
			Deadline:    deadline,
			Link:        rec.Link,
			Documents:   cleanLines(rec.Documents),
			Type:        rec.Type,
			Level:       rec.Level,
			Category:    cleanLines(rec.Category),
			MinAge:      rec.MinAge,
			MaxAge:      rec.MaxAge,
			MinIncome:   rec.MinIncome,
			MaxIncome:   rec.MaxIncome,
		}
		if err := s.Validate(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSeedFileInvalid, "invalid scheme").WithDetail(rec.ID)
		}
		out = append(out, s)
	}
	return out, nil
}

//Personal.AI order the ending
