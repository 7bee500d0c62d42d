// Package profile defines the canonical record shape shared by both input
// sources (a parsed résumé and an external reference profile) and the
// ingestion boundary that produces it.
package profile

// Record is the canonical professional profile. Both the résumé-derived and
// the reference-derived documents normalize to this shape before any
// reconciliation or verification code sees them.
type Record struct {
	ProfileURL      string          `json:"profile_url"`
	Name            string          `json:"name"`
	Location        string          `json:"location"`
	About           string          `json:"about"`
	OpenToWork      bool            `json:"open_to_work"`
	Experiences     []Experience    `json:"experiences"`
	Educations      []Education     `json:"educations"`
	Projects        []Project       `json:"projects"`
	Skills          []SkillCategory `json:"skills"`
	Interests       []string        `json:"interests"`
	Accomplishments []string        `json:"accomplishments"`
	Contacts        []string        `json:"contacts"`
}

// Experience is one work history entry.
type Experience struct {
	Title       string `json:"title"`
	Institution string `json:"institution_name"`
	URL         string `json:"url,omitempty"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Duration    string `json:"duration,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// Education is one education history entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution_name"`
	URL         string `json:"url,omitempty"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Duration    string `json:"duration,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

// Project is one personal or professional project entry.
type Project struct {
	Name         string   `json:"project_name"`
	Role         string   `json:"role,omitempty"`
	Dates        string   `json:"dates,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Description  string   `json:"description,omitempty"`
	URL          string   `json:"url,omitempty"`
}

// SkillCategory groups skills under a category label.
type SkillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// IsEmpty reports whether the record carries no usable content at all.
func (r *Record) IsEmpty() bool {
	if r == nil {
		return true
	}
	return r.Name == "" &&
		r.Location == "" &&
		r.About == "" &&
		r.ProfileURL == "" &&
		len(r.Experiences) == 0 &&
		len(r.Educations) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Interests) == 0 &&
		len(r.Accomplishments) == 0 &&
		len(r.Contacts) == 0
}
