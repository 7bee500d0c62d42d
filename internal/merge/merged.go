package merge

import (
	"slices"

	"horse.fit/vitae/internal/profile"
)

// MergedProfile is the reconciled record with per-field provenance intact.
// It is the API payload; Record flattens it back into a plain profile for
// display, applying a RenderStyle.
type MergedProfile struct {
	ProfileURL Value `json:"profile_url"`
	Name       Value `json:"name"`
	Location   Value `json:"location"`
	About      Value `json:"about"`
	OpenToWork bool  `json:"open_to_work"`

	Experiences []MergedExperience `json:"experiences"`
	Educations  []MergedEducation  `json:"educations"`
	Projects    []MergedProject    `json:"projects"`

	Skills       []profile.SkillCategory `json:"skills"`
	SkillsOrigin Origin                  `json:"skills_origin"`

	Interests       []Value `json:"interests"`
	Accomplishments []Value `json:"accomplishments"`
	Contacts        []Value `json:"contacts"`
}

// MergedExperience is one reconciled work entry. Origin tells whether the
// entity itself came from the primary record or is new from the secondary.
type MergedExperience struct {
	Origin      Origin        `json:"origin"`
	Title       Value         `json:"title"`
	Institution Value         `json:"institution_name"`
	URL         Value         `json:"url"`
	FromDate    Value         `json:"from_date"`
	ToDate      Value         `json:"to_date"`
	Duration    Value         `json:"duration"`
	Location    Value         `json:"location"`
	Description AnnotatedText `json:"description"`
}

type MergedEducation struct {
	Origin      Origin        `json:"origin"`
	Degree      Value         `json:"degree"`
	Institution Value         `json:"institution_name"`
	URL         Value         `json:"url"`
	FromDate    Value         `json:"from_date"`
	ToDate      Value         `json:"to_date"`
	Duration    Value         `json:"duration"`
	Location    Value         `json:"location"`
	Description AnnotatedText `json:"description"`
}

type MergedProject struct {
	Origin       Origin        `json:"origin"`
	Name         Value         `json:"project_name"`
	Role         Value         `json:"role"`
	Dates        Value         `json:"dates"`
	Technologies []string      `json:"technologies"`
	URL          Value         `json:"url"`
	Description  AnnotatedText `json:"description"`
}

// Record flattens the merged profile into a displayable plain record.
// Identity fields and new-entity titles are tagged per the style when they
// came from the secondary source; structured fields (dates, URLs, durations)
// are never tagged, whatever their origin.
func (m *MergedProfile) Record(style RenderStyle) *profile.Record {
	rec := &profile.Record{
		ProfileURL:      m.ProfileURL.Text,
		Name:            m.Name.Render(style),
		Location:        m.Location.Render(style),
		About:           m.About.Render(style),
		OpenToWork:      m.OpenToWork,
		Skills:          cloneSkills(m.Skills),
		Interests:       renderValues(m.Interests, style),
		Accomplishments: renderValues(m.Accomplishments, style),
		Contacts:        renderValues(m.Contacts, style),
	}

	for _, exp := range m.Experiences {
		title := exp.Title.Text
		if exp.Origin == OriginSecondary {
			title = exp.Title.Render(style)
		}
		rec.Experiences = append(rec.Experiences, profile.Experience{
			Title:       title,
			Institution: exp.Institution.Text,
			URL:         exp.URL.Text,
			FromDate:    exp.FromDate.Text,
			ToDate:      exp.ToDate.Text,
			Duration:    exp.Duration.Text,
			Location:    exp.Location.Text,
			Description: exp.Description.Render(style),
		})
	}
	for _, edu := range m.Educations {
		degree := edu.Degree.Text
		if edu.Origin == OriginSecondary {
			degree = edu.Degree.Render(style)
		}
		rec.Educations = append(rec.Educations, profile.Education{
			Degree:      degree,
			Institution: edu.Institution.Text,
			URL:         edu.URL.Text,
			FromDate:    edu.FromDate.Text,
			ToDate:      edu.ToDate.Text,
			Duration:    edu.Duration.Text,
			Location:    edu.Location.Text,
			Description: edu.Description.Render(style),
		})
	}
	for _, prj := range m.Projects {
		name := prj.Name.Text
		if prj.Origin == OriginSecondary {
			name = prj.Name.Render(style)
		}
		rec.Projects = append(rec.Projects, profile.Project{
			Name:         name,
			Role:         prj.Role.Text,
			Dates:        prj.Dates.Text,
			Technologies: slices.Clone(prj.Technologies),
			URL:          prj.URL.Text,
			Description:  prj.Description.Render(style),
		})
	}
	return rec
}

func renderValues(values []Value, style RenderStyle) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, v.Render(style))
	}
	return out
}

func cloneSkills(skills []profile.SkillCategory) []profile.SkillCategory {
	if len(skills) == 0 {
		return nil
	}
	out := make([]profile.SkillCategory, 0, len(skills))
	for _, cat := range skills {
		out = append(out, profile.SkillCategory{
			Category: cat.Category,
			Skills:   slices.Clone(cat.Skills),
		})
	}
	return out
}
