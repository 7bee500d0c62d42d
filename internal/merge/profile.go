package merge

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/vitae/internal/match"
	"horse.fit/vitae/internal/profile"
	"horse.fit/vitae/internal/similarity"
)

// sectionMatchThreshold is the minimum key similarity for two section items
// to be treated as the same entity.
const sectionMatchThreshold = 0.5

// ProfileReconciler merges a full secondary record into a primary one:
// primary data always wins on conflicts, secondary data fills gaps and
// contributes new entities, and everything taken from the secondary side
// keeps its provenance.
type ProfileReconciler struct {
	engine       *similarity.Engine
	descriptions *DescriptionReconciler
	logger       zerolog.Logger
}

func NewProfileReconciler(engine *similarity.Engine, descriptions *DescriptionReconciler, logger zerolog.Logger) *ProfileReconciler {
	return &ProfileReconciler{
		engine:       engine,
		descriptions: descriptions,
		logger:       logger,
	}
}

// Reconcile merges secondary into primary. Neither input is mutated. An empty
// secondary record leaves the primary unchanged, with no secondary-origin
// values anywhere.
func (r *ProfileReconciler) Reconcile(ctx context.Context, primary, secondary *profile.Record) *MergedProfile {
	if primary == nil {
		primary = &profile.Record{}
	}
	if secondary.IsEmpty() {
		return r.primaryOnly(primary)
	}

	merged := &MergedProfile{
		ProfileURL: mergeScalar(primary.ProfileURL, secondary.ProfileURL),
		Name:       mergeScalar(primary.Name, secondary.Name),
		Location:   mergeScalar(primary.Location, secondary.Location),
		About:      mergeScalar(primary.About, secondary.About),
		// The reference profile is authoritative for the availability flag.
		OpenToWork:      secondary.OpenToWork,
		Interests:       unionValues(primary.Interests, secondary.Interests),
		Accomplishments: unionValues(primary.Accomplishments, secondary.Accomplishments),
		Contacts:        unionValues(primary.Contacts, secondary.Contacts),
	}

	if len(secondary.Skills) > 0 {
		merged.Skills = cloneSkills(secondary.Skills)
		merged.SkillsOrigin = OriginSecondary
	} else {
		merged.Skills = cloneSkills(primary.Skills)
		merged.SkillsOrigin = OriginPrimary
	}

	merged.Experiences = r.mergeExperiences(ctx, primary.Experiences, secondary.Experiences)
	merged.Educations = r.mergeEducations(ctx, primary.Educations, secondary.Educations)
	merged.Projects = r.mergeProjects(ctx, primary.Projects, secondary.Projects)

	r.logger.Debug().
		Int("experiences", len(merged.Experiences)).
		Int("educations", len(merged.Educations)).
		Int("projects", len(merged.Projects)).
		Msg("profiles reconciled")
	return merged
}

func (r *ProfileReconciler) mergeExperiences(ctx context.Context, primary []profile.Experience, secondary []profile.Experience) []MergedExperience {
	matcher := &match.Matcher[profile.Experience]{
		Similarity: r.engine.Char,
		Keys: []match.Key[profile.Experience]{
			{Name: "institution", Value: func(e profile.Experience) string { return e.Institution }},
		},
		Threshold: sectionMatchThreshold,
	}
	result := matcher.Match(primary, secondary)
	paired := pairIndex(result)

	out := make([]MergedExperience, 0, len(primary)+len(result.Unmatched))
	for i, exp := range primary {
		item := MergedExperience{
			Origin:      OriginPrimary,
			Title:       primaryValue(exp.Title),
			Institution: primaryValue(exp.Institution),
			URL:         primaryValue(exp.URL),
			FromDate:    primaryValue(exp.FromDate),
			ToDate:      primaryValue(exp.ToDate),
			Duration:    primaryValue(exp.Duration),
			Location:    primaryValue(exp.Location),
			Description: verbatimText(exp.Description, OriginPrimary),
		}
		if j, ok := paired[i]; ok {
			twin := secondary[j]
			fillIfEmpty(&item.URL, twin.URL)
			fillIfEmpty(&item.FromDate, twin.FromDate)
			fillIfEmpty(&item.ToDate, twin.ToDate)
			if strings.TrimSpace(twin.Description) != "" {
				item.Description = r.descriptions.Merge(ctx, exp.Description, twin.Description)
			}
		}
		out = append(out, item)
	}
	for _, j := range result.Unmatched {
		twin := secondary[j]
		out = append(out, MergedExperience{
			Origin:      OriginSecondary,
			Title:       secondaryValue(twin.Title),
			Institution: secondaryValue(twin.Institution),
			URL:         secondaryValue(twin.URL),
			FromDate:    secondaryValue(twin.FromDate),
			ToDate:      secondaryValue(twin.ToDate),
			Duration:    secondaryValue(twin.Duration),
			Location:    secondaryValue(twin.Location),
			Description: r.tagged(ctx, twin.Description),
		})
	}
	return out
}

func (r *ProfileReconciler) mergeEducations(ctx context.Context, primary []profile.Education, secondary []profile.Education) []MergedEducation {
	matcher := &match.Matcher[profile.Education]{
		Similarity: r.engine.Char,
		Keys: []match.Key[profile.Education]{
			{Name: "institution", Value: func(e profile.Education) string { return e.Institution }},
		},
		Threshold: sectionMatchThreshold,
	}
	result := matcher.Match(primary, secondary)
	paired := pairIndex(result)

	out := make([]MergedEducation, 0, len(primary)+len(result.Unmatched))
	for i, edu := range primary {
		item := MergedEducation{
			Origin:      OriginPrimary,
			Degree:      primaryValue(edu.Degree),
			Institution: primaryValue(edu.Institution),
			URL:         primaryValue(edu.URL),
			FromDate:    primaryValue(edu.FromDate),
			ToDate:      primaryValue(edu.ToDate),
			Duration:    primaryValue(edu.Duration),
			Location:    primaryValue(edu.Location),
			Description: verbatimText(edu.Description, OriginPrimary),
		}
		if j, ok := paired[i]; ok {
			twin := secondary[j]
			fillIfEmpty(&item.URL, twin.URL)
			fillIfEmpty(&item.FromDate, twin.FromDate)
			fillIfEmpty(&item.ToDate, twin.ToDate)
			if strings.TrimSpace(twin.Description) != "" {
				item.Description = r.descriptions.Merge(ctx, edu.Description, twin.Description)
			}
		}
		out = append(out, item)
	}
	for _, j := range result.Unmatched {
		twin := secondary[j]
		out = append(out, MergedEducation{
			Origin:      OriginSecondary,
			Degree:      secondaryValue(twin.Degree),
			Institution: secondaryValue(twin.Institution),
			URL:         secondaryValue(twin.URL),
			FromDate:    secondaryValue(twin.FromDate),
			ToDate:      secondaryValue(twin.ToDate),
			Duration:    secondaryValue(twin.Duration),
			Location:    secondaryValue(twin.Location),
			Description: r.tagged(ctx, twin.Description),
		})
	}
	return out
}

func (r *ProfileReconciler) mergeProjects(ctx context.Context, primary []profile.Project, secondary []profile.Project) []MergedProject {
	matcher := &match.Matcher[profile.Project]{
		Similarity: r.engine.Char,
		Keys: []match.Key[profile.Project]{
			{Name: "name", Value: func(p profile.Project) string { return p.Name }},
		},
		Threshold: sectionMatchThreshold,
	}
	result := matcher.Match(primary, secondary)
	paired := pairIndex(result)

	out := make([]MergedProject, 0, len(primary)+len(result.Unmatched))
	for i, prj := range primary {
		item := MergedProject{
			Origin:       OriginPrimary,
			Name:         primaryValue(prj.Name),
			Role:         primaryValue(prj.Role),
			Dates:        primaryValue(prj.Dates),
			Technologies: append([]string(nil), prj.Technologies...),
			URL:          primaryValue(prj.URL),
			Description:  verbatimText(prj.Description, OriginPrimary),
		}
		if j, ok := paired[i]; ok {
			twin := secondary[j]
			fillIfEmpty(&item.URL, twin.URL)
			fillIfEmpty(&item.Dates, twin.Dates)
			if len(item.Technologies) == 0 && len(twin.Technologies) > 0 {
				item.Technologies = append([]string(nil), twin.Technologies...)
			}
			if strings.TrimSpace(twin.Description) != "" {
				item.Description = r.descriptions.Merge(ctx, prj.Description, twin.Description)
			}
		}
		out = append(out, item)
	}
	for _, j := range result.Unmatched {
		twin := secondary[j]
		out = append(out, MergedProject{
			Origin:       OriginSecondary,
			Name:         secondaryValue(twin.Name),
			Role:         secondaryValue(twin.Role),
			Dates:        secondaryValue(twin.Dates),
			Technologies: append([]string(nil), twin.Technologies...),
			URL:          secondaryValue(twin.URL),
			Description:  r.tagged(ctx, twin.Description),
		})
	}
	return out
}

// tagged runs a secondary-only description through the reconciler so it gets
// translated, segmented and marked secondary-origin span by span.
func (r *ProfileReconciler) tagged(ctx context.Context, description string) AnnotatedText {
	if strings.TrimSpace(description) == "" {
		return AnnotatedText{}
	}
	return r.descriptions.Merge(ctx, "", description)
}

// primaryOnly short-circuits reconciliation against an empty secondary: the
// result is the primary record verbatim, with no secondary provenance.
func (r *ProfileReconciler) primaryOnly(primary *profile.Record) *MergedProfile {
	merged := &MergedProfile{
		ProfileURL:      primaryValue(primary.ProfileURL),
		Name:            primaryValue(primary.Name),
		Location:        primaryValue(primary.Location),
		About:           primaryValue(primary.About),
		OpenToWork:      primary.OpenToWork,
		Skills:          cloneSkills(primary.Skills),
		SkillsOrigin:    OriginPrimary,
		Interests:       unionValues(primary.Interests, nil),
		Accomplishments: unionValues(primary.Accomplishments, nil),
		Contacts:        unionValues(primary.Contacts, nil),
	}
	for _, exp := range primary.Experiences {
		merged.Experiences = append(merged.Experiences, MergedExperience{
			Origin:      OriginPrimary,
			Title:       primaryValue(exp.Title),
			Institution: primaryValue(exp.Institution),
			URL:         primaryValue(exp.URL),
			FromDate:    primaryValue(exp.FromDate),
			ToDate:      primaryValue(exp.ToDate),
			Duration:    primaryValue(exp.Duration),
			Location:    primaryValue(exp.Location),
			Description: verbatimText(exp.Description, OriginPrimary),
		})
	}
	for _, edu := range primary.Educations {
		merged.Educations = append(merged.Educations, MergedEducation{
			Origin:      OriginPrimary,
			Degree:      primaryValue(edu.Degree),
			Institution: primaryValue(edu.Institution),
			URL:         primaryValue(edu.URL),
			FromDate:    primaryValue(edu.FromDate),
			ToDate:      primaryValue(edu.ToDate),
			Duration:    primaryValue(edu.Duration),
			Location:    primaryValue(edu.Location),
			Description: verbatimText(edu.Description, OriginPrimary),
		})
	}
	for _, prj := range primary.Projects {
		merged.Projects = append(merged.Projects, MergedProject{
			Origin:       OriginPrimary,
			Name:         primaryValue(prj.Name),
			Role:         primaryValue(prj.Role),
			Dates:        primaryValue(prj.Dates),
			Technologies: append([]string(nil), prj.Technologies...),
			URL:          primaryValue(prj.URL),
			Description:  verbatimText(prj.Description, OriginPrimary),
		})
	}
	return merged
}

// pairIndex flips a match result into a primary-index lookup table.
func pairIndex(result match.Result) map[int]int {
	paired := make(map[int]int, len(result.Pairs))
	for _, p := range result.Pairs {
		paired[p.Primary] = p.Secondary
	}
	return paired
}

// mergeScalar is the conflict rule for top-level scalars: primary wins when
// present, otherwise the secondary value fills in with its provenance.
func mergeScalar(primary, secondary string) Value {
	if strings.TrimSpace(primary) != "" {
		return Value{Text: primary, Origin: OriginPrimary}
	}
	if strings.TrimSpace(secondary) != "" {
		return Value{Text: secondary, Origin: OriginSecondary}
	}
	return Value{Origin: OriginPrimary}
}

func primaryValue(text string) Value {
	return Value{Text: text, Origin: OriginPrimary}
}

func secondaryValue(text string) Value {
	return Value{Text: text, Origin: OriginSecondary}
}

func fillIfEmpty(v *Value, secondary string) {
	if strings.TrimSpace(v.Text) == "" && strings.TrimSpace(secondary) != "" {
		*v = Value{Text: secondary, Origin: OriginSecondary}
	}
}

// unionValues merges two flat string lists by exact (whitespace-trimmed)
// equality, primary entries first.
func unionValues(primary, secondary []string) []Value {
	seen := make(map[string]struct{}, len(primary))
	out := make([]Value, 0, len(primary)+len(secondary))
	for _, s := range primary {
		key := strings.TrimSpace(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Value{Text: s, Origin: OriginPrimary})
	}
	for _, s := range secondary {
		key := strings.TrimSpace(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, Value{Text: s, Origin: OriginSecondary})
	}
	return out
}
