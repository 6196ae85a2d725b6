// Package registry declares the canonical profile field registry: every
// dot-path a profile exposes, its kind, and its zero value. The registry is
// consumed by the coercion engine, the deduplicator, and schema generation,
// keeping the "every field always present" invariant in one place.
package registry

import "strings"

// Kind is the declared type of a registry field.
type Kind int

const (
	KindString Kind = iota
	KindStringList
	KindNumber
	KindBool
)

// Field describes one canonical dot-path.
type Field struct {
	Path string
	Kind Kind
}

// Zero returns the canonical zero value for the field's kind. Never a
// placeholder string.
func (f Field) Zero() any {
	switch f.Kind {
	case KindStringList:
		return []string{}
	case KindNumber:
		return float64(0)
	case KindBool:
		return false
	default:
		return ""
	}
}

// Group returns the group part of the field's dot-path.
func (f Field) Group() string {
	group, _, _ := strings.Cut(f.Path, ".")
	return group
}

// Name returns the field part of the field's dot-path.
func (f Field) Name() string {
	_, name, _ := strings.Cut(f.Path, ".")
	return name
}

// Fields enumerates every canonical dot-path in declaration order. The
// order is load-bearing: the cross-field deduplicator treats earlier
// fields as authoritative.
var Fields = []Field{
	{"company.name", KindString},
	{"company.legal_name", KindString},
	{"company.description", KindString},
	{"company.website", KindString},
	{"company.industry", KindString},
	{"company.size", KindString},
	{"company.founded_year", KindNumber},
	{"company.headquarters", KindString},
	{"company.mission", KindString},
	{"company.culture", KindString},
	{"company.values", KindStringList},
	{"company.contact_email", KindString},
	{"company.contact_phone", KindString},

	{"position.job_title", KindString},
	{"position.role_summary", KindString},
	{"position.seniority", KindString},
	{"position.department", KindString},
	{"position.team", KindString},
	{"position.reports_to", KindString},
	{"position.job_id", KindString},
	{"position.start_date", KindString},

	{"compensation.salary_min", KindNumber},
	{"compensation.salary_max", KindNumber},
	{"compensation.currency", KindString},
	{"compensation.salary_provided", KindBool},
	{"compensation.period", KindString},
	{"compensation.bonus", KindString},
	{"compensation.equity", KindString},
	{"compensation.benefits", KindStringList},

	{"employment.job_type", KindString},
	{"employment.contract_type", KindString},
	{"employment.contract_duration", KindString},
	{"employment.workload", KindString},
	{"employment.remote_policy", KindString},
	{"employment.travel_required", KindString},
	{"employment.shift_system", KindString},
	{"employment.visa_sponsorship", KindBool},
	{"employment.relocation_support", KindBool},

	{"location.primary_city", KindString},
	{"location.country", KindString},
	{"location.region", KindString},
	{"location.address", KindString},
	{"location.timezone", KindString},
	{"location.onsite_requirement", KindString},
	{"location.additional_locations", KindStringList},

	{"contacts.contact_person", KindString},
	{"contacts.contact_role", KindString},
	{"contacts.application_url", KindString},
	{"contacts.application_email", KindString},
	{"contacts.application_instructions", KindString},

	{"requirements.must_have", KindStringList},
	{"requirements.nice_to_have", KindStringList},
	{"requirements.skills", KindStringList},
	{"requirements.soft_skills", KindStringList},
	{"requirements.languages", KindStringList},
	{"requirements.certifications", KindStringList},
	{"requirements.education", KindString},
	{"requirements.experience_years", KindNumber},
	{"requirements.drivers_license", KindBool},

	{"responsibilities.items", KindStringList},
	{"responsibilities.projects", KindStringList},
	{"responsibilities.team_responsibilities", KindStringList},
	{"responsibilities.tools", KindStringList},

	{"process.steps", KindStringList},
	{"process.timeline", KindString},
	{"process.interview_format", KindString},
	{"process.documents_required", KindStringList},
	{"process.application_deadline", KindString},
	{"process.hiring_manager", KindString},
	{"process.feedback_policy", KindString},

	{"meta.language", KindString},
	{"meta.source", KindString},
	{"meta.posted_date", KindString},
	{"meta.valid_until", KindString},
	{"meta.reference_id", KindString},
	{"meta.version", KindString},
	{"meta.notes", KindString},

	{"analytics.keywords", KindStringList},
	{"analytics.seo_title", KindString},
	{"analytics.target_audience", KindString},
	{"analytics.diversity_statement", KindString},
	{"analytics.tone", KindString},
	{"analytics.readability_score", KindNumber},
	{"analytics.completeness_score", KindNumber},
}

var byPath = func() map[string]Field {
	m := make(map[string]Field, len(Fields))
	for _, f := range Fields {
		m[f.Path] = f
	}
	return m
}()

// Lookup returns the field descriptor for a canonical dot-path.
func Lookup(path string) (Field, bool) {
	f, ok := byPath[path]
	return f, ok
}

// Groups returns the distinct group names in declaration order.
func Groups() []string {
	var groups []string
	seen := make(map[string]bool)
	for _, f := range Fields {
		g := f.Group()
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

// Profile is a canonical profile: one map per group, one entry per
// registry field. A valid profile contains exactly the registry's fields.
type Profile map[string]map[string]any

// New returns a profile with every registry field at its zero value.
func New() Profile {
	p := make(Profile)
	for _, f := range Fields {
		group := f.Group()
		if p[group] == nil {
			p[group] = make(map[string]any)
		}
		p[group][f.Name()] = f.Zero()
	}
	return p
}

// Get returns the value at a canonical dot-path, or nil if the path is not
// part of the registry.
func (p Profile) Get(path string) any {
	group, name, ok := strings.Cut(path, ".")
	if !ok {
		return nil
	}
	fields, ok := p[group]
	if !ok {
		return nil
	}
	return fields[name]
}

// Set stores a value at a canonical dot-path, creating the group map if
// needed. Paths outside the registry are stored as-is; callers that care
// should check Lookup first.
func (p Profile) Set(path string, value any) {
	group, name, ok := strings.Cut(path, ".")
	if !ok {
		return
	}
	if p[group] == nil {
		p[group] = make(map[string]any)
	}
	p[group][name] = value
}

// Flatten returns the profile as a flat dot-path map.
func (p Profile) Flatten() map[string]any {
	flat := make(map[string]any, len(Fields))
	for group, fields := range p {
		for name, value := range fields {
			flat[group+"."+name] = value
		}
	}
	return flat
}
