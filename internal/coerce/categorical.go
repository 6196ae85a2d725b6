package coerce

import "strings"

// hyphenReplacer folds Unicode hyphen variants to ASCII before lookup.
var hyphenReplacer = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

var jobTypes = map[string]string{
	"vollzeit":        "Full-time",
	"full time":       "Full-time",
	"fulltime":        "Full-time",
	"full-time":       "Full-time",
	"festanstellung":  "Full-time",
	"teilzeit":        "Part-time",
	"part time":       "Part-time",
	"parttime":        "Part-time",
	"part-time":       "Part-time",
	"freelance":       "Contract",
	"freiberuflich":   "Contract",
	"contract":        "Contract",
	"contractor":      "Contract",
	"praktikum":       "Internship",
	"internship":      "Internship",
	"intern":          "Internship",
	"werkstudent":     "Working Student",
	"working student": "Working Student",
	"minijob":         "Mini-job",
	"mini-job":        "Mini-job",
	"ausbildung":      "Apprenticeship",
	"apprenticeship":  "Apprenticeship",
}

var remotePolicies = map[string]string{
	"remote":       "Remote",
	"fully remote": "Remote",
	"100% remote":  "Remote",
	"home office":  "Remote",
	"home-office":  "Remote",
	"homeoffice":   "Remote",
	"hybrid":       "Hybrid",
	"hybrid work":  "Hybrid",
	"onsite":       "On-site",
	"on-site":      "On-site",
	"on site":      "On-site",
	"vor ort":      "On-site",
	"office":       "On-site",
	"office-based": "On-site",
	"office based": "On-site",
}

var seniorities = map[string]string{
	"junior":       "Junior",
	"entry":        "Junior",
	"entry-level":  "Junior",
	"einsteiger":   "Junior",
	"mid":          "Mid-level",
	"mid-level":    "Mid-level",
	"intermediate": "Mid-level",
	"senior":       "Senior",
	"sr":           "Senior",
	"lead":         "Lead",
	"team lead":    "Lead",
	"staff":        "Staff",
	"principal":    "Principal",
}

// categoricalFields binds lookup tables to the registry paths they
// normalize.
var categoricalFields = map[string]map[string]string{
	"employment.job_type":      jobTypes,
	"employment.remote_policy": remotePolicies,
	"position.seniority":       seniorities,
}

// NormalizeCategorical maps known synonyms to their canonical value.
// Unrecognized values pass through unchanged rather than being forced to
// a default.
func NormalizeCategorical(path, value string) string {
	table, ok := categoricalFields[path]
	if !ok || value == "" {
		return value
	}
	key := strings.ToLower(strings.TrimSpace(hyphenReplacer.Replace(value)))
	if canonical, ok := table[key]; ok {
		return canonical
	}
	return value
}
