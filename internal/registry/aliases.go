package registry

// Aliases maps legacy and alternate dot-paths to their canonical
// equivalents. Applied once, before coercion: if the canonical target is
// absent the value moves; if the target is a list field the values
// concatenate (canonical first); otherwise the legacy value is discarded.
var Aliases = map[string]string{
	"company.company_name":         "company.name",
	"company.about":                "company.description",
	"company.url":                  "company.website",
	"company.homepage":             "company.website",
	"company.sector":               "company.industry",
	"company.email":                "company.contact_email",
	"company.phone":                "company.contact_phone",
	"position.title":               "position.job_title",
	"position.role":                "position.job_title",
	"position.summary":             "position.role_summary",
	"position.level":               "position.seniority",
	"compensation.salary_from":     "compensation.salary_min",
	"compensation.salary_to":       "compensation.salary_max",
	"compensation.salary_currency": "compensation.currency",
	"compensation.perks":           "compensation.benefits",
	"employment.type":              "employment.job_type",
	"employment.employment_type":   "employment.job_type",
	"employment.remote":            "employment.remote_policy",
	"employment.home_office":       "employment.remote_policy",
	"location.city":                "location.primary_city",
	"location.town":                "location.primary_city",
	"location.state":               "location.region",
	"contacts.person":              "contacts.contact_person",
	"contacts.apply_url":           "contacts.application_url",
	"contacts.apply_email":         "contacts.application_email",
	"requirements.hard_skills":     "requirements.skills",
	"requirements.qualifications":  "requirements.must_have",
	"requirements.nice_to_haves":   "requirements.nice_to_have",
	"requirements.optional":        "requirements.nice_to_have",
	"responsibilities.tasks":       "responsibilities.items",
	"responsibilities.duties":      "responsibilities.items",
	"process.stages":               "process.steps",
	"process.deadline":             "process.application_deadline",
	"meta.lang":                    "meta.language",
	"meta.ref":                     "meta.reference_id",
	"analytics.tags":               "analytics.keywords",
}
