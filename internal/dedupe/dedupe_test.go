package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/job-profiler/internal/registry"
)

func TestApplyScalarDuplicates(t *testing.T) {
	p := registry.New()
	p.Set("company.mission", "We build rockets.")
	p.Set("company.culture", "We build rockets.")

	Apply(p)

	assert.Equal(t, "We build rockets.", p.Get("company.mission"),
		"earliest field keeps its content")
	assert.Equal(t, "", p.Get("company.culture"),
		"later duplicate resets to zero value")
}

func TestApplyNormalizedComparison(t *testing.T) {
	p := registry.New()
	p.Set("company.mission", "We build rockets!")
	p.Set("company.culture", "we   build, rockets")

	Apply(p)

	assert.Equal(t, "We build rockets!", p.Get("company.mission"))
	assert.Equal(t, "", p.Get("company.culture"),
		"punctuation and casing do not defeat the comparison")
}

func TestApplyListDuplicates(t *testing.T) {
	p := registry.New()
	p.Set("requirements.must_have", []string{"Go experience", "Team player"})
	p.Set("requirements.nice_to_have", []string{"go experience", "Kubernetes"})
	p.Set("requirements.soft_skills", []string{"team player", "team player"})

	Apply(p)

	assert.Equal(t, []string{"Go experience", "Team player"}, p.Get("requirements.must_have"))
	assert.Equal(t, []string{"Kubernetes"}, p.Get("requirements.nice_to_have"),
		"cross-field duplicate dropped, order of survivors kept")
	assert.Equal(t, []string{}, p.Get("requirements.soft_skills"),
		"within-list repeats collapse too")
}

func TestApplyScalarSeenInEarlierList(t *testing.T) {
	p := registry.New()
	p.Set("company.values", []string{"Ownership"})
	p.Set("company.mission", "ownership")

	Apply(p)

	assert.Equal(t, []string{"Ownership"}, p.Get("company.values"))
	assert.Equal(t, "", p.Get("company.mission"))
}

func TestApplyIgnoresNumbersAndBools(t *testing.T) {
	p := registry.New()
	p.Set("compensation.salary_min", float64(50000))
	p.Set("compensation.salary_max", float64(50000))
	p.Set("compensation.salary_provided", true)
	p.Set("requirements.drivers_license", true)

	Apply(p)

	assert.Equal(t, float64(50000), p.Get("compensation.salary_min"))
	assert.Equal(t, float64(50000), p.Get("compensation.salary_max"),
		"identical numbers are not text duplicates")
	assert.Equal(t, true, p.Get("compensation.salary_provided"))
	assert.Equal(t, true, p.Get("requirements.drivers_license"))
}

func TestApplyIdempotent(t *testing.T) {
	p := registry.New()
	p.Set("company.mission", "Build things")
	p.Set("company.culture", "Build things")
	p.Set("requirements.skills", []string{"Go", "build things"})

	Apply(p)
	first := snapshot(p)
	Apply(p)

	assert.Equal(t, first, snapshot(p))
}

func snapshot(p registry.Profile) map[string]any {
	return p.Flatten()
}
