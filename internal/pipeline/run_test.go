package pipeline

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-profiler/internal/parsing"
	"github.com/jonathan/job-profiler/internal/types"
)

func sampleBlocks() []types.ContentBlock {
	return []types.ContentBlock{
		{Type: types.BlockParagraph, Text: "Contact us at jobs@acme.de"},
		{Type: types.BlockParagraph, Text: "Salary: €50.000 - €70.000"},
		{Type: types.BlockParagraph, Text: "Location: Berlin, Germany"},
	}
}

func TestRunMergesRulesOverModelOutput(t *testing.T) {
	modelResponse := `{
		"position": {"job_title": "Backend Engineer"},
		"company": {"name": "ACME GmbH", "contact_email": "hallucinated@model.example"},
		"requirements": {"skills": "Go, PostgreSQL"}
	}`

	result, err := Run(context.Background(), sampleBlocks(), modelResponse, Options{})
	require.NoError(t, err)
	require.Nil(t, result.InputErr)

	assert.Equal(t, "Backend Engineer", result.Profile.Get("position.job_title"))
	assert.Equal(t, "ACME GmbH", result.Profile.Get("company.name"))
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.Profile.Get("requirements.skills"))

	assert.Equal(t, "jobs@acme.de", result.Profile.Get("company.contact_email"),
		"rule-derived value overrides the model's")
	assert.Equal(t, float64(50000), result.Profile.Get("compensation.salary_min"))
	assert.Equal(t, float64(70000), result.Profile.Get("compensation.salary_max"))
	assert.Equal(t, "EUR", result.Profile.Get("compensation.currency"))
	assert.Equal(t, true, result.Profile.Get("compensation.salary_provided"))
	assert.Equal(t, "Berlin", result.Profile.Get("location.primary_city"))
	assert.Equal(t, "DE", result.Profile.Get("location.country"))

	require.NotNil(t, result.Provenance)
	assert.Contains(t, result.Provenance.LockedFields, "company.contact_email")
	assert.Contains(t, result.Provenance.LockedFields, "compensation.salary_min")
	assert.Contains(t, result.Provenance.HighConfidenceFields, "company.contact_email")
}

func TestRunWithoutModelResponse(t *testing.T) {
	result, err := Run(context.Background(), sampleBlocks(), "", Options{})
	require.NoError(t, err)

	assert.Nil(t, result.InputErr)
	assert.Equal(t, "jobs@acme.de", result.Profile.Get("company.contact_email"))
	assert.Equal(t, "", result.Profile.Get("position.job_title"),
		"fields without rule coverage hold their zero values")
}

func TestRunKeepsRuleFieldsOnBadModelResponse(t *testing.T) {
	result, err := Run(context.Background(), sampleBlocks(), "the model rambled with no JSON", Options{})
	require.NoError(t, err, "a bad model response is not a pipeline failure")

	var invalid *parsing.JSONInvalidError
	require.ErrorAs(t, result.InputErr, &invalid)

	assert.Equal(t, "jobs@acme.de", result.Profile.Get("company.contact_email"),
		"rule-derived progress survives the parse failure")
	assert.Equal(t, float64(50000), result.Profile.Get("compensation.salary_min"))
}

func TestRunRejectsInvalidBlocks(t *testing.T) {
	blocks := []types.ContentBlock{{Type: "sidebar", Text: "x"}}

	result, err := Run(context.Background(), blocks, "", Options{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestRunCarriesPriorProvenance(t *testing.T) {
	priorID := uuid.New()
	prior := &types.RuleProvenance{
		RunID: priorID,
		Rules: map[string]types.RuleMetadata{
			"company.name": {Value: "ACME", Confidence: 0.8, Locked: true},
		},
	}
	prior.Refresh()

	blocks := []types.ContentBlock{
		{Type: types.BlockParagraph, Text: "Contact us at jobs@acme.de"},
	}
	result, err := Run(context.Background(), blocks, "", Options{Prior: prior})
	require.NoError(t, err)

	assert.Contains(t, result.Provenance.LockedFields, "company.name",
		"earlier locks survive the new cycle")
	assert.Contains(t, result.Provenance.LockedFields, "company.contact_email")
	assert.NotEqual(t, priorID, result.Provenance.RunID, "the new cycle's run id wins")

	assert.Len(t, prior.Rules, 1, "the caller's provenance is not mutated")
	assert.Equal(t, priorID, prior.RunID)
}
