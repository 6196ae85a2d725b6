package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-profiler/internal/types"
)

func paragraph(text string) types.ContentBlock {
	return types.ContentBlock{Type: types.BlockParagraph, Text: text}
}

func table(rows ...[]string) types.ContentBlock {
	return types.ContentBlock{
		Type:     types.BlockTable,
		Metadata: &types.BlockMetadata{Rows: rows},
	}
}

func TestApplyRulesContactAndSalary(t *testing.T) {
	e := &Extractor{}
	blocks := []types.ContentBlock{
		paragraph("Contact us at Jobs@ACME-Corp.de or call +49 (0)30 1234567."),
		paragraph("Salary: €50.000 - €70.000 gross per year"),
	}

	matches := e.ApplyRules(context.Background(), blocks)

	require.Contains(t, matches, "company.contact_email")
	assert.Equal(t, "jobs@acme-corp.de", matches["company.contact_email"].Value)
	assert.Equal(t, RuleEmail, matches["company.contact_email"].Rule)

	require.Contains(t, matches, "company.contact_phone")
	assert.Equal(t, "+49 (0)30 1234567", matches["company.contact_phone"].Value)

	require.Contains(t, matches, "compensation.salary_min")
	assert.Equal(t, float64(50000), matches["compensation.salary_min"].Value)
	assert.Equal(t, float64(70000), matches["compensation.salary_max"].Value)
	assert.Equal(t, "EUR", matches["compensation.currency"].Value)
	assert.Equal(t, true, matches["compensation.salary_provided"].Value)
}

func TestApplyRulesFreeTextBeatsLayout(t *testing.T) {
	e := &Extractor{}
	blocks := []types.ContentBlock{
		table([]string{"Location", "Munich"}),
		paragraph("Location: Berlin, Germany"),
	}

	matches := e.ApplyRules(context.Background(), blocks)

	require.Contains(t, matches, "location.primary_city")
	assert.Equal(t, "Berlin", matches["location.primary_city"].Value,
		"free-text location outranks the table cell regardless of block order")
	assert.Equal(t, RuleLocation, matches["location.primary_city"].Rule)
	assert.Equal(t, "DE", matches["location.country"].Value)
}

func TestApplyRulesBareNumbersAreNotSalary(t *testing.T) {
	e := &Extractor{}
	blocks := []types.ContentBlock{
		paragraph("We serve 50000 customers and shipped 70000 orders last year."),
	}

	matches := e.ApplyRules(context.Background(), blocks)

	assert.NotContains(t, matches, "compensation.salary_min")
	assert.NotContains(t, matches, "compensation.salary_max")
	assert.NotContains(t, matches, "compensation.salary_provided")
	assert.NotContains(t, matches, "company.contact_phone")
}

func TestApplyRulesDeterministicAcrossWorkers(t *testing.T) {
	blocks := []types.ContentBlock{
		paragraph("Intro text without any facts."),
		paragraph("Standort: Hamburg"),
		paragraph("Write to first@example.com today"),
		table([]string{"Gehalt", "55.000 EUR"}),
		paragraph("Branche: Automotive"),
		paragraph("Nothing here either."),
		paragraph("Or reach second@example.com instead"),
		paragraph("Location: Berlin, Germany"),
		paragraph("Tel: 030 123 45 67"),
	}

	baseline := (&Extractor{Workers: 1}).ApplyRules(context.Background(), blocks)
	require.NotEmpty(t, baseline)

	for _, workers := range []int{2, 3, 8, 32} {
		sharded := (&Extractor{Workers: workers}).ApplyRules(context.Background(), blocks)
		assert.Equal(t, baseline, sharded, "workers=%d", workers)
	}
}

func TestApplyRulesFirstSeenTieBreak(t *testing.T) {
	e := &Extractor{Workers: 1}
	blocks := []types.ContentBlock{
		paragraph("Apply via first@example.com"),
		paragraph("Apply via second@example.com"),
	}

	matches := e.ApplyRules(context.Background(), blocks)

	assert.Equal(t, "first@example.com", matches["company.contact_email"].Value,
		"equal rule and confidence keeps the earlier block's match")
	assert.Equal(t, 0, matches["company.contact_email"].BlockIndex)
}

func TestApplyRulesLayoutWinsLocallyNotGlobally(t *testing.T) {
	e := &Extractor{}

	t.Run("same block", func(t *testing.T) {
		block := table([]string{"Email", "jobs@table.example"})
		block.Text = "Email jobs@table.example or fallback@text.example"

		matches := e.ApplyRules(context.Background(), []types.ContentBlock{block})
		assert.Equal(t, "jobs@table.example", matches["company.contact_email"].Value)
		assert.Equal(t, RuleLayout, matches["company.contact_email"].Rule)
	})

	t.Run("across blocks", func(t *testing.T) {
		blocks := []types.ContentBlock{
			table([]string{"Email", "jobs@table.example"}),
			paragraph("Better reach us at direct@text.example"),
		}

		matches := e.ApplyRules(context.Background(), blocks)
		assert.Equal(t, "direct@text.example", matches["company.contact_email"].Value)
		assert.Equal(t, RuleEmail, matches["company.contact_email"].Rule)
	})
}

func TestBetter(t *testing.T) {
	tests := []struct {
		name     string
		a, b     types.RuleMatch
		expected string
	}{
		{
			"higher priority wins",
			types.RuleMatch{Rule: RuleLayout, Confidence: 0.99, SourceText: "a"},
			types.RuleMatch{Rule: RuleEmail, Confidence: 0.5, SourceText: "b"},
			"b",
		},
		{
			"priority before confidence",
			types.RuleMatch{Rule: RuleSalary, Confidence: 0.6, SourceText: "a"},
			types.RuleMatch{Rule: RuleLayout, Confidence: 0.99, SourceText: "b"},
			"a",
		},
		{
			"confidence breaks priority tie",
			types.RuleMatch{Rule: RuleLayout, Confidence: 0.7, SourceText: "a"},
			types.RuleMatch{Rule: RuleLayout, Confidence: 0.8, SourceText: "b"},
			"b",
		},
		{
			"full tie keeps first seen",
			types.RuleMatch{Rule: RuleLayout, Confidence: 0.8, SourceText: "a"},
			types.RuleMatch{Rule: RuleLayout, Confidence: 0.8, SourceText: "b"},
			"a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, better(tt.a, tt.b).SourceText)
		})
	}
}

func TestSalaryFacts(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		expectedMin float64
		expectedMax float64
		currency    string
		none        bool
	}{
		{name: "euro range with thousands dots", text: "Salary: €50.000 - €70.000", expectedMin: 50000, expectedMax: 70000, currency: "EUR"},
		{name: "k suffix range", text: "Gehalt: 60k - 80k EUR", expectedMin: 60000, expectedMax: 80000, currency: "EUR"},
		{name: "dollar to range", text: "$100k to $120k", expectedMin: 100000, expectedMax: 120000, currency: "USD"},
		{name: "bis separator", text: "Vergütung: 45.000 bis 55.000 €", expectedMin: 45000, expectedMax: 55000, currency: "EUR"},
		{name: "single value keyword only", text: "Gehalt: 55000", expectedMin: 55000, expectedMax: 55000},
		{name: "comma thousands", text: "Pay: 50,000 - 70,000 GBP", expectedMin: 50000, expectedMax: 70000, currency: "GBP"},
		{name: "bare numbers rejected", text: "50.000 - 70.000", none: true},
		{name: "no numbers", text: "competitive salary", none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facts := salaryFacts(tt.text)
			if tt.none {
				assert.Empty(t, facts)
				return
			}
			byField := make(map[string]types.RuleMatch, len(facts))
			for _, f := range facts {
				byField[f.Field] = f
			}
			assert.Equal(t, tt.expectedMin, byField["compensation.salary_min"].Value)
			assert.Equal(t, tt.expectedMax, byField["compensation.salary_max"].Value)
			assert.Equal(t, true, byField["compensation.salary_provided"].Value)
			if tt.currency == "" {
				assert.NotContains(t, byField, "compensation.currency")
			} else {
				assert.Equal(t, tt.currency, byField["compensation.currency"].Value)
			}
		})
	}
}

func TestMatchPhoneDigitFilter(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"international", "Call +49 30 901820 now", "+49 30 901820"},
		{"too few digits", "Call 123456 now", ""},
		{"too many digits", "ID 123456789012345678901234", ""},
		{"dotted", "Tel: 030.123.45.67", "030.123.45.67"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := matchPhone(paragraph(tt.text), 0)
			if tt.expected == "" {
				assert.Empty(t, matches)
				return
			}
			require.Len(t, matches, 1)
			assert.Equal(t, tt.expected, matches[0].Value)
		})
	}
}

func TestMatchIndustry(t *testing.T) {
	matches := matchIndustry(paragraph("Über uns\nBranche: Automotive\nGegründet 1950"), 3)
	require.Len(t, matches, 1)
	assert.Equal(t, "Automotive", matches[0].Value)
	assert.Equal(t, "company.industry", matches[0].Field)
	assert.Equal(t, 3, matches[0].BlockIndex)

	assert.Empty(t, matchIndustry(paragraph("Industry: see www.example.com"), 0),
		"link noise is not an industry")
	assert.Empty(t, matchIndustry(paragraph("Our industry: software"), 0),
		"label must start the line")
}

func TestMatchLayoutClasses(t *testing.T) {
	e := &Extractor{}
	block := table(
		[]string{"Email:", "Jobs@Example.com"},
		[]string{"Telefon", "+49 89 1234567"},
		[]string{"Gehalt", "55.000 EUR"},
		[]string{"Branche", "Maschinenbau"},
		[]string{"Land", "Österreich"},
		[]string{"Benefits", "Free coffee"},
		[]string{"Email", "not-an-email"},
		[]string{"single-cell"},
	)

	matches := e.matchLayout(context.Background(), block, 0)
	byField := make(map[string]types.RuleMatch, len(matches))
	for _, m := range matches {
		byField[m.Field] = m
	}

	assert.Equal(t, "jobs@example.com", byField["company.contact_email"].Value)
	assert.InDelta(t, 0.85, byField["company.contact_email"].Confidence, 1e-9)

	assert.Equal(t, "+49 89 1234567", byField["company.contact_phone"].Value)

	assert.Equal(t, float64(55000), byField["compensation.salary_min"].Value)
	assert.InDelta(t, layoutSalaryCap, byField["compensation.salary_min"].Confidence, 1e-9,
		"table salary confidence is capped")
	assert.Equal(t, RuleLayout, byField["compensation.salary_min"].Rule)

	assert.Equal(t, "Maschinenbau", byField["company.industry"].Value)
	assert.InDelta(t, 0.75, byField["company.industry"].Confidence, 1e-9)

	assert.Equal(t, "AT", byField["location.country"].Value)

	for field := range byField {
		assert.NotEqual(t, "benefits", field, "unmapped headers contribute nothing")
	}
}

func TestMatchLayoutCountryHeaderHint(t *testing.T) {
	e := &Extractor{}
	block := table([]string{"Land:", "Eastasia"})

	matches := e.matchLayout(context.Background(), block, 0)
	require.Len(t, matches, 1)
	assert.Equal(t, "location.country", matches[0].Field,
		"colon-suffixed header still biases unknown tokens toward country")
	assert.Equal(t, "Eastasia", matches[0].Value)
}

func TestMatchLocationFirstResolvingLineWins(t *testing.T) {
	e := &Extractor{}
	block := paragraph("About the role\nStandort: Hamburg\nLand: Frankreich")

	matches := e.matchLocation(context.Background(), block, 0)
	byField := make(map[string]types.RuleMatch, len(matches))
	for _, m := range matches {
		byField[m.Field] = m
	}

	assert.Equal(t, "Hamburg", byField["location.primary_city"].Value)
	assert.Equal(t, "DE", byField["location.country"].Value,
		"country inferred from the city, later lines are not consulted")
	assert.Equal(t, "Standort: Hamburg", byField["location.primary_city"].SourceText)
}
