package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() IntakeForm {
	return IntakeForm{
		CompanyName:                 "Acme Labs",
		CompanyIndustry:             IndustryClimate,
		CompanyWebsite:              "https://acme.example.com",
		ContactName:                 "Dana Reyes",
		ContactRole:                 "CTO",
		ContactEmail:                "dana@acme.example.com",
		ProjectTitle:                "Grid forecasting",
		ProjectDescriptionDetailed:  "Forecast regional load from weather data.",
		ExpectedOutcomes:            []string{"prototype"},
		Deliverables:                []string{"notebook", "report"},
		SuccessCriteria:             []string{"beats baseline"},
		ScopeClarity:                ScopePartiallyDefined,
		WeeklyTimeCommitment:        4,
		ConfidentialityRequirements: ConfidentialityNone,
		DataAccess:                  "public datasets",
		ProjectSector:               SectorClimate,
	}
}

func fieldNames(err error) []string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestIntakeValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *IntakeForm)
		fields []string
	}{
		{"valid", func(*IntakeForm) {}, nil},
		{"no website is fine", func(f *IntakeForm) { f.CompanyWebsite = "" }, nil},
		{"missing company", func(f *IntakeForm) { f.CompanyName = "  " }, []string{"company_name"}},
		{"bad email", func(f *IntakeForm) { f.ContactEmail = "dana-at-acme" }, []string{"contact_email"}},
		{"bad website", func(f *IntakeForm) { f.CompanyWebsite = "not a url" }, []string{"company_website"}},
		{"bad video link", func(f *IntakeForm) { f.VideoLinks = []string{"https://v.example.com/1", "nope"} }, []string{"video_links[1]"}},
		{"title too long", func(f *IntakeForm) { f.ProjectTitle = strings.Repeat("x", 151) }, []string{"project_title"}},
		{"summary too long", func(f *IntakeForm) { f.ProjectSummaryShort = strings.Repeat("é", 301) }, []string{"project_summary_short"}},
		{"no outcomes", func(f *IntakeForm) { f.ExpectedOutcomes = nil }, []string{"expected_outcomes"}},
		{"too many outcomes", func(f *IntakeForm) { f.ExpectedOutcomes = []string{"a", "b", "c", "d", "e", "f"} }, []string{"expected_outcomes"}},
		{"commitment out of range", func(f *IntakeForm) { f.WeeklyTimeCommitment = 16 }, []string{"weekly_time_commitment"}},
		{"unknown industry", func(f *IntakeForm) { f.CompanyIndustry = "Mining" }, []string{"company_industry"}},
		{"unknown scope", func(f *IntakeForm) { f.ScopeClarity = "vague" }, []string{"scope_clarity"}},
		{"missing data access", func(f *IntakeForm) { f.DataAccess = "" }, []string{"data_access"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.fields, fieldNames(err))
		})
	}
}

func TestIntakeValidateCollectsEveryField(t *testing.T) {
	err := (&IntakeForm{}).Validate()
	require.Error(t, err)
	names := fieldNames(err)
	assert.Contains(t, names, "company_name")
	assert.Contains(t, names, "contact_email")
	assert.Contains(t, names, "deliverables")
	assert.Contains(t, names, "project_sector")
	assert.Contains(t, err.Error(), "validation failed: ")
}

func TestIntakeNormalize(t *testing.T) {
	f := IntakeForm{CompanyName: "  Acme ", ContactEmail: " dana@acme.example.com\n"}
	f.Normalize()
	assert.Equal(t, "Acme", f.CompanyName)
	assert.Equal(t, "dana@acme.example.com", f.ContactEmail)
	assert.NotNil(t, f.VideoLinks)
	assert.NotNil(t, f.SupplementaryDocuments)
	assert.Empty(t, f.Deliverables)
}
