package model

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
)

type CompanyIndustry string

const (
	IndustryFinance       CompanyIndustry = "Finance"
	IndustryHealthcare    CompanyIndustry = "Healthcare"
	IndustryRetail        CompanyIndustry = "Retail"
	IndustryClimate       CompanyIndustry = "Climate"
	IndustrySocialImpact  CompanyIndustry = "Social Impact"
	IndustryEducation     CompanyIndustry = "Education"
	IndustryManufacturing CompanyIndustry = "Manufacturing"
)

type ConfidentialityRequirement string

const (
	ConfidentialityNone ConfidentialityRequirement = "None"
	ConfidentialityNDA  ConfidentialityRequirement = "Non-Disclosure Agreement (NDA) required"
	ConfidentialityIP   ConfidentialityRequirement = "Intellectual Property (IP) agreement required"
)

type ProjectSector string

const (
	SectorHealthcare   ProjectSector = "Healthcare"
	SectorFinance      ProjectSector = "Finance"
	SectorRetail       ProjectSector = "Retail"
	SectorClimate      ProjectSector = "Climate"
	SectorPublicSector ProjectSector = "Public Sector"
)

type ScopeClarity string

const (
	ScopeFullyDefined     ScopeClarity = "fully defined"
	ScopePartiallyDefined ScopeClarity = "partially defined"
	ScopeExploratory      ScopeClarity = "exploratory"
)

// IntakeForm is a client's project proposal
type IntakeForm struct {
	ID              string          `json:"id,omitempty" bson:"_id,omitempty"`
	CompanyName     string          `json:"company_name" bson:"company_name"`
	CompanyIndustry CompanyIndustry `json:"company_industry" bson:"company_industry"`
	CompanyWebsite  string          `json:"company_website,omitempty" bson:"company_website,omitempty"`

	ContactName  string `json:"contact_name" bson:"contact_name"`
	ContactRole  string `json:"contact_role" bson:"contact_role"`
	ContactEmail string `json:"contact_email" bson:"contact_email"`

	ProjectTitle               string       `json:"project_title" bson:"project_title"`
	ProjectSummaryShort        string       `json:"project_summary_short,omitempty" bson:"project_summary_short,omitempty"`
	ProjectDescriptionDetailed string       `json:"project_description_detailed" bson:"project_description_detailed"`
	ProblemStatement           string       `json:"problem_statement,omitempty" bson:"problem_statement,omitempty"`
	ExpectedOutcomes           []string     `json:"expected_outcomes" bson:"expected_outcomes"`
	Deliverables               []string     `json:"deliverables" bson:"deliverables"`
	SuccessCriteria            []string     `json:"success_criteria" bson:"success_criteria"`
	ScopeClarity               ScopeClarity `json:"scope_clarity" bson:"scope_clarity"`

	RequiredSkills   []string `json:"required_skills" bson:"required_skills"`
	TechnicalDomains []string `json:"technical_domains" bson:"technical_domains"`

	WeeklyTimeCommitment        int                        `json:"weekly_time_commitment" bson:"weekly_time_commitment"`
	ConfidentialityRequirements ConfidentialityRequirement `json:"confidentiality_requirements" bson:"confidentiality_requirements"`
	DataAccess                  string                     `json:"data_access" bson:"data_access"`

	ProjectSector ProjectSector `json:"project_sector" bson:"project_sector"`

	SupplementaryDocuments []string `json:"supplementary_documents" bson:"supplementary_documents"`
	VideoLinks             []string `json:"video_links" bson:"video_links"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at"`
}

// FieldError describes one invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field-level problems with a client submission
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// OrNil returns e when it holds at least one field error.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Normalize trims free text and replaces nil lists with empty ones.
func (f *IntakeForm) Normalize() {
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.ContactName = strings.TrimSpace(f.ContactName)
	f.ContactRole = strings.TrimSpace(f.ContactRole)
	f.ContactEmail = strings.TrimSpace(f.ContactEmail)
	f.ProjectTitle = strings.TrimSpace(f.ProjectTitle)
	f.CompanyWebsite = strings.TrimSpace(f.CompanyWebsite)
	for _, list := range []*[]string{
		&f.ExpectedOutcomes, &f.Deliverables, &f.SuccessCriteria,
		&f.RequiredSkills, &f.TechnicalDomains, &f.SupplementaryDocuments, &f.VideoLinks,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
}

// Validate checks the form against the intake schema.
func (f *IntakeForm) Validate() error {
	verr := &ValidationError{}

	requireText(verr, "company_name", f.CompanyName, 200)
	requireText(verr, "contact_name", f.ContactName, 100)
	requireText(verr, "contact_role", f.ContactRole, 100)
	requireText(verr, "project_title", f.ProjectTitle, 150)
	requireText(verr, "project_description_detailed", f.ProjectDescriptionDetailed, 5000)
	if utf8.RuneCountInString(f.ProjectSummaryShort) > 300 {
		verr.add("project_summary_short", "must be at most 300 characters")
	}
	if strings.TrimSpace(f.DataAccess) == "" {
		verr.add("data_access", "is required")
	}

	if !govalidator.IsEmail(f.ContactEmail) {
		verr.add("contact_email", "must be a valid email address")
	}
	if f.CompanyWebsite != "" && !govalidator.IsRequestURL(f.CompanyWebsite) {
		verr.add("company_website", "must be a valid URL")
	}
	for i, link := range f.VideoLinks {
		if !govalidator.IsRequestURL(link) {
			verr.add(fmt.Sprintf("video_links[%d]", i), "must be a valid URL")
		}
	}

	checkItems(verr, "expected_outcomes", f.ExpectedOutcomes, 1, 5)
	checkItems(verr, "deliverables", f.Deliverables, 1, 10)
	checkItems(verr, "success_criteria", f.SuccessCriteria, 1, 0)

	if !govalidator.InRangeInt(f.WeeklyTimeCommitment, 1, 15) {
		verr.add("weekly_time_commitment", "must be between 1 and 15")
	}

	checkEnum(verr, "company_industry", string(f.CompanyIndustry),
		IndustryFinance, IndustryHealthcare, IndustryRetail, IndustryClimate,
		IndustrySocialImpact, IndustryEducation, IndustryManufacturing)
	checkEnum(verr, "confidentiality_requirements", string(f.ConfidentialityRequirements),
		ConfidentialityNone, ConfidentialityNDA, ConfidentialityIP)
	checkEnum(verr, "project_sector", string(f.ProjectSector),
		SectorHealthcare, SectorFinance, SectorRetail, SectorClimate, SectorPublicSector)
	checkEnum(verr, "scope_clarity", string(f.ScopeClarity),
		ScopeFullyDefined, ScopePartiallyDefined, ScopeExploratory)

	return verr.OrNil()
}

func requireText(verr *ValidationError, field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		verr.add(field, "is required")
		return
	}
	if !govalidator.StringLength(value, "1", fmt.Sprint(max)) {
		verr.add(field, "must be at most %d characters", max)
	}
}

func checkItems(verr *ValidationError, field string, items []string, min, max int) {
	if len(items) < min {
		verr.add(field, "must contain at least %d item(s)", min)
	}
	if max > 0 && len(items) > max {
		verr.add(field, "must contain at most %d item(s)", max)
	}
}

func checkEnum[T ~string](verr *ValidationError, field, value string, allowed ...T) {
	for _, a := range allowed {
		if value == string(a) {
			return
		}
	}
	verr.add(field, "%q is not an accepted value", value)
}
