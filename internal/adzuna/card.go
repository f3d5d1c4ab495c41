package adzuna

import (
	"strings"

	"github.com/glageb/cur-vintage-jobs/internal/format"
	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// Field defaults for listings that omit them.
const (
	DefaultTitle    = "Position"
	DefaultCompany  = "Company"
	DefaultLocation = "—"
	// NoSnippet is shown when a listing has no salary, contract or description.
	NoSnippet = "Apply for details."
)

var contractTimes = map[string]string{
	"full_time": "Full-time",
	"part_time": "Part-time",
	"contract":  "Contract",
}

func toCard(r rawResult) model.JobCard {
	card := model.JobCard{
		ID:                 string(r.ID),
		Title:              r.Title,
		Company:            DefaultCompany,
		Location:           DefaultLocation,
		SalaryDisplay:      format.SalaryRange(r.SalaryMin, r.SalaryMax),
		Snippet:            snippet(r),
		Posted:             format.Posted(r.Created),
		DescriptionExcerpt: format.Excerpt(r.Description),
		Skills:             []string{},
		URL:                r.RedirectURL,
	}
	if card.Title == "" {
		card.Title = DefaultTitle
	}
	if r.Company != nil && r.Company.DisplayName != nil {
		card.Company = *r.Company.DisplayName
	}
	if r.Location != nil && r.Location.DisplayName != nil {
		card.Location = *r.Location.DisplayName
	}
	return card
}

// snippet prefers the salary and contract phrase, then a short plain-text
// excerpt of the description.
func snippet(r rawResult) string {
	var parts []string
	if salary := format.SalaryRange(r.SalaryMin, r.SalaryMax); salary != "" {
		parts = append(parts, salary)
	}
	if r.ContractTime != "" {
		if label, ok := contractTimes[strings.ToLower(r.ContractTime)]; ok {
			parts = append(parts, label)
		} else {
			parts = append(parts, r.ContractTime)
		}
	}
	if strings.EqualFold(r.ContractType, "permanent") {
		parts = append(parts, "Permanent")
	}
	if len(parts) == 0 {
		if s := format.SnippetExcerpt(r.Description); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return NoSnippet
	}
	return strings.Join(parts, format.PartSep)
}
