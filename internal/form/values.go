package form

import (
	"strings"

	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// Values is the wire shape of a filled-in form, as posted by the web client
// and the CLI.
type Values struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Skills       []string `json:"skills"`
	Location     string   `json:"location"`
	ContractType string   `json:"contractType"`
	Conditions   []string `json:"conditions"`
	PayMin       string   `json:"payMin"`
	PayMax       string   `json:"payMax"`
}

// FromValues fills a form from v through the same rules as interactive
// editing. Within a condition group the last label wins and blank skills
// are dropped. existing is the record being edited, or nil for a new post.
//
// A new post may carry at most MaxSkills skills. An edit may keep a longer
// list it already had but not grow past max(MaxSkills, len(existing.Skills)).
// Unknown labels and excess skills yield a *ValidationError.
func FromValues(v Values, existing *model.UserJobRecord) (*State, error) {
	s := &State{}
	limit := MaxSkills
	if existing != nil {
		s.id = existing.ID
		limit = max(MaxSkills, len(existing.Skills))
	}
	s.SetTitle(v.Title)
	s.SetCompany(v.Company)
	s.SetLocation(v.Location)
	s.SetDescription(v.Description)
	s.SetPayMin(v.PayMin)
	s.SetPayMax(v.PayMax)
	for _, skill := range v.Skills {
		if t := strings.TrimSpace(skill); t != "" {
			s.skills = append(s.skills, t)
		}
	}

	var bad []string
	c, ok := ParseContractType(v.ContractType)
	if !ok {
		bad = append(bad, "contractType")
	}
	s.contract = c
	for _, label := range v.Conditions {
		if !s.selectCondition(label) {
			bad = append(bad, "conditions")
			break
		}
	}
	if len(s.skills) > limit {
		bad = append(bad, "skills")
	}
	if len(bad) > 0 {
		return nil, &ValidationError{Fields: bad}
	}
	return s, nil
}

// Values returns the current form contents.
func (s *State) Values() Values {
	return Values{
		Title:        s.title,
		Company:      s.company,
		Description:  s.description,
		Skills:       s.Skills(),
		Location:     s.location,
		ContractType: string(s.contract),
		Conditions:   s.Conditions(),
		PayMin:       s.payMin,
		PayMax:       s.payMax,
	}
}
