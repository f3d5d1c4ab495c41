package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glageb/cur-vintage-jobs/internal/format"
	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// IDPrefix marks records authored locally.
const IDPrefix = "user-"

// ValidationError lists the form fields that block saving.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "job post incomplete: " + strings.Join(e.Fields, ", ")
}

// Saver persists a built record; *store.Store satisfies it.
type Saver interface {
	Save(ctx context.Context, rec model.UserJobRecord) error
}

// NewID returns a fresh, time-ordered record id.
func NewID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate job post id: %w", err)
	}
	return IDPrefix + u.String(), nil
}

// Validate returns a *ValidationError naming every unsatisfied gate, or nil.
func (s *State) Validate() error {
	var fields []string
	if strings.TrimSpace(s.title) == "" {
		fields = append(fields, "title")
	}
	if strings.TrimSpace(s.company) == "" {
		fields = append(fields, "company")
	}
	if strings.TrimSpace(s.location) == "" {
		fields = append(fields, "location")
	}
	if strings.TrimSpace(s.description) == "" || s.WordCount() > MaxDescriptionWords {
		fields = append(fields, "description")
	}
	if s.contract == ContractNone {
		fields = append(fields, "contractType")
	}
	if s.workType == WorkTypeNone {
		fields = append(fields, "workType")
	}
	if s.workPlace == WorkPlaceNone {
		fields = append(fields, "workPlace")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CanSubmit reports whether saving as draft or publishing is enabled.
func (s *State) CanSubmit() bool { return s.Validate() == nil }

// Build converts the form into a record with the given status. It does not
// validate; callers gate on Validate or use Submit. Lifecycle rules are
// left to the caller.
func (s *State) Build(status model.Status, now time.Time) (model.UserJobRecord, error) {
	if _, err := model.ParseStatus(string(status)); err != nil {
		return model.UserJobRecord{}, err
	}
	id := s.id
	if id == "" {
		var err error
		if id, err = NewID(); err != nil {
			return model.UserJobRecord{}, err
		}
	}

	now = now.UTC()
	parts := make([]string, 0, 3)
	if s.contract != ContractNone {
		parts = append(parts, string(s.contract))
	}
	parts = append(parts, s.Conditions()...)
	snippet := "—"
	if len(parts) > 0 {
		snippet = strings.Join(parts, format.PartSep)
	}

	skills := s.Skills()
	if len(skills) > model.MaxCardSkills {
		skills = skills[:model.MaxCardSkills]
	}
	if skills == nil {
		skills = []string{}
	}

	wordCount := s.WordCount()
	rec := model.UserJobRecord{
		JobCard: model.JobCard{
			ID:                 id,
			Title:              orDefault(s.title, "Position"),
			Company:            orDefault(s.company, "Company"),
			Location:           orDefault(s.location, "—"),
			SalaryDisplay:      format.PayRange(s.payMin, s.payMax),
			Snippet:            snippet,
			DescriptionExcerpt: format.Truncate(strings.TrimSpace(s.description), format.ExcerptLen),
			Skills:             skills,
			URL:                "#",
		},
		Status:    status,
		UpdatedAt: now.Format(model.TimestampLayout),
		WordCount: &wordCount,
	}
	if status == model.StatusPublished {
		rec.Posted = now.Format(model.DateLayout)
	}
	return rec, nil
}

// Submit validates the form, builds the record and saves it. A new post
// may only be saved as draft or published.
func (s *State) Submit(ctx context.Context, saver Saver, status model.Status) (model.UserJobRecord, error) {
	if s.id == "" && !model.IsCreatable(status) {
		return model.UserJobRecord{}, fmt.Errorf("a new job post cannot be saved as %q", status)
	}
	if err := s.Validate(); err != nil {
		return model.UserJobRecord{}, err
	}
	rec, err := s.Build(status, time.Now())
	if err != nil {
		return model.UserJobRecord{}, err
	}
	if err := saver.Save(ctx, rec); err != nil {
		return model.UserJobRecord{}, err
	}
	s.id = rec.ID
	return rec, nil
}

// FromRecord opens an existing record for editing. Contract and conditions
// are read back from the snippet and pay figures from the salary display;
// the description is the stored excerpt.
func FromRecord(rec model.UserJobRecord) *State {
	s := &State{
		id:          rec.ID,
		title:       rec.Title,
		company:     rec.Company,
		location:    rec.Location,
		description: rec.DescriptionExcerpt,
		skills:      append([]string(nil), rec.Skills...),
	}
	s.payMin, s.payMax = format.SplitPayRange(rec.SalaryDisplay)

	if rec.Snippet != "" && rec.Snippet != "—" {
		for _, part := range strings.Split(rec.Snippet, format.PartSep) {
			if c, ok := ParseContractType(part); ok && c != ContractNone {
				if s.contract == ContractNone {
					s.contract = c
				}
				continue
			}
			s.selectCondition(part)
		}
	}
	return s
}

func orDefault(v, def string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return def
}
