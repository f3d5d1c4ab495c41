package form_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glageb/cur-vintage-jobs/internal/form"
	"github.com/glageb/cur-vintage-jobs/internal/model"
	"github.com/glageb/cur-vintage-jobs/internal/store"
)

func bookkeeper() *form.State {
	s := form.New()
	s.SetTitle("Bookkeeper")
	s.SetCompany("Acme")
	s.SetLocation("London")
	s.SetDescription("Keep the books tidy")
	s.ToggleContract(form.ContractPermanent)
	s.ToggleCondition("Full-time")
	s.ToggleCondition("Remote")
	return s
}

func TestSubmit_PublishedScenario(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewMemoryBackend(), "", nil)

	rec, err := bookkeeper().Submit(ctx, st, model.StatusPublished)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	stored, err := st.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.Snippet != "Permanent · Full-time · Remote" {
		t.Errorf("Snippet = %q", stored.Snippet)
	}
	if stored.WordCount == nil || *stored.WordCount != 4 {
		t.Errorf("WordCount = %v, want 4", stored.WordCount)
	}
	if today := time.Now().UTC().Format("2006-01-02"); stored.Posted != today {
		t.Errorf("Posted = %q, want %q", stored.Posted, today)
	}
	if stored.Status != model.StatusPublished || stored.URL != "#" {
		t.Errorf("record = %+v", stored)
	}
	if !strings.HasPrefix(stored.ID, form.IDPrefix) {
		t.Errorf("ID = %q", stored.ID)
	}
}

func TestSubmit_RejectsIncompleteForm(t *testing.T) {
	st := store.New(store.NewMemoryBackend(), "", nil)
	s := bookkeeper()
	s.ToggleCondition("Remote") // clears the work place

	_, err := s.Submit(context.Background(), st, model.StatusDraft)
	var verr *form.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "workPlace" {
		t.Errorf("Fields = %v", verr.Fields)
	}
	if list, _ := st.List(context.Background()); len(list) != 0 {
		t.Errorf("store written despite validation failure: %v", list)
	}
}

func TestSubmit_ResubmitKeepsID(t *testing.T) {
	ctx := context.Background()
	st := store.New(store.NewMemoryBackend(), "", nil)
	s := bookkeeper()

	first, err := s.Submit(ctx, st, model.StatusDraft)
	if err != nil {
		t.Fatal(err)
	}
	s.SetTitle("Senior Bookkeeper")
	second, err := s.Submit(ctx, st, model.StatusPublished)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("id changed: %q → %q", first.ID, second.ID)
	}
	if list, _ := st.List(ctx); len(list) != 1 || list[0].Title != "Senior Bookkeeper" {
		t.Errorf("List = %+v", list)
	}
}

func TestBuild_Fields(t *testing.T) {
	now := time.Date(2026, 10, 15, 23, 59, 0, 0, time.FixedZone("X", -3600))
	s := bookkeeper()
	s.SetPayMin("30000")
	s.SetPayMax("45k")
	for _, k := range []string{"Excel", "Sage"} {
		s.AddSkill(k)
	}

	draft, err := s.Build(model.StatusDraft, now)
	if err != nil {
		t.Fatal(err)
	}
	if draft.Posted != "" {
		t.Errorf("draft Posted = %q, want empty", draft.Posted)
	}
	if draft.SalaryDisplay != "30k–45k" {
		t.Errorf("SalaryDisplay = %q", draft.SalaryDisplay)
	}
	if draft.UpdatedAt != "2026-10-16T00:59:00.000Z" {
		t.Errorf("UpdatedAt = %q", draft.UpdatedAt)
	}
	if draft.DescriptionExcerpt != "Keep the books tidy" {
		t.Errorf("DescriptionExcerpt = %q", draft.DescriptionExcerpt)
	}

	pub, _ := s.Build(model.StatusPublished, now)
	if pub.Posted != "2026-10-16" {
		t.Errorf("published Posted = %q", pub.Posted)
	}

	if _, err := s.Build(model.Status("archived"), now); err == nil {
		t.Error("Build(archived) should fail")
	}
	if _, err := form.New().Submit(context.Background(), store.New(store.NewMemoryBackend(), "", nil), model.StatusUnpublished); err == nil {
		t.Error("new post submitted as unpublished")
	}
}

func TestBuild_Defaults(t *testing.T) {
	rec, err := form.New().Build(model.StatusDraft, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if rec.Title != "Position" || rec.Company != "Company" || rec.Location != "—" || rec.Snippet != "—" {
		t.Errorf("defaults = %+v", rec.JobCard)
	}
	if rec.SalaryDisplay != "" || rec.Skills == nil {
		t.Errorf("salary/skills = %q %v", rec.SalaryDisplay, rec.Skills)
	}
}

func TestBuild_CapsSkillsAtTen(t *testing.T) {
	rec := model.UserJobRecord{JobCard: model.JobCard{ID: "user-1", Skills: strings.Fields("a b c d e f g h i j k l")}}
	s := form.FromRecord(rec)
	if len(s.Skills()) != 12 {
		t.Fatalf("editing truncated visible skills: %d", len(s.Skills()))
	}
	if s.AddSkill("m") {
		t.Error("addition accepted past the limit")
	}
	out, _ := s.Build(model.StatusDraft, time.Now())
	if len(out.Skills) != model.MaxCardSkills {
		t.Errorf("saved %d skills, want %d", len(out.Skills), model.MaxCardSkills)
	}
}

func TestFromRecord_RoundTrip(t *testing.T) {
	s := bookkeeper()
	s.SetPayMin("30")
	s.SetPayMax("45")
	rec, err := s.Build(model.StatusPublished, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	edit := form.FromRecord(rec)
	if edit.ID() != rec.ID {
		t.Errorf("ID = %q", edit.ID())
	}
	if edit.Contract() != form.ContractPermanent || edit.WorkType() != form.WorkTypeFullTime || edit.WorkPlace() != form.WorkPlaceRemote {
		t.Errorf("attributes = %q %q %q", edit.Contract(), edit.WorkType(), edit.WorkPlace())
	}
	v := edit.Values()
	if v.PayMin != "30" || v.PayMax != "45" || v.Description != "Keep the books tidy" {
		t.Errorf("Values = %+v", v)
	}
	if !edit.CanSubmit() {
		t.Error("rehydrated form should be submittable")
	}
}

func TestFromValues(t *testing.T) {
	s, err := form.FromValues(form.Values{
		Title:        "Bookkeeper",
		Company:      "Acme",
		Location:     "London",
		Description:  "one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen",
		ContractType: "Temporary",
		Conditions:   []string{"Full-time", "Hybrid", "Part-time"},
		Skills:       []string{" Excel ", ""},
	}, nil)
	if err != nil {
		t.Fatalf("FromValues: %v", err)
	}
	if s.WordCount() != 15 {
		t.Errorf("WordCount = %d", s.WordCount())
	}
	if got := s.Conditions(); len(got) != 2 || got[0] != "Part-time" || got[1] != "Hybrid" {
		t.Errorf("Conditions = %v", got)
	}
	if got := s.Skills(); len(got) != 1 || got[0] != "Excel" {
		t.Errorf("Skills = %v", got)
	}

	_, err = form.FromValues(form.Values{ContractType: "Freelance", Conditions: []string{"Weekends"}}, nil)
	var verr *form.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 2 {
		t.Errorf("err = %v, want contractType and conditions", err)
	}
}

func TestFromValues_SkillLimit(t *testing.T) {
	values := func(n int) form.Values {
		v := bookkeeper().Values()
		v.Skills = make([]string, n)
		for i := range v.Skills {
			v.Skills[i] = fmt.Sprintf("skill %d", i+1)
		}
		return v
	}

	if _, err := form.FromValues(values(form.MaxSkills), nil); err != nil {
		t.Errorf("new post with %d skills: %v", form.MaxSkills, err)
	}
	_, err := form.FromValues(values(11), nil)
	var verr *form.ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) != 1 || verr.Fields[0] != "skills" {
		t.Errorf("new post with 11 skills: err = %v, want skills", err)
	}

	five := model.UserJobRecord{JobCard: model.JobCard{ID: "user-5", Skills: strings.Fields("a b c d e")}}
	if _, err := form.FromValues(values(10), &five); !errors.As(err, &verr) {
		t.Errorf("edit grew 5 skills to 10: err = %v", err)
	}
	s, err := form.FromValues(values(form.MaxSkills), &five)
	if err != nil || s.ID() != "user-5" {
		t.Errorf("edit within limit: err = %v", err)
	}

	ten := model.UserJobRecord{JobCard: model.JobCard{ID: "user-10", Skills: strings.Fields("a b c d e f g h i j")}}
	if _, err := form.FromValues(values(10), &ten); err != nil {
		t.Errorf("edit keeping 10 existing skills: %v", err)
	}
	if _, err := form.FromValues(values(11), &ten); err == nil {
		t.Error("edit grew 10 skills to 11")
	}
}
