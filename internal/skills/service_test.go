package skills_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/glageb/cur-vintage-jobs/internal/model"
	"github.com/glageb/cur-vintage-jobs/internal/skills"
)

type fakeCompleter struct {
	reply  string
	err    error
	prompt string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, f.err
}

var jobs = []model.JobForExtraction{
	{ID: "101", Title: "Bookkeeper", Description: "<p>Sage 50 and <b>payroll</b></p>"},
	{ID: "102", Title: "Carer", Description: "NVQ Level 2"},
}

func TestExtract_NoJobs(t *testing.T) {
	svc := skills.NewService(true, &fakeCompleter{}, nil)
	_, err := svc.Extract(context.Background(), nil)
	if !errors.Is(err, skills.ErrNoJobs) {
		t.Fatalf("err = %v, want ErrNoJobs", err)
	}
	if err.Error() != "missing or empty jobs array" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestExtract_DisabledReturnsEmptyLists(t *testing.T) {
	fc := &fakeCompleter{reply: `{"101":["x"]}`}
	got, err := skills.NewService(false, fc, nil).Extract(context.Background(), jobs)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || len(got["101"]) != 0 || got["102"] == nil {
		t.Errorf("got %v, want empty list per id", got)
	}
	if fc.prompt != "" {
		t.Error("model consulted while disabled")
	}
}

func TestExtract_EnabledWithoutKey(t *testing.T) {
	got, err := skills.NewService(true, nil, nil).Extract(context.Background(), jobs)
	if !errors.Is(err, skills.ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
	if len(got) != 2 {
		t.Errorf("got %v, want every id present", got)
	}
}

func TestExtract_ModelFailure(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("rate limited")}
	got, err := skills.NewService(true, fc, nil).Extract(context.Background(), jobs)
	if err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("err = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %v", got)
	}
}

func TestExtract_Prompt(t *testing.T) {
	fc := &fakeCompleter{reply: "{}"}
	if _, err := skills.NewService(true, fc, nil).Extract(context.Background(), jobs); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"101, 102", "--- ID: 101", "DESCRIPTION: Sage 50 and payroll", "TITLE: Carer"} {
		if !strings.Contains(fc.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(fc.prompt, "<p>") {
		t.Error("markup leaked into prompt")
	}
}

func TestExtract_TolerantParsing(t *testing.T) {
	cases := []struct {
		name  string
		reply string
		want  map[string]string
	}{
		{"plain", `{"101":["Sage 50"," payroll "],"102":["NVQ Level 2"]}`,
			map[string]string{"101": "Sage 50|payroll", "102": "NVQ Level 2"}},
		{"fenced", "```json\n{\"101\":[\"Sage 50\"]}\n```",
			map[string]string{"101": "Sage 50", "102": ""}},
		{"wrapper", `{"skillsByJobId":{"102":["Care"]}}`,
			map[string]string{"101": "", "102": "Care"}},
		{"data array", `{"data":[{"jobId":101,"skills":["Excel",""]},{"key":"102","skills":"nope"}]}`,
			map[string]string{"101": "Excel", "102": ""}},
		{"embedded", `Sure! Here you go: {"101":["Xero", 42]} hope that helps`,
			map[string]string{"101": "Xero|42", "102": ""}},
		{"garbage", `no json at all`,
			map[string]string{"101": "", "102": ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := skills.NewService(true, &fakeCompleter{reply: tc.reply}, nil).Extract(context.Background(), jobs)
			if err != nil {
				t.Fatal(err)
			}
			for id, want := range tc.want {
				if s := strings.Join(got[id], "|"); s != want {
					t.Errorf("%s: got %q, want %q", id, s, want)
				}
			}
		})
	}
}

func TestExtract_CapsSkillsPerJob(t *testing.T) {
	reply := `{"101":["a","b","c","d","e","f","g","h","i","j","k","l"]}`
	got, _ := skills.NewService(true, &fakeCompleter{reply: reply}, nil).Extract(context.Background(), jobs)
	if len(got["101"]) != skills.MaxSkillsPerJob {
		t.Errorf("len = %d, want %d", len(got["101"]), skills.MaxSkillsPerJob)
	}
}
