// Package skills extracts skill tags from job text with a language model.
// Extraction ships switched off; while off the service answers every
// request with empty skill lists.
package skills

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/format"
	"github.com/glageb/cur-vintage-jobs/internal/model"
)

const (
	// MaxSkillsPerJob caps the skills kept for one job.
	MaxSkillsPerJob = model.MaxCardSkills
	// MaxDescriptionChars caps the description text sent per job.
	MaxDescriptionChars = 4000
)

var (
	// ErrNoJobs is returned for an empty request.
	ErrNoJobs = errors.New("missing or empty jobs array")
	// ErrNotConfigured is returned when extraction is on but no API key is set.
	ErrNotConfigured = errors.New("OPENAI_API_KEY not configured")
)

// Service answers extraction requests.
type Service struct {
	enabled   bool
	completer Completer
	log       *zap.Logger
}

// NewService returns a Service. A nil completer with enabled set makes
// every request fail with ErrNotConfigured.
func NewService(enabled bool, completer Completer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{enabled: enabled, completer: completer, log: log}
}

// Enabled reports whether the language model is consulted.
func (s *Service) Enabled() bool { return s.enabled }

// Extract returns skills per job id. Every id in jobs is present in the
// result, even on error.
func (s *Service) Extract(ctx context.Context, jobs []model.JobForExtraction) (map[string][]string, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}
	if !s.enabled {
		return EmptyFor(jobs), nil
	}
	if s.completer == nil {
		return EmptyFor(jobs), ErrNotConfigured
	}

	raw, err := s.completer.Complete(ctx, buildPrompt(jobs))
	if err != nil {
		s.log.Error("[skills] extraction failed", zap.Error(err))
		return EmptyFor(jobs), fmt.Errorf("LLM extraction failed: %w", err)
	}

	result := parseSkills(raw, jobs)
	total := 0
	for _, list := range result {
		total += len(list)
	}
	if total == 0 {
		s.log.Warn("[skills] no skills returned",
			zap.Int("jobs", len(jobs)),
			zap.Int("response_len", len(raw)),
		)
	}
	return result, nil
}

// EmptyFor maps every job id to an empty list.
func EmptyFor(jobs []model.JobForExtraction) map[string][]string {
	out := make(map[string][]string, len(jobs))
	for _, j := range jobs {
		out[j.ID] = []string{}
	}
	return out
}

func buildPrompt(jobs []model.JobForExtraction) string {
	ids := make([]string, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	example1, example2 := "id1", "id2"
	if len(ids) > 0 {
		example1 = ids[0]
	}
	if len(ids) > 1 {
		example2 = ids[1]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a job skills analyst. For each job below, extract 5–%d skills or keywords that appear in the TITLE or DESCRIPTION. ", MaxSkillsPerJob)
	b.WriteString(`Use exact phrases from the post when possible (e.g. "Sage 50", "NVQ Level 2", "person-centred care"). `)
	b.WriteString("Include: software/tools, technical skills, qualifications, soft skills, and domain terms. ")
	b.WriteString("Do not invent skills; only list what is clearly mentioned.\n\n")
	fmt.Fprintf(&b, "Output format: a single JSON object. Each key must be one of the exact job IDs listed below; each value is an array of skill strings. Example: {%q: [\"Skill A\", \"Skill B\"], %q: [\"Skill C\"]}\n\n", example1, example2)
	fmt.Fprintf(&b, "Job IDs to use as keys (use these exactly): %s\n\nJob posts:\n", strings.Join(ids, ", "))
	for i, j := range jobs {
		if i > 0 {
			b.WriteString("\n")
		}
		desc := []rune(format.PlainText(j.Description))
		if len(desc) > MaxDescriptionChars {
			desc = desc[:MaxDescriptionChars]
		}
		fmt.Fprintf(&b, "--- ID: %s\nTITLE: %s\nDESCRIPTION: %s\n---\n", j.ID, strings.TrimSpace(j.Title), string(desc))
	}
	b.WriteString("\nReturn only the JSON object, no other text:")
	return b.String()
}
