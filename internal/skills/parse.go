package skills

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/glageb/cur-vintage-jobs/internal/model"
)

var (
	fencePattern  = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// parseSkills reads a model reply into skills per job. It tolerates code
// fences, {"skillsByJobId": …} or {"data": …} wrappers, arrays of
// {id|jobId|key, skills} items and JSON embedded in prose. Ids missing
// from the reply map to empty lists.
func parseSkills(raw string, jobs []model.JobForExtraction) map[string][]string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if m := fencePattern.FindStringSubmatch(raw); m != nil {
			raw = strings.TrimSpace(m[1])
		}
	}

	byID := decodeSkills(raw, true)
	if byID == nil {
		if m := objectPattern.FindString(raw); m != "" {
			byID = decodeSkills(m, false)
		}
	}

	out := make(map[string][]string, len(jobs))
	for _, j := range jobs {
		out[j.ID] = cleanSkills(byID[j.ID])
	}
	return out
}

// decodeSkills returns nil when raw is not JSON.
func decodeSkills(raw string, allowArray bool) map[string][]any {
	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}

	body := parsed
	if obj, ok := parsed.(map[string]any); ok {
		if v, ok := obj["skillsByJobId"]; ok && v != nil {
			body = v
		} else if v, ok := obj["data"]; ok && v != nil {
			body = v
		}
	}

	out := make(map[string][]any)
	switch v := body.(type) {
	case map[string]any:
		for k, list := range v {
			items, _ := list.([]any)
			out[k] = items
		}
	case []any:
		if !allowArray {
			return out
		}
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id := firstID(obj)
			if id == "" {
				continue
			}
			items, _ := obj["skills"].([]any)
			out[id] = items
		}
	}
	return out
}

func firstID(obj map[string]any) string {
	for _, k := range []string{"id", "jobId", "key"} {
		if v, ok := obj[k]; ok && v != nil {
			return stringify(v)
		}
	}
	return ""
}

func cleanSkills(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		s := strings.TrimSpace(stringify(item))
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == MaxSkillsPerJob {
			break
		}
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
