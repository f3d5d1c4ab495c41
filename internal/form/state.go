// Package form holds the post-a-job form: its editing rules, the gate that
// enables saving, and the conversion of form values into a stored record.
//
// Field rules are applied on every edit, not only at submit:
//
//	description  ≤ 15 words, longer input is clamped to the first 15
//	skills       ≤ 8 while adding; existing longer lists stay visible
//	contract     Permanent | Temporary | none
//	work type    Full-time | Part-time | none
//	work place   Remote | Hybrid | In office | none
package form

import (
	"strings"

	"github.com/glageb/cur-vintage-jobs/internal/format"
)

const (
	// MaxDescriptionWords is the description word limit.
	MaxDescriptionWords = 15
	// MaxSkills is how many skills may be added in the form.
	MaxSkills = 8
)

// ContractType is the optional contract selection.
type ContractType string

const (
	ContractNone      ContractType = ""
	ContractPermanent ContractType = "Permanent"
	ContractTemporary ContractType = "Temporary"
)

// WorkType is the optional full-/part-time selection.
type WorkType string

const (
	WorkTypeNone     WorkType = ""
	WorkTypeFullTime WorkType = "Full-time"
	WorkTypePartTime WorkType = "Part-time"
)

// WorkPlace is the optional remote/hybrid/office selection.
type WorkPlace string

const (
	WorkPlaceNone     WorkPlace = ""
	WorkPlaceRemote   WorkPlace = "Remote"
	WorkPlaceHybrid   WorkPlace = "Hybrid"
	WorkPlaceInOffice WorkPlace = "In office"
)

// ConditionLabels lists every condition in display order.
var ConditionLabels = []string{
	string(WorkTypeFullTime),
	string(WorkTypePartTime),
	string(WorkPlaceRemote),
	string(WorkPlaceHybrid),
	string(WorkPlaceInOffice),
}

// ParseContractType accepts "" or one of the contract labels.
func ParseContractType(s string) (ContractType, bool) {
	switch c := ContractType(s); c {
	case ContractNone, ContractPermanent, ContractTemporary:
		return c, true
	}
	return ContractNone, false
}

func workTypeOf(label string) (WorkType, bool) {
	switch w := WorkType(label); w {
	case WorkTypeFullTime, WorkTypePartTime:
		return w, true
	}
	return WorkTypeNone, false
}

func workPlaceOf(label string) (WorkPlace, bool) {
	switch w := WorkPlace(label); w {
	case WorkPlaceRemote, WorkPlaceHybrid, WorkPlaceInOffice:
		return w, true
	}
	return WorkPlaceNone, false
}

// Direction moves a skill within the list.
type Direction int

const (
	Up Direction = iota
	Down
)

// State is the editable form. The zero value is an empty new-post form.
type State struct {
	id          string
	title       string
	company     string
	location    string
	description string
	payMin      string
	payMax      string
	skills      []string
	contract    ContractType
	workType    WorkType
	workPlace   WorkPlace
}

// New returns an empty form for a new post.
func New() *State { return &State{} }

// ID is the id of the record being edited, or "" for a new post.
func (s *State) ID() string { return s.id }

func (s *State) SetTitle(v string)    { s.title = v }
func (s *State) SetCompany(v string)  { s.company = v }
func (s *State) SetLocation(v string) { s.location = v }
func (s *State) SetPayMin(v string)   { s.payMin = v }
func (s *State) SetPayMax(v string)   { s.payMax = v }

// SetDescription stores text, clamped to the first MaxDescriptionWords words.
func (s *State) SetDescription(text string) {
	s.description = format.ClampWords(text, MaxDescriptionWords)
}

// Description returns the stored description.
func (s *State) Description() string { return s.description }

// WordCount is the number of words in the description.
func (s *State) WordCount() int { return format.CountWords(s.description) }

// ─── Skills ──────────────────────────────────────────────────────────────────

// Skills returns a copy of the skill list.
func (s *State) Skills() []string { return append([]string(nil), s.skills...) }

// AddSkill appends a trimmed skill. Blank input and additions once
// MaxSkills are present are rejected.
func (s *State) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || len(s.skills) >= MaxSkills {
		return false
	}
	s.skills = append(s.skills, skill)
	return true
}

// EditSkill replaces the skill at i. Blank input leaves it unchanged.
func (s *State) EditSkill(i int, skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || i < 0 || i >= len(s.skills) {
		return false
	}
	s.skills[i] = skill
	return true
}

// RemoveSkill deletes the skill at i.
func (s *State) RemoveSkill(i int) bool {
	if i < 0 || i >= len(s.skills) {
		return false
	}
	s.skills = append(s.skills[:i], s.skills[i+1:]...)
	return true
}

// MoveSkill swaps the skill at i with its neighbour. Moves past either end
// are ignored.
func (s *State) MoveSkill(i int, dir Direction) bool {
	target := i + 1
	if dir == Up {
		target = i - 1
	}
	if i < 0 || i >= len(s.skills) || target < 0 || target >= len(s.skills) {
		return false
	}
	s.skills[i], s.skills[target] = s.skills[target], s.skills[i]
	return true
}

// ─── Attributes ──────────────────────────────────────────────────────────────

// Contract returns the selected contract type.
func (s *State) Contract() ContractType { return s.contract }

// WorkType returns the selected work type.
func (s *State) WorkType() WorkType { return s.workType }

// WorkPlace returns the selected work place.
func (s *State) WorkPlace() WorkPlace { return s.workPlace }

// ToggleContract selects c, or clears it when c is already selected.
func (s *State) ToggleContract(c ContractType) {
	if s.contract == c {
		s.contract = ContractNone
		return
	}
	s.contract = c
}

// ToggleCondition selects label within its group, replacing the group's
// previous choice, or clears the group when label is already selected.
// The other group is never touched. Unknown labels are reported as false.
func (s *State) ToggleCondition(label string) bool {
	if w, ok := workTypeOf(label); ok {
		if s.workType == w {
			s.workType = WorkTypeNone
		} else {
			s.workType = w
		}
		return true
	}
	if p, ok := workPlaceOf(label); ok {
		if s.workPlace == p {
			s.workPlace = WorkPlaceNone
		} else {
			s.workPlace = p
		}
		return true
	}
	return false
}

// selectCondition selects label without the toggle-off behaviour.
func (s *State) selectCondition(label string) bool {
	if w, ok := workTypeOf(label); ok {
		s.workType = w
		return true
	}
	if p, ok := workPlaceOf(label); ok {
		s.workPlace = p
		return true
	}
	return false
}

// Conditions is the selected conditions as one list: work type, then work
// place.
func (s *State) Conditions() []string {
	out := make([]string, 0, 2)
	if s.workType != WorkTypeNone {
		out = append(out, string(s.workType))
	}
	if s.workPlace != WorkPlaceNone {
		out = append(out, string(s.workPlace))
	}
	return out
}

// AttributesComplete reports whether a contract type, a work type and a
// work place are all selected.
func (s *State) AttributesComplete() bool {
	return s.contract != ContractNone && s.workType != WorkTypeNone && s.workPlace != WorkPlaceNone
}
