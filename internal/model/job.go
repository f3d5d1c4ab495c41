// Package model defines the job records shared by the search adapter, the
// local record store and the view layer.
package model

// JobCard is a display-ready job listing. Cards built from remote search
// results are treated as immutable values; enrichment returns new cards.
//
// JSON names match the records written by the web client so that a store
// populated there can be read here.
type JobCard struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company string `json:"company"`
	// Location is the free-text place shown in the card footer.
	Location string `json:"location"`
	// SalaryDisplay is a formatted range such as "40k–50k".
	SalaryDisplay string `json:"salaryDisplay,omitempty"`
	// Snippet is the one-line summary shown when there is no richer text.
	Snippet string `json:"snippet"`
	// Posted is YYYY-MM-DD, or empty when unknown.
	Posted             string   `json:"posted,omitempty"`
	DescriptionExcerpt string   `json:"descriptionExcerpt,omitempty"`
	Skills             []string `json:"skills"`
	URL                string   `json:"url"`
}

// MaxCardSkills is the most skill tags a card carries.
const MaxCardSkills = 10

// WithSkills returns a copy of c carrying skills (capped at MaxCardSkills).
func (c JobCard) WithSkills(skills []string) JobCard {
	if len(skills) > MaxCardSkills {
		skills = skills[:MaxCardSkills]
	}
	out := c
	out.Skills = append([]string(nil), skills...)
	return out
}

// UserJobRecord is a JobCard authored by the local user, with its
// lifecycle status and audit timestamp. Only the record store mutates it.
type UserJobRecord struct {
	JobCard
	Status Status `json:"status"`
	// UpdatedAt is an ISO-8601 timestamp.
	UpdatedAt string `json:"updatedAt,omitempty"`
	WordCount *int   `json:"wordCount,omitempty"`
}

// JobForExtraction carries the raw text of a remote job for skill extraction.
type JobForExtraction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TimestampLayout is ISO-8601 with milliseconds, as written by the web client.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// DateLayout is the YYYY-MM-DD form used for posted dates.
const DateLayout = "2006-01-02"
