// Package format turns raw job fields (salary figures, HTML descriptions,
// timestamps, free text) into display strings. Every function is pure.
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// ExcerptLen is the longest description excerpt shown on a card.
	ExcerptLen = 120
	// SnippetExcerptLen is the longest description fallback used as a snippet.
	SnippetExcerptLen = 60

	// Ellipsis marks truncated text.
	Ellipsis = "…"
	// RangeSep joins the two ends of a salary range (en dash).
	RangeSep = "–"
	// PartSep joins snippet phrases.
	PartSep = " · "
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// PlainText strips markup from s, keeping one space between text nodes,
// and collapses runs of whitespace.
func PlainText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	var parts []string
	collectText(doc.Selection, &parts)
	return collapse(strings.Join(parts, " "))
}

func collectText(sel *goquery.Selection, parts *[]string) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "#text":
			*parts = append(*parts, s.Text())
		case "#comment", "script", "style":
		default:
			collectText(s, parts)
		}
	})
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most max runes, trimming trailing space and
// appending an ellipsis when anything was cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + Ellipsis
}

// Excerpt returns the card body for an HTML description: plain text
// truncated at ExcerptLen. Empty input yields "".
func Excerpt(html string) string {
	plain := PlainText(html)
	if plain == "" {
		return ""
	}
	return Truncate(plain, ExcerptLen)
}

// SnippetExcerpt returns the short plain-text fallback used as a snippet.
func SnippetExcerpt(html string) string {
	plain := []rune(PlainText(html))
	if len(plain) == 0 {
		return ""
	}
	if len(plain) > SnippetExcerptLen {
		plain = plain[:SnippetExcerptLen]
	}
	out := strings.TrimSpace(string(plain))
	if len(plain) >= SnippetExcerptLen {
		out += Ellipsis
	}
	return out
}

// Thousands renders a full salary figure as whole thousands, e.g. 45999 → "45k".
func Thousands(v float64) string {
	return strconv.FormatFloat(math.Floor(v/1000), 'f', 0, 64) + "k"
}

// SalaryRange formats optional salary bounds. It returns "" when neither
// bound is present.
func SalaryRange(min, max *float64) string {
	var parts []string
	if min != nil {
		parts = append(parts, Thousands(*min))
	}
	if max != nil {
		parts = append(parts, Thousands(*max))
	}
	return strings.Join(parts, RangeSep)
}

// Posted returns the YYYY-MM-DD prefix of an ISO timestamp, or "" when the
// prefix is not a date.
func Posted(created string) string {
	if len(created) < 10 {
		return ""
	}
	date := created[:10]
	if !datePattern.MatchString(date) {
		return ""
	}
	return date
}

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// ClampWords returns text unchanged when it has at most max words, otherwise
// its first max words joined by single spaces.
func ClampWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	return strings.Join(words[:max], " ")
}

// PayFigure formats a pay figure typed into the post form. A trailing "k"
// is accepted; figures of 1000 or more are treated as full amounts.
// Unparsable input is returned as typed.
func PayFigure(raw string) string {
	v := trimK(strings.TrimSpace(raw))
	if v == "" {
		return ""
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return v
	}
	if n >= 1000 {
		return Thousands(n)
	}
	return strconv.FormatFloat(n, 'f', -1, 64) + "k"
}

// PayRange formats the form's min/max pay figures, "" when both are blank.
func PayRange(minRaw, maxRaw string) string {
	var parts []string
	if s := PayFigure(minRaw); s != "" {
		parts = append(parts, s)
	}
	if s := PayFigure(maxRaw); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, RangeSep)
}

// SplitPayRange is the inverse of PayRange used when editing a record:
// "30k–45k" → ("30", "45").
func SplitPayRange(display string) (min, max string) {
	if display == "" {
		return "", ""
	}
	parts := strings.FieldsFunc(display, func(r rune) bool { return r == '–' || r == '-' })
	if len(parts) > 0 {
		min = trimK(strings.TrimSpace(parts[0]))
	}
	if len(parts) > 1 {
		max = trimK(strings.TrimSpace(parts[1]))
	}
	return min, max
}

func trimK(s string) string {
	if strings.HasSuffix(s, "k") || strings.HasSuffix(s, "K") {
		return s[:len(s)-1]
	}
	return s
}
