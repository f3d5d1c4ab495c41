// Package view assembles what the job board displays: the merged result
// page, card variants, printed-date labels and the stateful Board.
package view

import (
	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// PageSize is the number of cards per page.
const PageSize = adzuna.PageSize

// Page is one displayed page of results.
type Page struct {
	Number     int             `json:"page"`
	Cards      []model.JobCard `json:"cards"`
	Total      int             `json:"total"`
	TotalPages int             `json:"totalPages"`
}

// Compose merges the user's published posts with one page of remote
// results. Published posts are shown on page 1 only, ahead of the remote
// cards, and the page is cut to PageSize. The total always counts them.
func Compose(page int, published []model.JobCard, remote *adzuna.Result) Page {
	if page < 1 {
		page = 1
	}
	var remoteCards []model.JobCard
	remoteTotal := 0
	if remote != nil {
		remoteCards = remote.Cards
		remoteTotal = remote.Total
	}

	cards := make([]model.JobCard, 0, PageSize)
	if page == 1 {
		cards = append(cards, published...)
	}
	cards = append(cards, remoteCards...)
	if len(cards) > PageSize {
		cards = cards[:PageSize]
	}

	total := len(published) + remoteTotal
	return Page{
		Number:     page,
		Cards:      cards,
		Total:      total,
		TotalPages: TotalPages(total),
	}
}

// TotalPages is ceil(total/PageSize), never less than 1.
func TotalPages(total int) int {
	if total <= 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

// CardVariant is a purely cosmetic card style.
type CardVariant string

const (
	VariantNone  CardVariant = ""
	VariantTall  CardVariant = "tall"
	VariantShort CardVariant = "short"
)

// Variant returns the style of the card at index i.
func Variant(i int) CardVariant {
	switch i % 4 {
	case 0:
		return VariantTall
	case 2:
		return VariantShort
	}
	return VariantNone
}
