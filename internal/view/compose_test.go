package view_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/model"
	"github.com/glageb/cur-vintage-jobs/internal/view"
)

func cards(prefix string, n int) []model.JobCard {
	out := make([]model.JobCard, n)
	for i := range out {
		out[i] = model.JobCard{ID: fmt.Sprintf("%s%d", prefix, i), Skills: []string{}}
	}
	return out
}

func TestCompose_TotalPages(t *testing.T) {
	p := view.Compose(1, nil, &adzuna.Result{Total: 45})
	if p.Total != 45 || p.TotalPages != 3 {
		t.Errorf("Total=%d TotalPages=%d, want 45 and 3", p.Total, p.TotalPages)
	}
	if len(p.Cards) != 0 {
		t.Errorf("Cards = %v", p.Cards)
	}

	for total, want := range map[int]int{0: 1, 1: 1, 20: 1, 21: 2, 40: 2} {
		if got := view.TotalPages(total); got != want {
			t.Errorf("TotalPages(%d) = %d, want %d", total, got, want)
		}
	}
}

func TestCompose_PageOneMergesPublished(t *testing.T) {
	published := cards("user-", 3)
	remote := &adzuna.Result{Total: 45, Cards: cards("r", 20)}

	p := view.Compose(1, published, remote)
	if len(p.Cards) != view.PageSize {
		t.Fatalf("len(Cards) = %d, want %d", len(p.Cards), view.PageSize)
	}
	if p.Cards[0].ID != "user-0" || p.Cards[2].ID != "user-2" || p.Cards[3].ID != "r0" {
		t.Errorf("merge order wrong: %s %s %s", p.Cards[0].ID, p.Cards[2].ID, p.Cards[3].ID)
	}
	if p.Cards[19].ID != "r16" {
		t.Errorf("last card = %s, want r16", p.Cards[19].ID)
	}
	if p.Total != 48 || p.TotalPages != 3 {
		t.Errorf("Total=%d TotalPages=%d", p.Total, p.TotalPages)
	}
}

func TestCompose_LaterPagesAreRemoteOnly(t *testing.T) {
	p := view.Compose(2, cards("user-", 2), &adzuna.Result{Total: 45, Cards: cards("r", 20)})
	if p.Cards[0].ID != "r0" || len(p.Cards) != 20 {
		t.Errorf("page 2 = %d cards starting %s", len(p.Cards), p.Cards[0].ID)
	}
	if p.Number != 2 || p.Total != 47 {
		t.Errorf("Number=%d Total=%d", p.Number, p.Total)
	}
}

func TestVariant(t *testing.T) {
	want := []view.CardVariant{view.VariantTall, view.VariantNone, view.VariantShort, view.VariantNone, view.VariantTall}
	for i, w := range want {
		if got := view.Variant(i); got != w {
			t.Errorf("Variant(%d) = %q, want %q", i, got, w)
		}
	}
}

func TestPrintedLabel(t *testing.T) {
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"2026-10-15": "printed today on 2026-10-15",
		"2026-10-14": "printed 1 day ago on 2026-10-14",
		"2026-10-01": "printed 14 days ago on 2026-10-01",
		"2026-10-20": "printed on 2026-10-20",
		"soon":       "printed on soon",
	}
	for posted, want := range cases {
		if got := view.PrintedLabel(posted, now); got != want {
			t.Errorf("PrintedLabel(%q) = %q, want %q", posted, got, want)
		}
	}
}
