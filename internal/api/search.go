package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/model"
	"github.com/glageb/cur-vintage-jobs/internal/view"
)

// cardView is a card as rendered on the board.
type cardView struct {
	model.JobCard
	Variant view.CardVariant `json:"variant,omitempty"`
	Printed string           `json:"printed,omitempty"`
}

type searchResponse struct {
	Page       int                      `json:"page"`
	Total      int                      `json:"total"`
	TotalPages int                      `json:"totalPages"`
	Cards      []cardView               `json:"cards"`
	RawJobs    []model.JobForExtraction `json:"rawJobs"`
}

func (h *Handler) regions(c *gin.Context) {
	c.JSON(http.StatusOK, adzuna.Regions)
}

// searchJobs handles GET /api/jobs/search?region=&page=&what=&where=
func (h *Handler) searchJobs(c *gin.Context) {
	region := c.DefaultQuery("region", h.defaultRegion)
	if !adzuna.IsRegion(region) {
		jsonError(c, http.StatusBadRequest, "unknown region "+strconv.Quote(region))
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		jsonError(c, http.StatusBadRequest, "page must be a positive integer")
		return
	}

	ctx := c.Request.Context()
	// Fetched on every page: later pages show none but still count them.
	published, err := h.posts.Published(ctx)
	if err != nil {
		h.log.Warn("[api] published posts unavailable", zap.Error(err))
		published = nil
	}

	res, err := h.search.Search(ctx, region, page, c.Query("what"), c.Query("where"))
	if err != nil {
		h.log.Warn("[api] search failed", zap.String("region", region), zap.Error(err))
		jsonError(c, statusFor(err), err.Error())
		return
	}

	p := view.Compose(page, published, res)
	now := time.Now()
	cards := make([]cardView, len(p.Cards))
	for i, card := range p.Cards {
		cards[i] = cardView{JobCard: card, Variant: view.Variant(i)}
		if card.Posted != "" {
			cards[i].Printed = view.PrintedLabel(card.Posted, now)
		}
	}
	c.JSON(http.StatusOK, searchResponse{
		Page:       p.Number,
		Total:      p.Total,
		TotalPages: p.TotalPages,
		Cards:      cards,
		RawJobs:    res.RawJobs,
	})
}

// location handles GET /api/location
func (h *Handler) location(c *gin.Context) {
	loc, err := h.locator.Detect(c.Request.Context())
	if err != nil {
		h.log.Warn("[api] location detection failed", zap.Error(err))
		jsonError(c, statusFor(err), err.Error())
		return
	}
	c.JSON(http.StatusOK, loc)
}
