// Package api is the JSON HTTP surface of the job board.
//
// Routes:
//
//	GET    /health
//	GET    /api/regions                 → search regions
//	GET    /api/jobs/search             → one merged result page
//	GET    /api/location                → region and place from the caller's IP
//	GET    /api/posts                   → every user post
//	GET    /api/posts/published         → published posts as cards
//	GET    /api/posts/:id
//	POST   /api/posts                   → create from form values
//	PUT    /api/posts/:id               → edit from form values
//	POST   /api/posts/:id/status        → lifecycle transition
//	DELETE /api/posts/:id
//	POST   /api/extract-skills          → skill tags per job
package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/adzuna"
	"github.com/glageb/cur-vintage-jobs/internal/form"
	"github.com/glageb/cur-vintage-jobs/internal/geo"
	"github.com/glageb/cur-vintage-jobs/internal/model"
	"github.com/glageb/cur-vintage-jobs/internal/skills"
	"github.com/glageb/cur-vintage-jobs/internal/store"
	"github.com/glageb/cur-vintage-jobs/internal/view"
)

// Version is reported by /health.
const Version = "1.0.0"

// PostStore is the record store as used by the handlers; *store.Store
// satisfies it.
type PostStore interface {
	List(ctx context.Context) ([]model.UserJobRecord, error)
	Published(ctx context.Context) ([]model.JobCard, error)
	Get(ctx context.Context, id string) (*model.UserJobRecord, error)
	Save(ctx context.Context, rec model.UserJobRecord) error
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status model.Status) error
}

// Handler holds shared dependencies.
type Handler struct {
	search        view.Searcher
	locator       view.Locator
	posts         PostStore
	skills        *skills.Service
	defaultRegion string
	log           *zap.Logger
}

// NewHandler returns a configured Handler.
func NewHandler(search view.Searcher, locator view.Locator, posts PostStore, svc *skills.Service, defaultRegion string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if svc == nil {
		svc = skills.NewService(false, nil, log)
	}
	if defaultRegion == "" {
		defaultRegion = adzuna.DefaultRegion
	}
	return &Handler{
		search:        search,
		locator:       locator,
		posts:         posts,
		skills:        svc,
		defaultRegion: defaultRegion,
		log:           log,
	}
}

// RegisterRoutes mounts every route on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.health)

	api := r.Group("/api")
	{
		api.GET("/regions", h.regions)
		api.GET("/jobs/search", h.searchJobs)
		api.GET("/location", h.location)

		api.GET("/posts", h.listPosts)
		api.GET("/posts/published", h.publishedPosts)
		api.GET("/posts/:id", h.getPost)
		api.POST("/posts", h.createPost)
		api.PUT("/posts/:id", h.updatePost)
		api.POST("/posts/:id/status", h.setPostStatus)
		api.DELETE("/posts/:id", h.deletePost)

		api.POST("/extract-skills", h.extractSkills)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "cur-vintage-jobs",
		"version": Version,
	})
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonError(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		reqErr *adzuna.RequestError
		detErr *geo.DetectionError
		valErr *form.ValidationError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, adzuna.ErrMissingCredentials):
		return http.StatusUnauthorized
	case errors.As(err, &reqErr), errors.As(err, &detErr):
		return http.StatusBadGateway
	case errors.As(err, &valErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
