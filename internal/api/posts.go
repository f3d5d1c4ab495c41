package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/glageb/cur-vintage-jobs/internal/form"
	"github.com/glageb/cur-vintage-jobs/internal/model"
)

// postRequest is the body of POST /api/posts and PUT /api/posts/:id.
type postRequest struct {
	Values form.Values `json:"values"`
	Status string      `json:"status"`
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) listPosts(c *gin.Context) {
	list, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) publishedPosts(c *gin.Context) {
	cards, err := h.posts.Published(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *Handler) getPost(c *gin.Context) {
	rec, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// createPost handles POST /api/posts. A new post starts as draft (the
// default) or published.
func (h *Handler) createPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == "" {
		req.Status = string(model.StatusDraft)
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil || !model.IsCreatable(status) {
		jsonError(c, http.StatusBadRequest, fmt.Sprintf("a new job post cannot be saved as %q", req.Status))
		return
	}
	h.submit(c, nil, req.Values, status, http.StatusCreated)
}

// updatePost handles PUT /api/posts/:id. An empty status keeps the current
// one; a different status must be an allowed transition.
func (h *Handler) updatePost(c *gin.Context) {
	id := c.Param("id")
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	existing, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}

	status := existing.Status
	if req.Status != "" {
		if status, err = model.ParseStatus(req.Status); err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if status != existing.Status && !model.IsTransitionAllowed(existing.Status, status) {
		jsonError(c, http.StatusBadRequest, fmt.Sprintf("transition %s → %s is not allowed", existing.Status, status))
		return
	}
	h.submit(c, existing, req.Values, status, http.StatusOK)
}

func (h *Handler) submit(c *gin.Context, existing *model.UserJobRecord, values form.Values, status model.Status, code int) {
	state, err := form.FromValues(values, existing)
	if err == nil {
		var rec model.UserJobRecord
		if rec, err = state.Submit(c.Request.Context(), h.posts, status); err == nil {
			h.log.Info("[api] job post saved", zap.String("id", rec.ID), zap.String("status", string(rec.Status)))
			c.JSON(code, rec)
			return
		}
	}

	var valErr *form.ValidationError
	if errors.As(err, &valErr) {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":  valErr.Error(),
			"fields": valErr.Fields,
		})
		return
	}
	h.storeError(c, err)
}

// setPostStatus handles POST /api/posts/:id/status
func (h *Handler) setPostStatus(c *gin.Context) {
	id := c.Param("id")
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		jsonError(c, http.StatusBadRequest, "status is required")
		return
	}
	next, err := model.ParseStatus(req.Status)
	if err != nil {
		jsonError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	existing, err := h.posts.Get(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !model.IsTransitionAllowed(existing.Status, next) {
		jsonError(c, http.StatusBadRequest, fmt.Sprintf("transition %s → %s is not allowed", existing.Status, next))
		return
	}
	if err := h.posts.SetStatus(ctx, id, next); err != nil {
		h.storeError(c, err)
		return
	}

	updated, err := h.posts.Get(ctx, id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	h.log.Info("[api] job post status changed",
		zap.String("id", id),
		zap.String("from", string(existing.Status)),
		zap.String("to", string(next)),
	)
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) deletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) storeError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.log.Error("[api] store error", zap.Error(err))
		jsonError(c, code, "internal error")
		return
	}
	jsonError(c, code, err.Error())
}
