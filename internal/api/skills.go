package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glageb/cur-vintage-jobs/internal/skills"
)

// noJobsMessage is the 400 body text the web client expects.
const noJobsMessage = "Missing or empty jobs array"

// extractSkills handles POST /api/extract-skills
func (h *Handler) extractSkills(c *gin.Context) {
	var req skills.Request
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Jobs) == 0 {
		jsonError(c, http.StatusBadRequest, noJobsMessage)
		return
	}

	byID, err := h.skills.Extract(c.Request.Context(), req.Jobs)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, skills.Response{SkillsByJobID: byID})
	case errors.Is(err, skills.ErrNoJobs):
		jsonError(c, http.StatusBadRequest, noJobsMessage)
	case errors.Is(err, skills.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, skills.Response{SkillsByJobID: byID, Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, skills.Response{SkillsByJobID: byID, Error: err.Error()})
	}
}
