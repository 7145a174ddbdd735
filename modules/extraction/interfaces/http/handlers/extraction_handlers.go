package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scribe/server/modules/extraction/application/services"
	"scribe/server/modules/extraction/interfaces/http/dtos"
	usermiddleware "scribe/server/modules/user/interfaces/http/middleware"
	"scribe/server/seedwork/apperror"
)

// ExtractionHandlers exposes the standalone extract-without-saving route.
type ExtractionHandlers struct {
	extractionService *services.ExtractionService
}

func NewExtractionHandlers(extractionService *services.ExtractionService) *ExtractionHandlers {
	return &ExtractionHandlers{extractionService: extractionService}
}

// Extract handles POST /meetings/extract (§6, §8 scenario 4).
func (h *ExtractionHandlers) Extract(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	var req dtos.ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.Validation("invalid_request", err.Error()))
		return
	}

	record, err := h.extractionService.Extract(c.Request.Context(), user.GetID(), string(user.Plan), req.Notes)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToExtractResponse(record))
}
