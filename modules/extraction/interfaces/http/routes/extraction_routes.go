package routes

import (
	"github.com/gin-gonic/gin"

	"scribe/server/modules/extraction/interfaces/http/handlers"
)

// ExtractionRoutes mounts onto the same /meetings group meeting_routes.go
// registers — it owns only the stateless extract-without-saving route.
type ExtractionRoutes struct {
	extractionHandlers *handlers.ExtractionHandlers
}

func NewExtractionRoutes(extractionHandlers *handlers.ExtractionHandlers) *ExtractionRoutes {
	return &ExtractionRoutes{extractionHandlers: extractionHandlers}
}

func (er *ExtractionRoutes) Setup(authenticated *gin.RouterGroup) {
	authenticated.POST("/meetings/extract", er.extractionHandlers.Extract)
}
