package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	insightentities "scribe/server/modules/insight/domain/entities"
	"scribe/server/modules/insight/application/services"
	"scribe/server/modules/insight/interfaces/http/dtos"
	meetingservices "scribe/server/modules/meeting/application/services"
	trackedissueservices "scribe/server/modules/trackedissue/application/services"
	usermiddleware "scribe/server/modules/user/interfaces/http/middleware"
	"scribe/server/seedwork/apperror"
)

// InsightHandlers serves the cross-meeting intelligence endpoints. It also
// drives the tracked-issue auto-creation supplemental feature: every
// insights call syncs the unresolved_items card into persisted rows.
type InsightHandlers struct {
	insightEngine        *services.InsightEngine
	meetingService       *meetingservices.MeetingService
	trackedIssueService  *trackedissueservices.TrackedIssueService
}

func NewInsightHandlers(insightEngine *services.InsightEngine, meetingService *meetingservices.MeetingService, trackedIssueService *trackedissueservices.TrackedIssueService) *InsightHandlers {
	return &InsightHandlers{
		insightEngine:       insightEngine,
		meetingService:      meetingService,
		trackedIssueService: trackedIssueService,
	}
}

// GetInsights handles GET /meetings/{id}/insights (§6, §8 scenario 5).
func (h *InsightHandlers) GetInsights(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}
	meetingID := c.Param("id")

	cards, _, err := h.insightEngine.Compute(c.Request.Context(), user.GetID(), meetingID)
	if err != nil {
		c.Error(err)
		return
	}

	h.syncTrackedIssues(c, user.GetID(), meetingID, cards)

	c.JSON(http.StatusOK, dtos.ToInsightsResponse(meetingID, cards))
}

// GetWhatChanged handles GET /meetings/{id}/whatchanged.
func (h *InsightHandlers) GetWhatChanged(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	_, whatChanged, err := h.insightEngine.Compute(c.Request.Context(), user.GetID(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, whatChanged)
}

// syncTrackedIssues persists the unresolved_items card's tasks as
// TrackedIssue rows so the carry-over list survives across requests and
// can be toggled resolved independently of the recomputed card. Failure is
// logged but does not fail the request
// — the insights response is still useful without it.
func (h *InsightHandlers) syncTrackedIssues(c *gin.Context, userID, meetingID string, cards []insightentities.Card) {
	for _, card := range cards {
		if card.Kind != insightentities.KindUnresolvedItems || len(card.Tasks) == 0 {
			continue
		}
		meeting, err := h.meetingService.GetOwned(c.Request.Context(), meetingID, userID)
		if err != nil {
			log.Printf("insight: tracked-issue sync skipped for meeting %s: %v", meetingID, err)
			return
		}
		if err := h.trackedIssueService.SyncFromUnresolved(c.Request.Context(), userID, meetingID, meeting.Title, card.Tasks); err != nil {
			log.Printf("insight: tracked-issue sync failed for meeting %s: %v", meetingID, err)
		}
	}
}
