package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"scribe/server/modules/livesession/application/services"
	"scribe/server/modules/livesession/interfaces/http/dtos"
	usermiddleware "scribe/server/modules/user/interfaces/http/middleware"
	"scribe/server/seedwork/apperror"
)

const (
	keepaliveInterval  = 15 * time.Second
	maxChunkBytes      = 25 << 20 // a single short audio chunk, generous upper bound
	defaultFormatHint  = "webm"
)

// LiveSessionHandlers maps HTTP requests onto the live-session state
// machine (component H) — the core of this service (§2).
type LiveSessionHandlers struct {
	service *services.LiveSessionService
}

func NewLiveSessionHandlers(service *services.LiveSessionService) *LiveSessionHandlers {
	return &LiveSessionHandlers{service: service}
}

func (h *LiveSessionHandlers) Start(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	var req dtos.StartRequest
	_ = c.ShouldBindJSON(&req)

	session, err := h.service.Start(c.Request.Context(), user.GetID(), string(user.Plan), req.Title, req.Participants)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, dtos.ToStartResponse(session))
}

// Stream serves the server-push event channel (§6 "Server-push event
// format"): connected, replayed segments, live segments, stopped, with a
// keepalive every 15s.
func (h *LiveSessionHandlers) Stream(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	sub, err := h.service.Subscribe(c.Request.Context(), c.Param("id"), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}
	defer sub.Unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.SSEvent("connected", gin.H{"session_id": sub.Session.ID})
	c.Writer.Flush()

	for _, segment := range sub.Segments {
		c.SSEvent("segment", gin.H{
			"segment_index": segment.SegmentIndex,
			"text":          segment.Text,
			"timestamp_ms":  segment.TimestampMs,
			"speaker":       segment.Speaker,
			"is_final":      segment.IsFinal,
		})
	}
	c.Writer.Flush()

	ticker := time.NewTicker(keepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-sub.TornDown:
			return
		case <-ticker.C:
			c.SSEvent("keepalive", gin.H{})
			c.Writer.Flush()
		case event, ok := <-sub.Events:
			if !ok {
				return
			}
			if event.Name == "stopped" {
				c.SSEvent("stopped", gin.H{})
				c.Writer.Flush()
				return
			}
			var payload interface{}
			if err := json.Unmarshal(event.Data, &payload); err != nil {
				continue
			}
			c.SSEvent(event.Name, payload)
			c.Writer.Flush()
		}
	}
}

// Chunk implements §4.H's per-chunk ingestion: fetch audio + timestamp_ms,
// hand off to the transcriber, allocate a segment on non-silent output.
func (h *LiveSessionHandlers) Chunk(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		c.Error(apperror.Validation("missing_audio", "audio file is required"))
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxChunkBytes))
	if err != nil {
		c.Error(apperror.Validation("invalid_audio", "failed to read audio"))
		return
	}

	timestampMs := parseTimestamp(c.Request.FormValue("timestamp_ms"))

	segmentIndex, silent, err := h.service.Chunk(c.Request.Context(), c.Param("id"), user.GetID(), audio, timestampMs)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ChunkResponse{OK: true, SegmentIndex: segmentIndex, Silent: silent})
}

func (h *LiveSessionHandlers) Stop(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	result, err := h.service.Stop(c.Request.Context(), c.Param("id"), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToStopResponse(result))
}

func (h *LiveSessionHandlers) Status(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	session, segmentCount, err := h.service.Status(c.Request.Context(), c.Param("id"), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.ToStatusResponse(session, segmentCount))
}

func (h *LiveSessionHandlers) MemoryHints(c *gin.Context) {
	user := usermiddleware.CurrentUser(c)
	if user == nil {
		c.Error(apperror.Unauthenticated("not logged in"))
		return
	}

	hints, err := h.service.MemoryHints(c.Request.Context(), c.Param("id"), user.GetID())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dtos.MemoryHintsResponse{Hints: hints})
}

// parseTimestamp defaults to wall-clock milliseconds if the field is
// missing or not a non-negative integer (§4.H chunk ingestion).
func parseTimestamp(raw string) int64 {
	if raw == "" {
		return time.Now().UnixMilli()
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 0 {
		log.Printf("live session: invalid timestamp_ms %q, defaulting to wall clock", raw)
		return time.Now().UnixMilli()
	}
	return value
}
