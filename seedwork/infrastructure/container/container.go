// Package container wires every module's repositories, services, handlers,
// and routes into one dependency graph, built once at startup from a loaded
// Config.
package container

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"scribe/server/blobstore"
	"scribe/server/housekeeping"

	extractordomain "scribe/server/modules/extraction/domain/services"
	extractionproviders "scribe/server/modules/extraction/infrastructure/providers"
	extractionhandlers "scribe/server/modules/extraction/interfaces/http/handlers"
	extractionroutes "scribe/server/modules/extraction/interfaces/http/routes"
	extractionservices "scribe/server/modules/extraction/application/services"

	insighthandlers "scribe/server/modules/insight/interfaces/http/handlers"
	insightroutes "scribe/server/modules/insight/interfaces/http/routes"
	insightservices "scribe/server/modules/insight/application/services"

	livesessionrepos "scribe/server/modules/livesession/infrastructure/repositories"
	"scribe/server/modules/livesession/infrastructure/streaming"
	livesessionhandlers "scribe/server/modules/livesession/interfaces/http/handlers"
	livesessionroutes "scribe/server/modules/livesession/interfaces/http/routes"
	livesessionservices "scribe/server/modules/livesession/application/services"

	meetingrepos "scribe/server/modules/meeting/infrastructure/repositories"
	meetinghandlers "scribe/server/modules/meeting/interfaces/http/handlers"
	meetingroutes "scribe/server/modules/meeting/interfaces/http/routes"
	meetingservices "scribe/server/modules/meeting/application/services"

	ingestproviders "scribe/server/modules/meetingingest/infrastructure/providers"
	ingesthandlers "scribe/server/modules/meetingingest/interfaces/http/handlers"
	ingestroutes "scribe/server/modules/meetingingest/interfaces/http/routes"
	ingestservices "scribe/server/modules/meetingingest/application/services"

	trackedissuerepos "scribe/server/modules/trackedissue/infrastructure/repositories"
	trackedissuehandlers "scribe/server/modules/trackedissue/interfaces/http/handlers"
	trackedissueroutes "scribe/server/modules/trackedissue/interfaces/http/routes"
	trackedissueservices "scribe/server/modules/trackedissue/application/services"

	transcriptionproviders "scribe/server/modules/transcription/infrastructure/providers"
	transcriptionservices "scribe/server/modules/transcription/domain/services"

	usagerepos "scribe/server/modules/usage/infrastructure/repositories"
	usageservices "scribe/server/modules/usage/application/services"

	userrepos "scribe/server/modules/user/infrastructure/repositories"
	userhandlers "scribe/server/modules/user/interfaces/http/handlers"
	usermiddleware "scribe/server/modules/user/interfaces/http/middleware"
	userroutes "scribe/server/modules/user/interfaces/http/routes"
	userservices "scribe/server/modules/user/application/services"

	"scribe/server/seedwork/infrastructure/config"
	"scribe/server/seedwork/infrastructure/events"
)

// Route is anything that mounts its handlers onto an already-authenticated
// router group; every module's *Routes type satisfies this.
type Route interface {
	Setup(authenticated *gin.RouterGroup)
}

// Container holds every wired dependency the HTTP layer and the background
// scheduler need.
type Container struct {
	Config *config.Config

	AuthMiddleware *usermiddleware.AuthMiddleware
	Routes         []Route
	Scheduler      *housekeeping.Scheduler
}

// NewContainer wires the full dependency graph from an already-loaded Config.
// Database connection and migrations are the caller's responsibility
// (main.go) since they must run before NewContainer touches the repositories.
func NewContainer(cfg *config.Config) (*Container, error) {
	eventBus := events.NewMemoryEventBus()

	userRepo := userrepos.NewGormUserRepository()
	sessionRepo := userrepos.NewGormSessionRepository()
	meetingRepo := meetingrepos.NewGormMeetingRepository()
	trackedIssueRepo := trackedissuerepos.NewGormTrackedIssueRepository()
	usageRepo := usagerepos.NewGormUsageRepository()
	liveSessionRepo := livesessionrepos.NewGormLiveSessionRepository()

	transcriptionFactory := buildTranscriptionFactory(cfg)
	extractorProvider := buildExtractorProvider(cfg)
	archive, err := buildArchive(cfg)
	if err != nil {
		return nil, err
	}

	userService := userservices.NewUserService(userRepo)
	usageGate := usageservices.NewUsageGate(usageRepo, eventBus)
	extractionService := extractionservices.NewExtractionService(extractorProvider, usageGate)
	meetingService := meetingservices.NewMeetingService(meetingRepo, eventBus)
	trackedIssueService := trackedissueservices.NewTrackedIssueService(trackedIssueRepo)
	insightEngine := insightservices.NewInsightEngine(meetingRepo)

	hub := streaming.NewHub()
	liveSessionService := livesessionservices.NewLiveSessionService(
		liveSessionRepo, hub, transcriptionFactory, extractionService, meetingService, archive, eventBus,
	)

	zoomClient := ingestproviders.NewHTTPZoomClient(cfg.Zoom.ClientID, cfg.Zoom.ClientSecret)
	meetingIngestService := ingestservices.NewMeetingIngestService(
		meetingService, userService, transcriptionFactory, zoomClient, archive,
	)

	authMiddleware := usermiddleware.NewAuthMiddleware(userRepo, sessionRepo, cfg)

	routes := []Route{
		userroutes.NewUserRoutes(userhandlers.NewUserHandlers(userService)),
		meetingroutes.NewMeetingRoutes(meetinghandlers.NewMeetingHandlers(meetingService)),
		extractionroutes.NewExtractionRoutes(extractionhandlers.NewExtractionHandlers(extractionService)),
		trackedissueroutes.NewTrackedIssueRoutes(trackedissuehandlers.NewTrackedIssueHandlers(trackedIssueService)),
		insightroutes.NewInsightRoutes(insighthandlers.NewInsightHandlers(insightEngine, meetingService, trackedIssueService)),
		livesessionroutes.NewLiveSessionRoutes(livesessionhandlers.NewLiveSessionHandlers(liveSessionService)),
		ingestroutes.NewMeetingIngestRoutes(ingesthandlers.NewMeetingIngestHandlers(meetingIngestService)),
	}

	scheduler := housekeeping.NewScheduler(liveSessionRepo, usageRepo)

	return &Container{
		Config:         cfg,
		AuthMiddleware: authMiddleware,
		Routes:         routes,
		Scheduler:      scheduler,
	}, nil
}

// buildTranscriptionFactory picks the real AssemblyAI-backed provider when a
// key is configured and MOCK_MODE is off, the canned mock otherwise (§6
// Configuration). A missing key never surfaces as an error: the mock is
// used and a startup log line records the fallback.
func buildTranscriptionFactory(cfg *config.Config) transcriptionservices.TranscriptionProviderFactory {
	if !cfg.MockMode && cfg.Providers.TranscribeAPIKey != "" {
		return transcriptionproviders.NewAssemblyAIProvider(cfg.Providers.TranscribeAPIKey)
	}
	log.Println("container: no TRANSCRIBE_API_KEY (or MOCK_MODE set) — using mock transcription provider")
	return transcriptionproviders.NewMockTranscriptionProvider()
}

func buildExtractorProvider(cfg *config.Config) extractordomain.ExtractorProvider {
	if !cfg.MockMode && cfg.Providers.ExtractAPIKey != "" {
		return extractionproviders.NewAnthropicExtractorProvider(cfg.Providers.ExtractAPIKey)
	}
	log.Println("container: no EXTRACT_API_KEY (or MOCK_MODE set) — using mock extractor provider")
	return extractionproviders.NewMockExtractorProvider()
}

// buildArchive wires the real Firebase-backed archive only when a bucket is
// configured; otherwise archival is a no-op rather than a startup failure,
// since audio archival is best-effort.
func buildArchive(cfg *config.Config) (blobstore.Archive, error) {
	if cfg.Firebase.Bucket == "" {
		log.Println("container: no FIREBASE_STORAGE_BUCKET configured — audio archival disabled")
		return blobstore.NoopArchive{}, nil
	}
	return blobstore.NewFirebaseArchive(context.Background(), cfg.Firebase)
}
