package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"scribe/server/blobstore"
	meetingentities "scribe/server/modules/meeting/domain/entities"
	meetingservices "scribe/server/modules/meeting/application/services"
	ingestservices "scribe/server/modules/meetingingest/domain/services"
	transcriptionservices "scribe/server/modules/transcription/domain/services"
	userservices "scribe/server/modules/user/application/services"
	"scribe/server/seedwork/apperror"
)

// maxUploadBytes bounds both the direct file-upload route and the
// downloaded cloud-recording file (§4.I "size ≤ 100 MB").
const maxUploadBytes = 100 << 20

// allowedExtensions is the file-upload whitelist (§4.I).
var allowedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".webm": true,
}

// MeetingIngestService implements both ingestion paths of §4.I: direct
// file upload and third-party cloud-recording import, which converges onto
// the same transcribe-then-persist flow once the audio bytes are in hand.
type MeetingIngestService struct {
	meetingService       *meetingservices.MeetingService
	userService          *userservices.UserService
	transcriptionFactory transcriptionservices.TranscriptionProviderFactory
	zoomClient           ingestservices.ZoomClient
	archive              blobstore.Archive
}

func NewMeetingIngestService(
	meetingService *meetingservices.MeetingService,
	userService *userservices.UserService,
	transcriptionFactory transcriptionservices.TranscriptionProviderFactory,
	zoomClient ingestservices.ZoomClient,
	archive blobstore.Archive,
) *MeetingIngestService {
	return &MeetingIngestService{
		meetingService:       meetingService,
		userService:          userService,
		transcriptionFactory: transcriptionFactory,
		zoomClient:           zoomClient,
		archive:              archive,
	}
}

// UploadFile validates the extension and size, transcribes the audio, and
// persists a meeting with an empty extraction record — extraction is a
// separate step the caller triggers afterward via /meetings/extract, per
// §4.I step ordering.
func (s *MeetingIngestService) UploadFile(ctx context.Context, userID, plan, filename string, audio []byte) (*meetingentities.Meeting, error) {
	if err := validateUpload(filename, len(audio)); err != nil {
		return nil, err
	}
	if err := s.meetingService.CheckQuota(ctx, userID, plan); err != nil {
		return nil, err
	}

	provider := s.transcriptionFactory.NewSession()
	text, err := provider.Transcribe(ctx, audio, strings.TrimPrefix(filepath.Ext(filename), "."))
	if err != nil {
		return nil, apperror.Upstream("transcription failed", err)
	}

	title := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	meeting, err := s.meetingService.CreateMeeting(ctx, userID, title, text, meetingentities.EmptyExtractionRecord())
	if err != nil {
		return nil, err
	}

	s.archiveAudio(meeting.GetID(), audio, filename)
	return meeting, nil
}

// ImportZoom refreshes the user's cached Zoom credentials if expired,
// looks up the requested recording, downloads it, and proceeds exactly as
// UploadFile from the transcription step onward (§4.I "proceed as
// file-upload from step 2").
func (s *MeetingIngestService) ImportZoom(ctx context.Context, userID, plan, zoomMeetingID, recordingID, topic string) (*meetingentities.Meeting, error) {
	user, err := s.userService.GetUserByID(userID)
	if err != nil {
		return nil, apperror.NotFound("user not found")
	}
	if !user.HasZoomCredentials() {
		return nil, apperror.Validation("zoom_not_connected", "connect a Zoom account before importing recordings")
	}

	accessToken := user.ZoomAccessToken
	if user.ZoomTokenExpired(time.Now()) {
		refreshed, err := s.zoomClient.RefreshAccessToken(ctx, user.ZoomRefreshToken)
		if err != nil {
			return nil, apperror.Upstream("failed to refresh zoom token", err)
		}
		if err := s.userService.SaveZoomCredentials(userID, refreshed.AccessToken, refreshed.RefreshToken, refreshed.ExpiresAt); err != nil {
			return nil, apperror.Storage("failed to persist refreshed zoom token", err)
		}
		accessToken = refreshed.AccessToken
	}

	recording, err := s.zoomClient.GetRecording(ctx, accessToken, zoomMeetingID, recordingID)
	if err != nil {
		return nil, apperror.Upstream("failed to look up zoom recording", err)
	}

	audio, err := s.zoomClient.Download(ctx, accessToken, recording.DownloadURL)
	if err != nil {
		return nil, apperror.Upstream("failed to download zoom recording", err)
	}

	filename := recordingFilename(topic, recording.FileType)
	return s.UploadFile(ctx, userID, plan, filename, audio)
}

func (s *MeetingIngestService) archiveAudio(meetingID string, audio []byte, filename string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if _, err := s.archive.Upload(ctx, meetingID, "", audio, "application/octet-stream"); err != nil {
		log.Printf("meeting ingest: audio archival failed for meeting %s (%s): %v", meetingID, filename, err)
	}
}

func validateUpload(filename string, size int) error {
	if size == 0 {
		return apperror.Validation("empty_file", "audio file is empty")
	}
	if size > maxUploadBytes {
		return apperror.Validation("file_too_large", "audio file exceeds the 100MB limit")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return apperror.Validation("unsupported_format", fmt.Sprintf("unsupported audio format %q", ext))
	}
	return nil
}

func recordingFilename(topic, fileType string) string {
	name := strings.TrimSpace(topic)
	if name == "" {
		name = "zoom-recording"
	}
	ext := strings.ToLower(fileType)
	if ext == "" {
		ext = "m4a"
	}
	return name + "." + ext
}
