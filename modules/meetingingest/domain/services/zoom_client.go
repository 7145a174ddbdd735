package services

import (
	"context"
	"time"
)

// RefreshedToken is the result of exchanging a refresh token for a new
// access token (§4.I "refresh the user's cached access token if expired").
type RefreshedToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Recording is one downloadable file belonging to a cloud-recording
// meeting, as returned by the provider's recording-metadata endpoint.
type Recording struct {
	ID          string
	DownloadURL string
	FileType    string
}

// ZoomClient is the component boundary for the third-party cloud-recording
// provider (§4.I). Kept as an interface so the HTTP-heavy real
// implementation never leaks into the application service it's injected
// into.
type ZoomClient interface {
	RefreshAccessToken(ctx context.Context, refreshToken string) (*RefreshedToken, error)
	GetRecording(ctx context.Context, accessToken, meetingID, recordingID string) (*Recording, error)
	Download(ctx context.Context, accessToken, downloadURL string) ([]byte, error)
}
