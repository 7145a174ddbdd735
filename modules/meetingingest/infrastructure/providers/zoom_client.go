package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ingestservices "scribe/server/modules/meetingingest/domain/services"
)

const (
	zoomOAuthTokenURL   = "https://zoom.us/oauth/token"
	zoomRecordingAPIURL = "https://api.zoom.us/v2/meetings"
)

// HTTPZoomClient implements ZoomClient against Zoom's real OAuth and cloud
// recording REST endpoints. No Go SDK for Zoom exists, so this is a plain
// net/http client rather than an import of a third-party wrapper.
type HTTPZoomClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
}

func NewHTTPZoomClient(clientID, clientSecret string) *HTTPZoomClient {
	return &HTTPZoomClient{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

var _ ingestservices.ZoomClient = (*HTTPZoomClient)(nil)

// RefreshAccessToken exchanges a refresh token for a new access token
// (§4.I "refresh... using a refresh token").
func (c *HTTPZoomClient) RefreshAccessToken(ctx context.Context, refreshToken string) (*ingestservices.RefreshedToken, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, zoomOAuthTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building zoom token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.clientID, c.clientSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoom token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("zoom token refresh returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding zoom token response: %w", err)
	}

	return &ingestservices.RefreshedToken{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second),
	}, nil
}

// GetRecording queries the recording-metadata endpoint for a meeting and
// picks the file matching recordingID.
func (c *HTTPZoomClient) GetRecording(ctx context.Context, accessToken, meetingID, recordingID string) (*ingestservices.Recording, error) {
	endpoint := fmt.Sprintf("%s/%s/recordings", zoomRecordingAPIURL, url.PathEscape(meetingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building zoom recordings request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoom recordings lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("zoom recordings lookup returned %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		RecordingFiles []struct {
			ID           string `json:"id"`
			DownloadURL  string `json:"download_url"`
			FileType     string `json:"file_type"`
		} `json:"recording_files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding zoom recordings response: %w", err)
	}

	for _, f := range payload.RecordingFiles {
		if f.ID == recordingID {
			return &ingestservices.Recording{ID: f.ID, DownloadURL: f.DownloadURL, FileType: f.FileType}, nil
		}
	}
	return nil, fmt.Errorf("recording %s not found on meeting %s", recordingID, meetingID)
}

// Download fetches the recording bytes. Zoom's download URLs require the
// bearer token appended as a query parameter as well as the header, per
// their documented quirk; both are set here.
func (c *HTTPZoomClient) Download(ctx context.Context, accessToken, downloadURL string) ([]byte, error) {
	sep := "?"
	if strings.Contains(downloadURL, "?") {
		sep = "&"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL+sep+"access_token="+url.QueryEscape(accessToken), nil)
	if err != nil {
		return nil, fmt.Errorf("building zoom download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zoom download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("zoom download returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
