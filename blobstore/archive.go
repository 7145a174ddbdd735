// Package blobstore is the best-effort archival sink for raw meeting audio:
// once a meeting is durably persisted, its source audio is uploaded to a
// Firebase-backed bucket for later retrieval. Archival never blocks or
// fails the caller-facing response — the meeting record is already
// complete without it.
package blobstore

import (
	"context"
	"fmt"
	"log"
	"time"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	firebasestorage "firebase.google.com/go/v4/storage"
	"google.golang.org/api/option"

	"scribe/server/seedwork/infrastructure/config"
)

// Archive uploads meeting audio to durable blob storage, keyed by meeting
// and an optional session id (live sessions archive their concatenated
// chunk audio under the session that produced the meeting).
type Archive interface {
	Upload(ctx context.Context, meetingID, sessionID string, audio []byte, contentType string) (string, error)
}

// FirebaseArchive implements Archive against a Google Cloud Storage bucket
// provisioned through a Firebase project: a firebase.App built from a
// credentials file, asked for its Storage client rather than Auth.
type FirebaseArchive struct {
	client *firebasestorage.Client
	bucket string
}

// NewFirebaseArchive builds a client from the configured credentials file.
// A caller with no Firebase bucket configured should use NoopArchive
// instead — this constructor assumes cfg.Bucket is non-empty.
func NewFirebaseArchive(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseArchive, error) {
	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.Bucket}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &FirebaseArchive{client: client, bucket: cfg.Bucket}, nil
}

// Upload writes audio under meetings/<meetingID>/audio/<sessionID>_<unix>
// and returns a best-effort signed URL, falling back to a gs:// reference
// if URL signing fails.
func (a *FirebaseArchive) Upload(ctx context.Context, meetingID, sessionID string, audio []byte, contentType string) (string, error) {
	objectName := fmt.Sprintf("meetings/%s/audio/%s_%d", meetingID, sessionID, time.Now().Unix())

	bucket, err := a.client.Bucket(a.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to resolve archive bucket: %w", err)
	}

	obj := bucket.Object(objectName)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(audio); err != nil {
		w.Close()
		return "", fmt.Errorf("failed to write archive object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close archive writer: %w", err)
	}

	signedURL, err := bucket.SignedURL(objectName, &storage.SignedURLOptions{
		Method:  "GET",
		Expires: time.Now().Add(1 * time.Hour),
	})
	if err != nil {
		log.Printf("blobstore: failed to sign URL for %s, falling back to gs:// reference: %v", objectName, err)
		return fmt.Sprintf("gs://%s/%s", a.bucket, objectName), nil
	}
	return signedURL, nil
}

// NoopArchive is used when no Firebase bucket is configured (development,
// MOCK_MODE): archival is skipped entirely rather than failing startup.
type NoopArchive struct{}

func (NoopArchive) Upload(ctx context.Context, meetingID, sessionID string, audio []byte, contentType string) (string, error) {
	return "", nil
}

var _ Archive = (*FirebaseArchive)(nil)
var _ Archive = NoopArchive{}
