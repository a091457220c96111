package storage

import (
	"context"
	"time"
)

// UploadRequest describes a single media object upload to authorize.
type UploadRequest struct {
	FileName    string
	ContentType string
	// Folder is the key prefix; defaults to "event-images".
	Folder string
	// ExpiresIn bounds the validity of the issued URL; defaults to one hour.
	ExpiresIn time.Duration
}

// UploadAuthorization is a time-limited capability to PUT one object of the
// declared content type.
type UploadAuthorization struct {
	URL    string
	Key    string
	Bucket string
}

// ObjectInfo is the metadata returned by listings.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// AssetStore manages media objects and the bucket backing them.
//
// ListObjects and DeleteObject are best-effort: they never return an error,
// only an ok flag distinguishing "call failed" from a genuinely empty or
// already-deleted result.
type AssetStore interface {
	// IssueUploadAuthorization returns a presigned PUT URL for the object.
	IssueUploadAuthorization(ctx context.Context, req UploadRequest) (*UploadAuthorization, error)

	// PublicURL derives the externally visible URL for an object key. An
	// empty key yields the placeholder image URL.
	PublicURL(key string) string

	// EnsureBucketExists provisions the bucket (existence, public-read
	// policy, CORS) if needed. Idempotent; false on any provisioning error.
	EnsureBucketExists(ctx context.Context) bool

	// ListObjects returns object metadata under the prefix.
	ListObjects(ctx context.Context, prefix string) ([]ObjectInfo, bool)

	// DeleteObject removes a single object.
	DeleteObject(ctx context.Context, key string) bool

	// TestConnection probes the object store, provisioning the bucket as a
	// side effect.
	TestConnection(ctx context.Context) bool
}
