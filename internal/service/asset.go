package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/dto"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/metrics"
	"github.com/ThousandGolder/event-management-ticketing-system-sub001/internal/storage"
)

// AssetService represents asset service
type AssetService struct {
	store storage.AssetStore
	log   *zap.Logger
}

// NewAssetService creates a new asset service
func NewAssetService(store storage.AssetStore, log *zap.Logger) *AssetService {
	return &AssetService{
		store: store,
		log:   log,
	}
}

// IssueUpload issues a presigned upload and shapes the result into the
// structured success/failure contract. Provisioning errors never escape as
// errors; the caller decides how to surface the failure payload.
func (s *AssetService) IssueUpload(ctx context.Context, req *dto.IssueUploadRequest) *dto.UploadResponse {
	auth, err := s.store.IssueUploadAuthorization(ctx, storage.UploadRequest{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		Folder:      req.Folder,
		ExpiresIn:   time.Duration(req.ExpiresIn) * time.Second,
	})
	if err != nil {
		metrics.StoreErrors.WithLabelValues("issue_upload").Inc()
		s.log.Error("Failed to issue upload authorization",
			zap.String("file_name", req.FileName),
			zap.Error(err))
		return &dto.UploadResponse{
			Success: false,
			Error:   err.Error(),
			Message: "failed to issue upload authorization",
		}
	}

	metrics.UploadAuthorizationsIssued.Inc()

	return &dto.UploadResponse{
		Success:   true,
		URL:       auth.URL,
		Key:       auth.Key,
		Bucket:    auth.Bucket,
		PublicURL: s.store.PublicURL(auth.Key),
		Message:   "upload authorized",
	}
}

// ListAssets lists object metadata under the prefix, best-effort
func (s *AssetService) ListAssets(ctx context.Context, prefix string) *dto.ListObjectsResponse {
	objects, ok := s.store.ListObjects(ctx, prefix)

	resp := &dto.ListObjectsResponse{
		Success: ok,
		Objects: make([]dto.ObjectData, 0, len(objects)),
	}
	for _, obj := range objects {
		resp.Objects = append(resp.Objects, dto.ObjectData{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified.UTC().Format(time.RFC3339),
		})
	}
	resp.Count = len(resp.Objects)

	return resp
}

// DeleteAsset removes a single object, best-effort
func (s *AssetService) DeleteAsset(ctx context.Context, key string) bool {
	return s.store.DeleteObject(ctx, key)
}

// TestConnection probes the object store
func (s *AssetService) TestConnection(ctx context.Context) bool {
	return s.store.TestConnection(ctx)
}
