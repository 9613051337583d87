package services

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/access"
	"file-share-api/internal/domain/audit"
	"file-share-api/internal/domain/file"
)

const defaultContentType = "application/octet-stream"

type FileService struct {
	blobs          ports.BlobStore
	fileRepository file.Repository
	resolver       ports.AccessResolver
	auditLog       ports.AuditLog
	logger         *zap.Logger
	mCounter       *prometheus.CounterVec
	now            func() time.Time
}

func NewFileService(
	blobs ports.BlobStore,
	fileRepository file.Repository,
	resolver ports.AccessResolver,
	auditLog ports.AuditLog,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		blobs:          blobs,
		fileRepository: fileRepository,
		resolver:       resolver,
		auditLog:       auditLog,
		logger:         logger,
		mCounter:       mCounter,
		now:            time.Now,
	}
}

func (fs *FileService) count(label string) {
	if fs.mCounter != nil {
		fs.mCounter.WithLabelValues(label).Inc()
	}
}

func (fs *FileService) Upload(ctx context.Context, ownerID uuid.UUID, in *multipart.FileHeader) (*file.File, error) {
	f := fs.fillMetaData(ownerID, in)

	src, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err = fs.blobs.PutObject(ctx, f.StorageKey, src, in.Size, f.ContentType); err != nil {
		return nil, storageErr("put object", err)
	}

	out, err := fs.fileRepository.CreateFile(ctx, f)
	if err != nil {
		if rmErr := fs.blobs.RemoveObject(context.WithoutCancel(ctx), f.StorageKey); rmErr != nil {
			fs.logger.Error("orphaned object after failed insert",
				zap.Error(rmErr),
				zap.String("storage_key", f.StorageKey),
			)
		}
		return nil, storageErr("create file", err)
	}

	fs.auditLog.Record(ctx, audit.Entry{
		FileID:   out.ID,
		ActorID:  ownerID,
		Action:   audit.ActionUpload,
		Metadata: fmt.Sprintf("name=%s size=%d", out.FileName, out.SizeBytes),
	})
	fs.count("files_uploaded_total")

	return out, nil
}

func (fs *FileService) fillMetaData(ownerID uuid.UUID, in *multipart.FileHeader) *file.File {
	f := &file.File{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		FileName:    sanitizeFileName(in.Filename),
		ContentType: in.Header.Get("Content-Type"),
		SizeBytes:   uint64(max(in.Size, 0)),
		Bucket:      fs.blobs.GetBucket(),
	}
	if f.ContentType == "" {
		f.ContentType = mime.TypeByExtension(path.Ext(f.FileName))
	}
	if f.ContentType == "" {
		f.ContentType = defaultContentType
	}
	f.StorageKey = storageKey(ownerID, f.ID, f.FileName, f.ContentType, fs.now())

	return f
}

func (fs *FileService) List(ctx context.Context, ownerID uuid.UUID, page int) (file.Files, error) {
	fls, err := fs.fileRepository.FetchOwnerFiles(ctx, ownerID, page)
	if err != nil {
		return nil, storageErr("fetch owner files", err)
	}

	return fls, nil
}

func (fs *FileService) Download(ctx context.Context, userID, fileID uuid.UUID) (*file.Download, error) {
	d, err := fs.resolver.ResolveByUser(ctx, userID, fileID)
	if err != nil {
		return nil, err
	}

	return fs.download(ctx, userID, d, "via=user")
}

func (fs *FileService) Redeem(ctx context.Context, userID uuid.UUID, token string) (*file.Download, error) {
	d, err := fs.resolver.ResolveByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return fs.download(ctx, userID, d, "via=link")
}

func (fs *FileService) download(
	ctx context.Context,
	userID uuid.UUID,
	d access.Decision,
	via string,
) (*file.Download, error) {
	if d.Outcome != access.OutcomeAllowed {
		return nil, d.Err()
	}

	f, err := fs.fileRepository.FetchFile(ctx, d.FileID)
	if err != nil {
		return nil, storageErr("fetch file", err)
	}
	if f == nil {
		// deleted after the decision was made
		return nil, access.ErrNotFound
	}

	url, err := fs.blobs.PresignedURL(ctx, f.StorageKey, f.FileName)
	if err != nil {
		return nil, storageErr("presign", err)
	}

	meta := fmt.Sprintf("%s role=%s", via, d.Role)
	if d.GrantID != nil {
		meta += " grant=" + d.GrantID.String()
	}
	fs.auditLog.Record(ctx, audit.Entry{
		FileID:   f.ID,
		ActorID:  userID,
		Action:   audit.ActionDownload,
		Metadata: meta,
	})
	fs.count("files_downloaded_total")

	return &file.Download{File: f, Role: d.Role, URL: url}, nil
}

// Delete removes the object before the rows, so a failed delete can be retried.
func (fs *FileService) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	if err := fs.resolver.RequireOwner(ctx, fileID, userID); err != nil {
		return err
	}

	f, err := fs.fileRepository.FetchFile(ctx, fileID)
	if err != nil {
		return storageErr("fetch file", err)
	}
	if f == nil {
		return access.ErrNotFound
	}

	if err = fs.blobs.RemoveObject(ctx, f.StorageKey); err != nil {
		return storageErr("remove object", err)
	}

	deleted, err := fs.fileRepository.DeleteFile(ctx, fileID)
	if err != nil {
		return storageErr("delete file", err)
	}
	if !deleted {
		return access.ErrNotFound
	}

	fs.auditLog.Record(ctx, audit.Entry{
		FileID:   fileID,
		ActorID:  userID,
		Action:   audit.ActionDelete,
		Metadata: "name=" + f.FileName,
	})
	fs.count("files_deleted_total")

	return nil
}
