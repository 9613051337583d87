package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"file-share-api/internal/domain/access"
	"file-share-api/internal/domain/audit"
	"file-share-api/internal/domain/file"
	"file-share-api/internal/domain/grant"
	"file-share-api/internal/domain/principal"
	jwtSvc "file-share-api/internal/infrastructure/jwt"
)

const testSecret = "test-secret"

func SignJWT(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	return jwtSvc.New(secret).GenerateJWT(principal.Principal{ID: userID, Email: "u@example.com"}, ttl)
}

func authHeader(t *testing.T, userID uuid.UUID) map[string]string {
	t.Helper()
	tok, err := SignJWT(testSecret, userID, time.Hour)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + tok}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func doMultipartReq(
	t *testing.T,
	r *gin.Engine,
	path, fileField, fileName string,
	fileContent []byte,
	headers map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	if fileField != "" && fileContent != nil {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, _ = fw.Write(fileContent)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, path, &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func errorOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)
	s, _ := resp["error"].(string)
	return s
}

var errNotUsed = errors.New("not used")

type FakeFileService struct {
	UploadFunc   func(ctx context.Context, ownerID uuid.UUID, in *multipart.FileHeader) (*file.File, error)
	ListFunc     func(ctx context.Context, ownerID uuid.UUID, page int) (file.Files, error)
	DownloadFunc func(ctx context.Context, userID, fileID uuid.UUID) (*file.Download, error)
	RedeemFunc   func(ctx context.Context, userID uuid.UUID, token string) (*file.Download, error)
	DeleteFunc   func(ctx context.Context, userID, fileID uuid.UUID) error
}

func (f *FakeFileService) Upload(ctx context.Context, ownerID uuid.UUID, in *multipart.FileHeader) (*file.File, error) {
	if f.UploadFunc == nil {
		return nil, errNotUsed
	}
	return f.UploadFunc(ctx, ownerID, in)
}
func (f *FakeFileService) List(ctx context.Context, ownerID uuid.UUID, page int) (file.Files, error) {
	if f.ListFunc == nil {
		return nil, errNotUsed
	}
	return f.ListFunc(ctx, ownerID, page)
}
func (f *FakeFileService) Download(ctx context.Context, userID, fileID uuid.UUID) (*file.Download, error) {
	if f.DownloadFunc == nil {
		return nil, errNotUsed
	}
	return f.DownloadFunc(ctx, userID, fileID)
}
func (f *FakeFileService) Redeem(ctx context.Context, userID uuid.UUID, token string) (*file.Download, error) {
	if f.RedeemFunc == nil {
		return nil, errNotUsed
	}
	return f.RedeemFunc(ctx, userID, token)
}
func (f *FakeFileService) Delete(ctx context.Context, userID, fileID uuid.UUID) error {
	if f.DeleteFunc == nil {
		return errNotUsed
	}
	return f.DeleteFunc(ctx, userID, fileID)
}

type FakeShareService struct {
	ListGrantsFunc    func(ctx context.Context, fileID, requesterID uuid.UUID) (grant.Grants, error)
	ShareWithUserFunc func(ctx context.Context, fileID, ownerID, targetUserID uuid.UUID, role access.Role, expiresAt *time.Time) (*grant.Grant, error)
	ShareLinkFunc     func(ctx context.Context, fileID, ownerID uuid.UUID, expiresAt *time.Time) (*grant.Grant, error)
	UnshareFunc       func(ctx context.Context, grantID, requesterID uuid.UUID) error
}

func (f *FakeShareService) ListGrants(ctx context.Context, fileID, requesterID uuid.UUID) (grant.Grants, error) {
	if f.ListGrantsFunc == nil {
		return nil, errNotUsed
	}
	return f.ListGrantsFunc(ctx, fileID, requesterID)
}
func (f *FakeShareService) ShareWithUser(
	ctx context.Context,
	fileID, ownerID, targetUserID uuid.UUID,
	role access.Role,
	expiresAt *time.Time,
) (*grant.Grant, error) {
	if f.ShareWithUserFunc == nil {
		return nil, errNotUsed
	}
	return f.ShareWithUserFunc(ctx, fileID, ownerID, targetUserID, role, expiresAt)
}
func (f *FakeShareService) ShareLink(ctx context.Context, fileID, ownerID uuid.UUID, expiresAt *time.Time) (*grant.Grant, error) {
	if f.ShareLinkFunc == nil {
		return nil, errNotUsed
	}
	return f.ShareLinkFunc(ctx, fileID, ownerID, expiresAt)
}
func (f *FakeShareService) Unshare(ctx context.Context, grantID, requesterID uuid.UUID) error {
	if f.UnshareFunc == nil {
		return errNotUsed
	}
	return f.UnshareFunc(ctx, grantID, requesterID)
}

type FakeAuditLog struct {
	FileHistoryFunc  func(ctx context.Context, fileID, requesterID uuid.UUID, page int) (audit.Entries, error)
	ActorHistoryFunc func(ctx context.Context, actorID uuid.UUID, page int) (audit.Entries, error)
}

func (f *FakeAuditLog) Record(context.Context, audit.Entry) {}
func (f *FakeAuditLog) FileHistory(ctx context.Context, fileID, requesterID uuid.UUID, page int) (audit.Entries, error) {
	if f.FileHistoryFunc == nil {
		return nil, errNotUsed
	}
	return f.FileHistoryFunc(ctx, fileID, requesterID, page)
}
func (f *FakeAuditLog) ActorHistory(ctx context.Context, actorID uuid.UUID, page int) (audit.Entries, error) {
	if f.ActorHistoryFunc == nil {
		return nil, errNotUsed
	}
	return f.ActorHistoryFunc(ctx, actorID, page)
}
