package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/interface/api/rest/dto/file"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

type FileController struct {
	fileService ports.FileService
	logger      *zap.Logger
	maxSize     int64
}

func NewFileController(
	r *gin.Engine,
	fileService ports.FileService,
	logger *zap.Logger,
	idp ports.IdentityProvider,
	maxSize int64,
) *FileController {
	fc := &FileController{
		fileService: fileService,
		logger:      logger,
		maxSize:     maxSize,
	}

	auth := middleware.AuthMiddleware(idp)
	r.GET(RouteFiles, auth, fc.GetFilesHandler)
	r.POST(RouteFiles, auth, fc.UploadFileHandler)
	r.GET(RouteFile, auth, fc.GetFileHandler)
	r.DELETE(RouteFile, auth, fc.DeleteFileHandler)
	r.GET(RouteLink, auth, fc.RedeemLinkHandler)

	return fc
}

func (fc *FileController) GetFilesHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	files, err := fc.fileService.List(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, fc.logger, "List()", err)
		return
	}

	c.JSON(http.StatusOK, file.ResponseData{
		Data: file.ToResponseFiles(files),
	})
}

func (fc *FileController) UploadFileHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	fh, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	if fh.Size <= 0 {
		badRequest(c, "file is empty")
		return
	}
	if fh.Size > fc.maxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fc.fileService.Upload(c.Request.Context(), userID, fh)
	if err != nil {
		respondError(c, fc.logger, "Upload()", err)
		return
	}

	c.JSON(http.StatusCreated, file.ToResponseFile(*f))
}

func (fc *FileController) GetFileHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID")
		return
	}

	d, err := fc.fileService.Download(c.Request.Context(), userID, fileID)
	if err != nil {
		respondError(c, fc.logger, "Download()", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseDownload(*d))
}

func (fc *FileController) DeleteFileHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID")
		return
	}

	if err := fc.fileService.Delete(c.Request.Context(), userID, fileID); err != nil {
		respondError(c, fc.logger, "Delete()", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (fc *FileController) RedeemLinkHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	token := c.Param("token")
	if !validator.IsLinkToken(token) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	d, err := fc.fileService.Redeem(c.Request.Context(), userID, token)
	if err != nil {
		respondError(c, fc.logger, "Redeem()", err)
		return
	}

	c.JSON(http.StatusOK, file.ToResponseDownload(*d))
}
