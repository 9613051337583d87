package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/interface/api/rest/dto/audit"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

type AuditController struct {
	auditLog ports.AuditLog
	logger   *zap.Logger
}

func NewAuditController(
	r *gin.Engine,
	auditLog ports.AuditLog,
	logger *zap.Logger,
	idp ports.IdentityProvider,
) *AuditController {
	ac := &AuditController{
		auditLog: auditLog,
		logger:   logger,
	}

	auth := middleware.AuthMiddleware(idp)
	r.GET(RouteFileAudit, auth, ac.GetFileHistoryHandler)
	r.GET(RouteMyAudit, auth, ac.GetMyHistoryHandler)

	return ac
}

func (ac *AuditController) GetFileHistoryHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID")
		return
	}
	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	es, err := ac.auditLog.FileHistory(c.Request.Context(), fileID, userID, page)
	if err != nil {
		respondError(c, ac.logger, "FileHistory()", err)
		return
	}

	c.JSON(http.StatusOK, audit.ResponseData{
		Data: audit.ToResponseEntries(es),
	})
}

func (ac *AuditController) GetMyHistoryHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	page, err := validator.ValidatePage(c.Query("page"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	es, err := ac.auditLog.ActorHistory(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, ac.logger, "ActorHistory()", err)
		return
	}

	c.JSON(http.StatusOK, audit.ResponseData{
		Data: audit.ToResponseEntries(es),
	})
}
