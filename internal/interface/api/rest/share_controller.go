package rest

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"file-share-api/internal/application/ports"
	"file-share-api/internal/domain/access"
	"file-share-api/internal/interface/api/rest/dto/grant"
	"file-share-api/internal/interface/api/rest/middleware"
	"file-share-api/internal/interface/api/rest/validator"
)

type ShareController struct {
	shareService ports.ShareService
	logger       *zap.Logger
	linksURL     string
}

// NewShareController registers the grant routes. baseURL is the public
// address links are handed out under.
func NewShareController(
	r *gin.Engine,
	shareService ports.ShareService,
	logger *zap.Logger,
	idp ports.IdentityProvider,
	baseURL string,
) *ShareController {
	sc := &ShareController{
		shareService: shareService,
		logger:       logger,
		linksURL:     strings.TrimSuffix(baseURL, "/") + RouteLinks,
	}

	auth := middleware.AuthMiddleware(idp)
	r.GET(RouteFileGrants, auth, sc.GetGrantsHandler)
	r.POST(RouteFileGrants, auth, sc.CreateGrantHandler)
	r.POST(RouteFileLinks, auth, sc.CreateLinkHandler)
	r.DELETE(RouteGrant, auth, sc.RevokeGrantHandler)

	return sc
}

func (sc *ShareController) GetGrantsHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID")
		return
	}

	gs, err := sc.shareService.ListGrants(c.Request.Context(), fileID, userID)
	if err != nil {
		respondError(c, sc.logger, "ListGrants()", err)
		return
	}

	c.JSON(http.StatusOK, grant.ResponseData{
		Data: grant.ToResponseGrants(gs),
	})
}

func (sc *ShareController) CreateGrantHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID")
		return
	}

	var req grant.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateGrantRequest(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	target := uuid.MustParse(strings.TrimSpace(req.UserID))
	role := access.Role(strings.ToLower(strings.TrimSpace(req.Role)))

	g, err := sc.shareService.ShareWithUser(c.Request.Context(), fileID, userID, target, role, req.ExpiresAt)
	if err != nil {
		respondError(c, sc.logger, "ShareWithUser()", err)
		return
	}

	c.JSON(http.StatusCreated, grant.ToResponseGrant(*g))
}

func (sc *ShareController) CreateLinkHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ok, fileID := validator.IsUUID(c.Param("file_id"))
	if !ok {
		badRequest(c, "file_id must be a valid UUID")
		return
	}

	var req grant.LinkRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}
	}

	g, err := sc.shareService.ShareLink(c.Request.Context(), fileID, userID, req.ExpiresAt)
	if err != nil {
		respondError(c, sc.logger, "ShareLink()", err)
		return
	}

	c.JSON(http.StatusCreated, grant.ToResponseLink(*g, sc.linksURL))
}

func (sc *ShareController) RevokeGrantHandler(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	ok, grantID := validator.IsUUID(c.Param("grant_id"))
	if !ok {
		badRequest(c, "grant_id must be a valid UUID")
		return
	}

	if err := sc.shareService.Unshare(c.Request.Context(), grantID, userID); err != nil {
		if errors.Is(err, access.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "grant not found"})
			return
		}
		respondError(c, sc.logger, "Unshare()", err)
		return
	}

	c.Status(http.StatusNoContent)
}
