package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
	"github.com/Charles-Okoeguale/smart-link/internal/dto"
	"github.com/Charles-Okoeguale/smart-link/internal/geo"
	"github.com/Charles-Okoeguale/smart-link/internal/service"
)

type Handler struct {
	linkService service.LinkServicer
	locator     geo.Locator
	router      *gin.Engine
	log         *zap.Logger
}

func NewHandler(linkService service.LinkServicer, locator geo.Locator, log *zap.Logger) *Handler {
	h := &Handler{
		linkService: linkService,
		locator:     locator,
		router:      gin.Default(),
		log:         log,
	}

	h.registerRoutes()

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) registerRoutes() {
	h.router.GET("/health", h.healthCheck)
	h.router.POST("/shorten", h.shorten)
	h.router.POST("/redirect", h.redirect)
	h.router.GET("/analytics", h.getAnalytics)
	h.router.GET("/r/:shortCode", h.follow)
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// shorten handles POST /shorten
func (h *Handler) shorten(c *gin.Context) {
	var req dto.ShortenRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid shorten request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Missing required fields: originalUrl, campaignId, creatorId",
		})
		return
	}

	resp, err := h.linkService.CreateLink(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownRoutingKey) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		h.log.Error("Failed to create link",
			zap.String("campaign_id", req.CampaignID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// redirect handles POST /redirect
func (h *Handler) redirect(c *gin.Context) {
	var req dto.RedirectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Invalid redirect request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing required field: shortCode"})
		return
	}

	resp, err := h.linkService.ResolveRedirect(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Short URL not found"})
			return
		}
		h.log.Error("Failed to resolve redirect",
			zap.String("short_code", req.ShortCode),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// follow handles GET /r/:shortCode with a server-side 302. Platform is
// classified from the User-Agent header and the location comes from the
// geolocation collaborator keyed on the client IP.
func (h *Handler) follow(c *gin.Context) {
	shortCode := c.Param("shortCode")

	req := &dto.RedirectRequest{
		ShortCode:    shortCode,
		UserAgent:    c.Request.UserAgent(),
		UserLocation: h.locator.Lookup(c.Request.Context(), c.ClientIP()),
	}

	resp, err := h.linkService.ResolveRedirect(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Short URL not found"})
			return
		}
		h.log.Error("Failed to resolve redirect",
			zap.String("short_code", shortCode),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.Redirect(http.StatusFound, resp.TargetURL)
}

// getAnalytics handles GET /analytics
func (h *Handler) getAnalytics(c *gin.Context) {
	var req dto.AnalyticsRequest

	if err := c.ShouldBindQuery(&req); err != nil {
		h.log.Warn("Invalid analytics request", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := h.linkService.GetAnalytics(c.Request.Context(), &req)
	if err != nil {
		h.log.Error("Failed to get analytics",
			zap.String("campaign_id", req.CampaignID),
			zap.String("short_code", req.ShortCode),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
