package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tazhibayda/devconnect-service/internal/log"
	"github.com/tazhibayda/devconnect-service/internal/queue"
	"github.com/tazhibayda/devconnect-service/internal/repo"
	"github.com/tazhibayda/devconnect-service/internal/security"
	"github.com/tazhibayda/devconnect-service/internal/service"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Users     *service.UserService
	Posts     *service.PostService
	Profiles  *service.ProfileService
	Health    Pinger
	JWTSecret string
	TokenTTL  time.Duration
	Events    queue.Publisher
	Exchange  string
}

func NewHandler(users *service.UserService, posts *service.PostService, profiles *service.ProfileService,
	health Pinger, jwtSecret string, ttlSeconds int, pub queue.Publisher, exchange string) *Handler {
	return &Handler{
		Users:     users,
		Posts:     posts,
		Profiles:  profiles,
		Health:    health,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlSeconds) * time.Second,
		Events:    pub,
		Exchange:  exchange,
	}
}

// fail translates service results into status codes: 404 for missing
// targets, 403 for ownership denials, 500 for store faults (cause logged,
// not leaked).
func (h *Handler) fail(c *gin.Context, err error) {
	var fe *service.ForbiddenError
	switch {
	case errors.Is(err, repo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &fe):
		c.JSON(http.StatusForbidden, gin.H{"error": fe.Reason})
	default:
		log.WithDD(c.Request.Context(), log.L()).Error("request failed",
			zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}

func (h *Handler) publish(c *gin.Context, key string, event any) {
	reqID := c.GetString(requestIDKey)
	go func() {
		if err := h.Events.Publish(context.Background(), h.Exchange, key, event, reqID); err != nil {
			log.L().Warn("event publish failed", zap.String("key", key), zap.Error(err))
		}
	}()
}

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type tokenResp struct {
	Token string `json:"token"`
}

// Register godoc
// @Summary Register user, returns access token
// @Tags users
// @Accept json
// @Produce json
// @Param payload body registerReq true "register"
// @Success 201 {object} tokenResp
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if !strings.Contains(in.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provide a correct email"})
		return
	}
	u, err := h.Users.Register(c.Request.Context(), strings.TrimSpace(in.Name), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, repo.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.fail(c, err)
		return
	}
	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), h.TokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.publish(c, queue.KeyUserRegistered, queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name})

	c.JSON(http.StatusCreated, tokenResp{Token: tok})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Authenticate, returns access token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "login"
// @Success 200 {object} tokenResp
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.fail(c, err)
		return
	}
	tok, err := security.MakeAccess(h.JWTSecret, u.ID.Hex(), h.TokenTTL)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResp{Token: tok})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /api/auth [get]
func (h *Handler) Me(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), currentUID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Health.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
