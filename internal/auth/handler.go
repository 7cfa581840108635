package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopledger/inventory-billing-backend/pkg/activitylog"
	"github.com/shopledger/inventory-billing-backend/pkg/config"
	"github.com/shopledger/inventory-billing-backend/pkg/email"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Handler authenticates the single env-configured admin. There is no ambient
// logged-in flag: the session lives entirely in the bearer token the client
// presents on each request.
type Handler struct {
	cfg      config.Config
	passHash []byte
	mailer   *email.Service
	audit    *activitylog.Logger
}

func NewHandler(db *gorm.DB, cfg config.Config) *Handler {
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash admin password")
	}
	return &Handler{
		cfg:      cfg,
		passHash: hash,
		mailer:   email.NewService(),
		audit:    activitylog.NewLogger(db),
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Login checks admin credentials and issues a session token. A successful
// login fires a notification email when configured; delivery failure never
// blocks the login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != h.cfg.AdminUser ||
		bcrypt.CompareHashAndPassword(h.passHash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, expiresIn := h.generateToken(req.Username)

	_ = h.audit.Log(c, req.Username, "login", "", 0, nil)

	if h.cfg.NotifyEmail != "" {
		go func() {
			body := fmt.Sprintf("Admin user '%s' logged in at %s.", req.Username, time.Now().Format(time.RFC3339))
			if err := h.mailer.Send(h.cfg.NotifyEmail, "Admin Login", body); err != nil {
				log.Warn().Err(err).Msg("unable to send admin login notification")
			}
		}()
	}

	c.JSON(http.StatusOK, LoginResponse{AccessToken: token, ExpiresIn: expiresIn})
}

func (h *Handler) generateToken(username string) (string, int64) {
	const ttl = 12 * time.Hour

	claims := jwt.MapClaims{
		"sub": username,
		"jti": uuid.New().String(),
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(h.cfg.JWTSecret))
	return signed, int64(ttl.Seconds())
}
