package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/httperr"
	"github.com/sweetworks/sweetshop-api/internal/httpresp"
	"github.com/sweetworks/sweetshop-api/internal/models"
	"github.com/sweetworks/sweetshop-api/internal/token"
	"github.com/sweetworks/sweetshop-api/internal/validators"
)

type AuthHandler struct {
	db     *gorm.DB
	tokens *token.Manager
}

func NewAuthHandler(db *gorm.DB, tokens *token.Manager) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=User Admin"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "registration_failed", "Could not register user.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "User already exists, please login.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "registration_failed", "Could not register user.")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		Role:         req.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		httperr.Internal(c, "registration_failed", "Could not register user.")
		return
	}

	signed, err := h.tokens.SignUser(user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not issue token.")
		return
	}

	httpresp.Created(c, gin.H{
		"msg":   "User created successfully",
		"user":  user,
		"token": signed,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Internal(c, "login_failed", "Could not log in.")
		return
	}

	// Existence alone is never enough: the submitted password must
	// match the stored hash.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	signed, err := h.tokens.SignUser(user.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not issue token.")
		return
	}

	httpresp.OK(c, gin.H{
		"msg":   "Logged in",
		"user":  user,
		"token": signed,
	})
}
