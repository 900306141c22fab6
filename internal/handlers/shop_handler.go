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

type ShopHandler struct {
	db     *gorm.DB
	tokens *token.Manager
}

func NewShopHandler(db *gorm.DB, tokens *token.Manager) *ShopHandler {
	return &ShopHandler{db: db, tokens: tokens}
}

// --------- Requests ---------

type ShopRegisterRequest struct {
	Name     string `json:"name" binding:"required,min=3"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type ShopLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *ShopHandler) Register(c *gin.Context) {
	var req ShopRegisterRequest
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
	if err := h.db.Model(&models.Shop{}).Where("email = ?", email).Count(&count).Error; err != nil {
		httperr.Internal(c, "registration_failed", "Could not register shop.")
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_registered", "The shop is already registered, please login.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "registration_failed", "Could not register shop.")
		return
	}

	// Shops always hold the Admin role; it is not caller-selectable.
	shop := models.Shop{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		httperr.Internal(c, "registration_failed", "Could not register shop.")
		return
	}

	signed, err := h.tokens.SignShop(shop.ID, shop.Role)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not issue token.")
		return
	}

	httpresp.Created(c, gin.H{
		"msg":   "Shop registered successfully",
		"shop":  shop,
		"token": signed,
	})
}

func (h *ShopHandler) Login(c *gin.Context) {
	var req ShopLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := validators.NormalizeEmail(req.Email)

	var shop models.Shop
	if err := h.db.Where("email = ?", email).First(&shop).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
			return
		}
		httperr.Internal(c, "login_failed", "Could not log in.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(shop.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	signed, err := h.tokens.SignShop(shop.ID, shop.Role)
	if err != nil {
		httperr.Internal(c, "token_generation_failed", "Could not issue token.")
		return
	}

	httpresp.OK(c, gin.H{
		"msg":   "Logged in",
		"shop":  shop,
		"token": signed,
	})
}
