package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sweetworks/sweetshop-api/internal/httperr"
	"github.com/sweetworks/sweetshop-api/internal/httpresp"
	"github.com/sweetworks/sweetshop-api/internal/middleware"
	"github.com/sweetworks/sweetshop-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe resolves whichever identity the token carries.
func (h *MeHandler) GetMe(c *gin.Context) {
	if userID, ok := middleware.UserID(c); ok {
		var user models.User
		if err := h.db.First(&user, userID).Error; err != nil {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		httpresp.OK(c, gin.H{"kind": "user", "user": user})
		return
	}

	if shopID, ok := middleware.ShopID(c); ok {
		var shop models.Shop
		if err := h.db.First(&shop, shopID).Error; err != nil {
			httperr.NotFound(c, "shop_not_found", "Shop not found.")
			return
		}
		httpresp.OK(c, gin.H{"kind": "shop", "shop": shop})
		return
	}

	httperr.Unauthorized(c, "identity_not_in_context", "No identity in token.")
}
