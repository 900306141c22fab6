package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/dto"
	"github.com/sweetworks/sweetshop-api/internal/httperr"
	"github.com/sweetworks/sweetshop-api/internal/httpresp"
	"github.com/sweetworks/sweetshop-api/internal/middleware"
	ucsweet "github.com/sweetworks/sweetshop-api/internal/usecase/sweet"
)

// ======================================================
// HANDLER
// ======================================================

type SweetHandler struct {
	addUC      *ucsweet.AddSweet
	listUC     *ucsweet.ListSweets
	searchUC   *ucsweet.SearchSweets
	restockUC  *ucsweet.RestockSweet
	purchaseUC *ucsweet.PurchaseSweet
	updateUC   *ucsweet.UpdateSweet
	deleteUC   *ucsweet.DeleteSweet
}

func NewSweetHandler(
	addUC *ucsweet.AddSweet,
	listUC *ucsweet.ListSweets,
	searchUC *ucsweet.SearchSweets,
	restockUC *ucsweet.RestockSweet,
	purchaseUC *ucsweet.PurchaseSweet,
	updateUC *ucsweet.UpdateSweet,
	deleteUC *ucsweet.DeleteSweet,
) *SweetHandler {
	return &SweetHandler{
		addUC:      addUC,
		listUC:     listUC,
		searchUC:   searchUC,
		restockUC:  restockUC,
		purchaseUC: purchaseUC,
		updateUC:   updateUC,
		deleteUC:   deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type QuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func sweetID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_sweet_id", "Invalid sweet ID.")
		return 0, false
	}
	return uint(id), true
}

func requireShop(c *gin.Context) (uint, bool) {
	id, ok := middleware.ShopID(c)
	if !ok {
		httperr.Unauthorized(c, "shop_identity_required", "Only shops may perform this operation.")
		return 0, false
	}
	return id, true
}

func actor(c *gin.Context) (userID *uint, shopID *uint) {
	if id, ok := middleware.UserID(c); ok {
		userID = &id
	}
	if id, ok := middleware.ShopID(c); ok {
		shopID = &id
	}
	return userID, shopID
}

func openImage(c *gin.Context, field string) (multipart.File, bool, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, false, true
		}
		httperr.BadRequest(c, "invalid_image", "Could not read the uploaded image.")
		return nil, false, false
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Could not read the uploaded image.")
		return nil, false, false
	}
	return f, true, true
}

func respondSweetError(c *gin.Context, err error) {
	var ise domain.InsufficientStockError
	if errors.As(err, &ise) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success":           false,
			"error_code":        httperr.CodeInsufficientStock,
			"message":           ise.Error(),
			"availableQuantity": ise.Available,
			"requestedQuantity": ise.Requested,
		})
		return
	}

	switch {
	case httperr.IsBusiness(err, httperr.CodeSweetNotFound):
		httperr.NotFound(c, httperr.CodeSweetNotFound, "Sweet not found.")
	case httperr.IsBusiness(err, httperr.CodeNotOwner):
		httperr.Forbidden(c, httperr.CodeNotOwner, "You can only manage your own sweets.")
	case httperr.IsBusiness(err, httperr.CodeInvalidQuantity):
		httperr.BadRequest(c, httperr.CodeInvalidQuantity, "Quantity must be a non-negative integer.")
	case httperr.IsBusiness(err, httperr.CodeInvalidPrice):
		httperr.BadRequest(c, httperr.CodeInvalidPrice, "Price must be a non-negative number.")
	case httperr.IsBusiness(err, httperr.CodeInvalidSweet):
		httperr.BadRequest(c, httperr.CodeInvalidSweet, "Name and category are required.")
	case httperr.IsBusiness(err, httperr.CodeImageRequired):
		httperr.BadRequest(c, httperr.CodeImageRequired, "Image file is required.")
	case httperr.IsBusiness(err, httperr.CodeUploadFailed):
		httperr.Internal(c, httperr.CodeUploadFailed, "Failed to upload image.")
	default:
		httperr.Internal(c, "internal_error", "Something went wrong.")
	}
}

// ======================================================
// ADD
// ======================================================

func (h *SweetHandler) Add(c *gin.Context) {
	shopID, ok := requireShop(c)
	if !ok {
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidPrice, "Price must be a non-negative number.")
		return
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(c.PostForm("quantity")))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidQuantity, "Quantity must be a non-negative integer.")
		return
	}

	file, hasFile, ok := openImage(c, "image")
	if !ok {
		return
	}
	if !hasFile {
		httperr.BadRequest(c, httperr.CodeImageRequired, "Image file is required.")
		return
	}
	defer file.Close()

	created, err := h.addUC.Execute(c.Request.Context(), ucsweet.AddSweetInput{
		ShopID:   shopID,
		Name:     c.PostForm("name"),
		Category: c.PostForm("category"),
		Price:    price,
		Quantity: quantity,
		Image:    file,
	})
	if err != nil {
		respondSweetError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"msg":   "Sweet created successfully",
		"sweet": created,
	})
}

// ======================================================
// BULK / SEARCH
// ======================================================

func (h *SweetHandler) Bulk(c *gin.Context) {
	sweets, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "list_failed", "There is a problem fetching the sweets.")
		return
	}

	httpresp.OK(c, gin.H{"response": sweets})
}

func (h *SweetHandler) Search(c *gin.Context) {
	filter := domain.SearchFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}

	// unparsable bounds are ignored, matching the lenient query contract
	if raw := c.Query("minPrice"); raw != "" {
		if min, err := decimal.NewFromString(raw); err == nil {
			filter.MinPrice = &min
		}
	}
	if raw := c.Query("maxPrice"); raw != "" {
		if max, err := decimal.NewFromString(raw); err == nil {
			filter.MaxPrice = &max
		}
	}

	sweets, err := h.searchUC.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "search_failed", "Error searching for sweets.")
		return
	}

	results := dto.SweetsWithShop(sweets)
	httpresp.OK(c, gin.H{
		"count":  len(results),
		"sweets": results,
	})
}

// ======================================================
// RESTOCK / PURCHASE
// ======================================================

func (h *SweetHandler) Restock(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	userID, shopID := actor(c)
	result, err := h.restockUC.Execute(c.Request.Context(), ucsweet.RestockInput{
		SweetID:  id,
		Quantity: req.Quantity,
		UserID:   userID,
		ShopID:   shopID,
	})
	if err != nil {
		respondSweetError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"msg":              "Successfully restocked " + strconv.Itoa(result.RestockedAmount) + " units",
		"sweet":            result.Sweet,
		"previousQuantity": result.PreviousQuantity,
		"newQuantity":      result.NewQuantity,
		"restockedAmount":  result.RestockedAmount,
	})
}

func (h *SweetHandler) Purchase(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	userID, shopID := actor(c)
	receipt, err := h.purchaseUC.Execute(c.Request.Context(), ucsweet.PurchaseInput{
		SweetID:  id,
		Quantity: req.Quantity,
		UserID:   userID,
		ShopID:   shopID,
	})
	if err != nil {
		respondSweetError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"msg":      "Successfully purchased " + strconv.Itoa(receipt.QuantityPurchased) + " unit(s)",
		"purchase": receipt,
	})
}

// ======================================================
// UPDATE
// ======================================================

func (h *SweetHandler) Update(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	shopID, ok := requireShop(c)
	if !ok {
		return
	}

	var fields domain.UpdateFields

	if name, present := c.GetPostForm("name"); present {
		fields.Name = &name
	}
	if category, present := c.GetPostForm("category"); present {
		fields.Category = &category
	}
	if raw, present := c.GetPostForm("price"); present {
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidPrice, "Price must be a non-negative number.")
			return
		}
		fields.Price = &price
	}
	if raw, present := c.GetPostForm("quantity"); present {
		quantity, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			httperr.BadRequest(c, httperr.CodeInvalidQuantity, "Quantity must be a non-negative integer.")
			return
		}
		fields.Quantity = &quantity
	}
	// a literal URL is accepted when no file is attached
	if imageURL, present := c.GetPostForm("image"); present && imageURL != "" {
		fields.Image = &imageURL
	}

	file, hasFile, ok := openImage(c, "image")
	if !ok {
		return
	}
	if hasFile {
		defer file.Close()
	}

	if fields.Empty() && !hasFile {
		httperr.BadRequest(c, "empty_update", "Provide at least one field to update.")
		return
	}

	in := ucsweet.UpdateSweetInput{
		SweetID: id,
		ShopID:  shopID,
		Fields:  fields,
	}
	if hasFile {
		in.NewImage = file
	}

	updated, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		respondSweetError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"msg":   "Sweet updated successfully",
		"sweet": dto.SweetWithShop(*updated),
	})
}

// ======================================================
// DELETE
// ======================================================

func (h *SweetHandler) Delete(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}

	shopID, ok := requireShop(c)
	if !ok {
		return
	}

	deletedID, err := h.deleteUC.Execute(c.Request.Context(), id, shopID)
	if err != nil {
		respondSweetError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"msg":       "Sweet deleted successfully",
		"deletedId": deletedID,
	})
}
