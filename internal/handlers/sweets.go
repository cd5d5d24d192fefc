package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naveensh16/sweet-shop-management/internal/domain"
	"github.com/naveensh16/sweet-shop-management/internal/middlewares"
	"github.com/naveensh16/sweet-shop-management/internal/service"
)

type SweetHandler struct {
	svc *service.SweetSvc
}

func NewSweetHandler(svc *service.SweetSvc) *SweetHandler {
	return &SweetHandler{svc: svc}
}

func (h *SweetHandler) Create(c *gin.Context) {
	var in struct {
		Name        string  `json:"name" binding:"required"`
		Category    string  `json:"category" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Quantity    *int    `json:"quantity" binding:"required"`
		Description string  `json:"description"`
		ImageURL    string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sw, err := h.svc.Create(c.Request.Context(), service.CreateSweetInput{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    *in.Quantity,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sw)
}

func (h *SweetHandler) List(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be an integer"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	inStockOnly := c.DefaultQuery("in_stock_only", "false") == "true"

	sweets, err := h.svc.List(c.Request.Context(), skip, limit, inStockOnly)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sweets)
}

func (h *SweetHandler) Search(c *gin.Context) {
	p := service.SearchParams{
		Name:     c.Query("name"),
		Category: c.Query("category"),
		// in_stock_only defaults true here; List defaults false.
		InStockOnly: c.DefaultQuery("in_stock_only", "true") == "true",
	}
	if v := c.Query("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_price must be a number"})
			return
		}
		p.MinPrice = &f
	}
	if v := c.Query("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "max_price must be a number"})
			return
		}
		p.MaxPrice = &f
	}
	sweets, err := h.svc.Search(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sweets)
}

func (h *SweetHandler) Get(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}
	sw, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sw)
}

func (h *SweetHandler) Update(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}
	var in struct {
		Name        *string  `json:"name"`
		Category    *string  `json:"category"`
		Price       *float64 `json:"price"`
		Quantity    *int     `json:"quantity"`
		Description *string  `json:"description"`
		ImageURL    *string  `json:"image_url"`
		IsActive    *bool    `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sw, err := h.svc.Update(c.Request.Context(), id, service.UpdateSweetInput{
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Quantity:    in.Quantity,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		IsActive:    in.IsActive,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sw)
}

func (h *SweetHandler) Delete(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SweetHandler) Purchase(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}
	var in struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ident := middlewares.IdentityFrom(c)
	sw, err := h.svc.Purchase(c.Request.Context(), ident, id, in.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully purchased %d units of %s", in.Quantity, sw.Name),
		"sweet":   sw,
	})
}

func (h *SweetHandler) Restock(c *gin.Context) {
	id, ok := sweetID(c)
	if !ok {
		return
	}
	var in struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ident := middlewares.IdentityFrom(c)
	sw, err := h.svc.Restock(c.Request.Context(), ident, id, in.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Successfully restocked %d units of %s", in.Quantity, sw.Name),
		"sweet":   sw,
	})
}

func sweetID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, domain.Invalidf("invalid sweet id"))
		return 0, false
	}
	return uint(id), true
}
