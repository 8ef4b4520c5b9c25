package main

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mercatto/storefront/internal/httpx"
	"github.com/mercatto/storefront/internal/product"
)

func listProductsHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		q := product.Query{Q: c.Query("q"), Limit: limit, Offset: offset}

		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			log.Printf("[product] list: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if items == nil {
			items = []product.Product{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"products": items})
	}
}

func singleProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ProductID string `json:"product_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "product_id is required")
			return
		}
		p, err := repo.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"product": p})
	}
}

func addProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Price == "" {
			httpx.Fail(c, http.StatusBadRequest, "name and price are required")
			return
		}
		if price, err := decimal.NewFromString(req.Price); err != nil || price.IsNegative() {
			httpx.Fail(c, http.StatusBadRequest, "price must be a non-negative decimal")
			return
		}
		p := &product.Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Images:      req.Images,
			Category:    req.Category,
			SubCategory: req.SubCategory,
			Sizes:       req.Sizes,
			Colors:      req.Colors,
			Bestseller:  req.Bestseller,
		}
		if p.Images == nil {
			p.Images = []string{}
		}
		if p.Sizes == nil {
			p.Sizes = []string{}
		}
		if p.Colors == nil {
			p.Colors = []string{}
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			log.Printf("[product] create: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		httpx.OK(c, http.StatusCreated, gin.H{"message": "product added", "id": p.ID})
	}
}

func removeProductHandler(repo product.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.RemoveProductRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
			httpx.Fail(c, http.StatusBadRequest, "id is required")
			return
		}
		ok, err := repo.Delete(c.Request.Context(), req.ID)
		if err != nil {
			log.Printf("[product] delete: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if !ok {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		httpx.Message(c, http.StatusOK, "product removed")
	}
}
