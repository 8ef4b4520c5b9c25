package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mercatto/storefront/internal/cart"
	"github.com/mercatto/storefront/internal/httpx"
)

type cartVariantRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	Size   string `json:"size"`
	Color  string `json:"color"`
}

type cartUpdateRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// Cart writes are read-modify-write on the user's document with no
// concurrency guard: rapid parallel requests from the same user are
// last-write-wins.

func addToCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartVariantRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "item_id is required")
			return
		}
		userID := httpx.UserID(c)

		doc, err := carts.Get(c.Request.Context(), userID)
		if err != nil {
			log.Printf("[cart] get: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		if err := doc.Add(req.ItemID, cart.Variant{Size: req.Size, Color: req.Color}); err != nil {
			httpx.Fail(c, http.StatusBadRequest, variantErrorMessage(err))
			return
		}
		if err := carts.Save(c.Request.Context(), userID, doc); err != nil {
			log.Printf("[cart] save: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		httpx.Message(c, http.StatusOK, "added to cart")
	}
}

func updateCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "item_id is required")
			return
		}
		userID := httpx.UserID(c)

		doc, err := carts.Get(c.Request.Context(), userID)
		if err != nil {
			log.Printf("[cart] get: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		err = doc.SetQuantity(req.ItemID, cart.Variant{Size: req.Size, Color: req.Color}, req.Quantity)
		switch {
		case errors.Is(err, cart.ErrNotInCart):
			httpx.Fail(c, http.StatusNotFound, "item not found in cart")
			return
		case err != nil:
			httpx.Fail(c, http.StatusBadRequest, variantErrorMessage(err))
			return
		}
		if err := carts.Save(c.Request.Context(), userID, doc); err != nil {
			log.Printf("[cart] save: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		httpx.Message(c, http.StatusOK, "cart updated")
	}
}

func getCartHandler(carts cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := carts.Get(c.Request.Context(), httpx.UserID(c))
		if err != nil {
			log.Printf("[cart] get: %v", err)
			httpx.Fail(c, http.StatusInternalServerError, "something went wrong")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{
			"cart_data": doc,
			"items":     doc.Lines(),
			"count":     doc.Count(),
		})
	}
}

func variantErrorMessage(err error) string {
	if errors.Is(err, cart.ErrVariantRequired) {
		return "please select both size and color"
	}
	return err.Error()
}
