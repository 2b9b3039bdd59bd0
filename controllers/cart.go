package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"go-pizzeria/apperr"
	"go-pizzeria/models"
	"go-pizzeria/storage"
	"go-pizzeria/utils"
)

// CartController handles per-user carts. Every operation passes the token
// gate for the target phone before touching the store. The record store
// has no cross-operation locking, so each mutation takes a per-phone mutex
// to keep its read-modify-write sequence from losing updates.
type CartController struct {
	Store  *storage.FileStore
	Tokens *TokenController
	locks  *storage.KeyedMutex
}

func NewCartController(store *storage.FileStore, tokens *TokenController) *CartController {
	return &CartController{
		Store:  store,
		Tokens: tokens,
		locks:  storage.NewKeyedMutex(),
	}
}

// Get returns the cart for the phone in the query string, creating an
// empty one if the user has none yet. Idempotent.
func (cc *CartController) Get(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if len(phone) != 10 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}
	if err := cc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	unlock := cc.locks.Lock(phone)
	defer unlock()

	var cart models.Cart
	if err := cc.Store.Read("carts", phone, &cart); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logrus.WithError(err).Error("failed to read cart")
			utils.Error(w, apperr.New(apperr.IO, "could not retrieve cart data"))
			return
		}
		cart = *models.NewCart()
		if err := cc.Store.Create("carts", phone, cart); err != nil {
			logrus.WithError(err).Error("failed to create cart")
			utils.Error(w, apperr.New(apperr.IO, "no cart exists for this user and a new one could not be created"))
			return
		}
	}
	utils.JSON(w, http.StatusOK, cart)
}

// AddItem appends a menu item to the cart. The unit price is snapshotted
// from the catalog at add time and the running total incremented by
// quantity times that price. The menu item is resolved before anything is
// written, so a bad reference leaves the cart untouched.
func (cc *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone      string `json:"phone"`
		MenuItemID string `json:"menuItemId"`
		Quantity   int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	phone := strings.TrimSpace(req.Phone)
	menuItemID := strings.TrimSpace(req.MenuItemID)
	if len(phone) != 10 || len(menuItemID) != 20 || req.Quantity <= 0 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required data"))
		return
	}
	if err := cc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	var menuItem models.MenuItem
	if err := cc.Store.Read("menu", menuItemID, &menuItem); err != nil || menuItem.Price <= 0 {
		utils.Error(w, apperr.New(apperr.Validation, "invalid menuItemId provided"))
		return
	}

	unlock := cc.locks.Lock(phone)
	defer unlock()

	cart, existed, err := cc.readCart(phone)
	if err != nil {
		logrus.WithError(err).Error("failed to read cart")
		utils.Error(w, apperr.New(apperr.IO, "could not retrieve cart data"))
		return
	}

	cart.Items = append(cart.Items, models.CartItem{
		ID:         utils.NewID(),
		MenuItemID: menuItemID,
		Quantity:   req.Quantity,
		UnitPrice:  menuItem.Price,
	})
	cart.TotalPrice += float64(req.Quantity) * menuItem.Price

	if err := cc.writeCart(phone, existed, cart); err != nil {
		logrus.WithError(err).Error("failed to persist cart")
		utils.Error(w, apperr.New(apperr.IO, "could not add the item to the cart"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateItem changes the quantity of an existing cart item. The total is
// fixed up incrementally: the item's old contribution is subtracted and
// the new one added, with the snapshotted unit price preserved.
func (cc *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone      string `json:"phone"`
		CartItemID string `json:"cartItemId"`
		Quantity   int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	phone := strings.TrimSpace(req.Phone)
	cartItemID := strings.TrimSpace(req.CartItemID)
	if len(phone) != 10 || len(cartItemID) != 20 || req.Quantity <= 0 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required data"))
		return
	}
	if err := cc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	unlock := cc.locks.Lock(phone)
	defer unlock()

	var cart models.Cart
	if err := cc.Store.Read("carts", phone, &cart); err != nil {
		utils.Error(w, apperr.New(apperr.NotFound, "could not retrieve content from specified cart"))
		return
	}
	if len(cart.Items) == 0 {
		utils.Error(w, apperr.New(apperr.Validation, "there are no items in the cart to update"))
		return
	}

	position := findCartItem(cart.Items, cartItemID)
	if position < 0 {
		utils.Error(w, apperr.New(apperr.NotFound, "the specified cartItemId is not in the cart"))
		return
	}

	item := &cart.Items[position]
	cart.TotalPrice += float64(req.Quantity)*item.UnitPrice - float64(item.Quantity)*item.UnitPrice
	item.Quantity = req.Quantity

	if err := cc.Store.Update("carts", phone, cart); err != nil {
		logrus.WithError(err).Error("failed to persist cart")
		utils.Error(w, apperr.New(apperr.IO, "could not update the cart item"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveItem deletes a cart item and subtracts its contribution from the
// running total.
func (cc *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone      string `json:"phone"`
		CartItemID string `json:"cartItemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	phone := strings.TrimSpace(req.Phone)
	cartItemID := strings.TrimSpace(req.CartItemID)
	if len(phone) != 10 || len(cartItemID) != 20 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required data"))
		return
	}
	if err := cc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	unlock := cc.locks.Lock(phone)
	defer unlock()

	var cart models.Cart
	if err := cc.Store.Read("carts", phone, &cart); err != nil {
		utils.Error(w, apperr.New(apperr.NotFound, "could not retrieve cart data"))
		return
	}
	if len(cart.Items) == 0 {
		utils.Error(w, apperr.New(apperr.Validation, "there are no items in the cart to remove"))
		return
	}

	position := findCartItem(cart.Items, cartItemID)
	if position < 0 {
		utils.Error(w, apperr.New(apperr.NotFound, "the cartItemId provided is not in the cart"))
		return
	}

	item := cart.Items[position]
	cart.TotalPrice -= float64(item.Quantity) * item.UnitPrice
	cart.Items = append(cart.Items[:position], cart.Items[position+1:]...)

	if err := cc.Store.Update("carts", phone, cart); err != nil {
		logrus.WithError(err).Error("failed to persist cart")
		utils.Error(w, apperr.New(apperr.IO, "could not remove the item from the cart"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Empty overwrites the cart with a fresh empty one, whether or not a cart
// record existed before.
func (cc *CartController) Empty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if len(phone) != 10 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required data"))
		return
	}
	if err := cc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	unlock := cc.locks.Lock(phone)
	defer unlock()

	if err := cc.writeCart(phone, false, models.NewCart()); err != nil {
		logrus.WithError(err).Error("failed to persist cart")
		utils.Error(w, apperr.New(apperr.IO, "could not empty the cart"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// readCart loads the cart for phone, or hands back a fresh empty cart and
// existed=false when the user has none yet.
func (cc *CartController) readCart(phone string) (*models.Cart, bool, error) {
	var cart models.Cart
	err := cc.Store.Read("carts", phone, &cart)
	if errors.Is(err, storage.ErrNotFound) {
		return models.NewCart(), false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &cart, true, nil
}

// writeCart persists the cart, creating the record when the caller knows
// it did not exist. The existed flag only short-circuits the common path;
// an update landing on a missing record still falls back to create.
func (cc *CartController) writeCart(phone string, existed bool, cart *models.Cart) error {
	if existed {
		return cc.Store.Update("carts", phone, cart)
	}
	err := cc.Store.Update("carts", phone, cart)
	if errors.Is(err, storage.ErrNotFound) {
		return cc.Store.Create("carts", phone, cart)
	}
	return err
}

// findCartItem returns the index of the item with the given id. Ids are
// unique within a cart; should duplicates ever appear, the last occurrence
// wins, matching a full scan that keeps overwriting the found position.
func findCartItem(items []models.CartItem, id string) int {
	position := -1
	for index := range items {
		if items[index].ID == id {
			position = index
		}
	}
	return position
}
