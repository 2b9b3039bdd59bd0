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

// MenuController handles the menu catalog. Item descriptions are unique
// across the whole menu, checked by a linear scan on every create and on
// every description change.
type MenuController struct {
	Store *storage.FileStore
}

func NewMenuController(store *storage.FileStore) *MenuController {
	return &MenuController{Store: store}
}

// Create adds a new menu item with a fresh id.
func (mc *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	description := strings.TrimSpace(req.Description)
	if description == "" || req.Price <= 0 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field(s)"))
		return
	}

	taken, err := mc.descriptionExists(description, "")
	if err != nil {
		logrus.WithError(err).Error("failed to scan menu for duplicate descriptions")
		utils.Error(w, apperr.New(apperr.IO, "could not create the menu item"))
		return
	}
	if taken {
		utils.Error(w, apperr.New(apperr.Conflict, "a menu item with this description already exists"))
		return
	}

	item := models.MenuItem{
		ID:          utils.NewID(),
		Description: description,
		Price:       req.Price,
	}
	if err := mc.Store.Create("menu", item.ID, item); err != nil {
		logrus.WithError(err).Error("failed to persist menu item")
		utils.Error(w, apperr.New(apperr.IO, "could not create the menu item"))
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// Get returns a single item when an id is supplied, otherwise the whole
// catalog as an id -> item map.
func (mc *MenuController) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		menu, err := mc.buildMenu()
		if err != nil {
			logrus.WithError(err).Error("failed to assemble menu")
			utils.Error(w, apperr.New(apperr.IO, "could not assemble the menu"))
			return
		}
		utils.JSON(w, http.StatusOK, menu)
		return
	}

	if len(id) != 20 {
		utils.Error(w, apperr.New(apperr.Validation, "missing valid id in query string"))
		return
	}

	var item models.MenuItem
	if err := mc.Store.Read("menu", id, &item); err != nil {
		utils.Error(w, apperr.New(apperr.NotFound, "could not find the specified menu item"))
		return
	}
	utils.JSON(w, http.StatusOK, item)
}

// Update changes an item's description and/or price. A supplied value
// equal to the current one counts as no change; if nothing remains after
// filtering no-ops the request fails. A description colliding with a
// different item is rejected.
func (mc *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          string  `json:"id"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	id := strings.TrimSpace(req.ID)
	if len(id) != 20 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}

	var item models.MenuItem
	if err := mc.Store.Read("menu", id, &item); err != nil {
		utils.Error(w, apperr.New(apperr.NotFound, "could not find the specified menu item"))
		return
	}

	description := strings.TrimSpace(req.Description)
	price := req.Price
	if price == item.Price {
		price = 0
	}
	if description == item.Description {
		description = ""
	}
	if description != "" {
		taken, err := mc.descriptionExists(description, id)
		if err != nil {
			logrus.WithError(err).Error("failed to scan menu for duplicate descriptions")
			utils.Error(w, apperr.New(apperr.IO, "could not update the menu item"))
			return
		}
		if taken {
			utils.Error(w, apperr.New(apperr.Conflict, "a menu item with this description already exists"))
			return
		}
	}

	if description == "" && price <= 0 {
		utils.Error(w, apperr.New(apperr.Validation, "no valid or modified data to update"))
		return
	}

	if description != "" {
		item.Description = description
	}
	if price > 0 {
		item.Price = price
	}

	if err := mc.Store.Update("menu", id, item); err != nil {
		logrus.WithError(err).Error("failed to persist menu item update")
		utils.Error(w, apperr.New(apperr.IO, "could not update the menu item"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a menu item. Carts holding the item keep their snapshot
// of its price; references are not cleaned up.
func (mc *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if len(id) != 20 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}

	if err := mc.Store.Delete("menu", id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, apperr.New(apperr.NotFound, "could not find the specified menu item"))
			return
		}
		logrus.WithError(err).Error("failed to delete menu item")
		utils.Error(w, apperr.New(apperr.IO, "could not delete the specified menu item"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// descriptionExists scans every item in the catalog for a matching
// description, skipping the item identified by excludeID.
func (mc *MenuController) descriptionExists(description, excludeID string) (bool, error) {
	ids, err := mc.Store.List("menu")
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == excludeID {
			continue
		}
		var item models.MenuItem
		if err := mc.Store.Read("menu", id, &item); err != nil {
			continue
		}
		if item.Description == description {
			return true, nil
		}
	}
	return false, nil
}

// buildMenu assembles the full catalog by reading every listed item.
func (mc *MenuController) buildMenu() (map[string]models.MenuItem, error) {
	ids, err := mc.Store.List("menu")
	if err != nil {
		return nil, err
	}
	menu := make(map[string]models.MenuItem, len(ids))
	for _, id := range ids {
		var item models.MenuItem
		if err := mc.Store.Read("menu", id, &item); err != nil {
			continue
		}
		menu[item.ID] = item
	}
	return menu, nil
}
