package controllers

import (
	"net/http"
	"testing"

	"go-pizzeria/models"
	"go-pizzeria/utils"
)

func TestCreateMenuItem(t *testing.T) {
	env := newTestEnv()

	item := env.createMenuItem(t, "Burger", 9.5)
	if len(item.ID) != 20 {
		t.Errorf("expected 20-char id, got %q", item.ID)
	}
	if item.Description != "Burger" || item.Price != 9.5 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestCreateMenuItem_DuplicateDescription(t *testing.T) {
	env := newTestEnv()
	env.createMenuItem(t, "Burger", 9.5)

	w := do(t, env.menu.Create, http.MethodPost, "/menu", map[string]interface{}{
		"description": "Burger",
		"price":       11.0,
	}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for a duplicate description, got %d", w.Code)
	}

	// A distinct description still goes through
	env.createMenuItem(t, "Fries", 3.25)
}

func TestCreateMenuItem_Validation(t *testing.T) {
	env := newTestEnv()

	w := do(t, env.menu.Create, http.MethodPost, "/menu", map[string]interface{}{
		"description": "Freebie",
		"price":       0,
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-positive price, got %d", w.Code)
	}

	w = do(t, env.menu.Create, http.MethodPost, "/menu", map[string]interface{}{
		"description": "  ",
		"price":       5.0,
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a blank description, got %d", w.Code)
	}
}

func TestGetMenu_FullCatalog(t *testing.T) {
	env := newTestEnv()
	burger := env.createMenuItem(t, "Burger", 9.5)
	fries := env.createMenuItem(t, "Fries", 3.25)

	w := do(t, env.menu.Get, http.MethodGet, "/menu", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var menu map[string]models.MenuItem
	decodeBody(t, w, &menu)
	if len(menu) != 2 {
		t.Fatalf("expected 2 items in the catalog, got %d", len(menu))
	}
	if menu[burger.ID].Description != "Burger" {
		t.Errorf("expected Burger under its id, got %+v", menu[burger.ID])
	}
	if menu[fries.ID].Price != 3.25 {
		t.Errorf("expected Fries at 3.25, got %v", menu[fries.ID].Price)
	}
}

func TestGetMenu_ByID(t *testing.T) {
	env := newTestEnv()
	burger := env.createMenuItem(t, "Burger", 9.5)

	w := do(t, env.menu.Get, http.MethodGet, "/menu?id="+burger.ID, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var item models.MenuItem
	decodeBody(t, w, &item)
	if item.ID != burger.ID {
		t.Errorf("expected item %s, got %s", burger.ID, item.ID)
	}

	w = do(t, env.menu.Get, http.MethodGet, "/menu?id="+utils.NewID(), nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown id, got %d", w.Code)
	}
}

func TestUpdateMenuItem_PriceOnly(t *testing.T) {
	env := newTestEnv()
	burger := env.createMenuItem(t, "Burger", 9.5)

	w := do(t, env.menu.Update, http.MethodPut, "/menu", map[string]interface{}{
		"id":    burger.ID,
		"price": 10.5,
	}, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	var item models.MenuItem
	if err := env.store.Read("menu", burger.ID, &item); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Price != 10.5 {
		t.Errorf("expected price 10.5, got %v", item.Price)
	}
	if item.Description != "Burger" {
		t.Errorf("expected untouched description, got %s", item.Description)
	}
}

func TestUpdateMenuItem_NoChange(t *testing.T) {
	env := newTestEnv()
	burger := env.createMenuItem(t, "Burger", 9.5)

	// Both fields equal to the current values count as nothing to update
	w := do(t, env.menu.Update, http.MethodPut, "/menu", map[string]interface{}{
		"id":          burger.ID,
		"description": "Burger",
		"price":       9.5,
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a no-op update, got %d", w.Code)
	}
}

func TestUpdateMenuItem_DescriptionCollision(t *testing.T) {
	env := newTestEnv()
	env.createMenuItem(t, "Burger", 9.5)
	fries := env.createMenuItem(t, "Fries", 3.25)

	w := do(t, env.menu.Update, http.MethodPut, "/menu", map[string]interface{}{
		"id":          fries.ID,
		"description": "Burger",
	}, "")
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 renaming onto another item's description, got %d", w.Code)
	}
}

func TestUpdateMenuItem_Unknown(t *testing.T) {
	env := newTestEnv()

	w := do(t, env.menu.Update, http.MethodPut, "/menu", map[string]interface{}{
		"id":    utils.NewID(),
		"price": 4.0,
	}, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown item, got %d", w.Code)
	}
}

func TestDeleteMenuItem(t *testing.T) {
	env := newTestEnv()
	burger := env.createMenuItem(t, "Burger", 9.5)

	w := do(t, env.menu.Delete, http.MethodDelete, "/menu?id="+burger.ID, nil, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, env.menu.Get, http.MethodGet, "/menu?id="+burger.ID, nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}
