package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"go-pizzeria/apperr"
	"go-pizzeria/models"
	"go-pizzeria/storage"
	"go-pizzeria/utils"
)

const tokenTTL = time.Hour

// TokenController issues, verifies, extends, and revokes the opaque bearer
// tokens that gate every sensitive operation.
type TokenController struct {
	Store *storage.FileStore
}

func NewTokenController(store *storage.FileStore) *TokenController {
	return &TokenController{Store: store}
}

// Create handles login: it checks the supplied password against the stored
// digest and issues a token that expires one hour from now.
func (tc *TokenController) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	phone := strings.TrimSpace(req.Phone)
	password := strings.TrimSpace(req.Password)
	if len(phone) != 10 || password == "" {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field(s)"))
		return
	}

	var user models.User
	if err := tc.Store.Read("users", phone, &user); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, apperr.New(apperr.NotFound, "could not find the specified user"))
			return
		}
		logrus.WithError(err).Error("failed to look up user for login")
		utils.Error(w, apperr.New(apperr.IO, "could not create the token"))
		return
	}

	digest, err := utils.Hash(password)
	if err != nil || digest != user.HashedPassword {
		utils.Error(w, apperr.New(apperr.Validation, "password did not match the specified user's stored password"))
		return
	}

	token := models.Token{
		ID:      utils.NewID(),
		Phone:   phone,
		Expires: time.Now().Add(tokenTTL),
	}
	if err := tc.Store.Create("tokens", token.ID, token); err != nil {
		logrus.WithError(err).Error("failed to persist token")
		utils.Error(w, apperr.New(apperr.IO, "could not create the token"))
		return
	}

	utils.JSON(w, http.StatusOK, token)
}

// Get returns the token record for the id in the query string.
func (tc *TokenController) Get(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if len(id) != 20 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}

	var token models.Token
	if err := tc.Store.Read("tokens", id, &token); err != nil {
		utils.Error(w, apperr.New(apperr.NotFound, "specified token does not exist"))
		return
	}
	utils.JSON(w, http.StatusOK, token)
}

// Extend slides an unexpired token's expiry one hour into the future. An
// already expired token cannot be extended.
func (tc *TokenController) Extend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     string `json:"id"`
		Extend bool   `json:"extend"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	id := strings.TrimSpace(req.ID)
	if len(id) != 20 || !req.Extend {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field(s)"))
		return
	}

	var token models.Token
	if err := tc.Store.Read("tokens", id, &token); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, apperr.New(apperr.NotFound, "specified token does not exist"))
			return
		}
		logrus.WithError(err).Error("failed to read token for extension")
		utils.Error(w, apperr.New(apperr.IO, "could not update the token's expiration"))
		return
	}

	if token.Expired() {
		utils.Error(w, apperr.New(apperr.Validation, "token has already expired and cannot be extended"))
		return
	}

	token.Expires = time.Now().Add(tokenTTL)
	if err := tc.Store.Update("tokens", id, token); err != nil {
		logrus.WithError(err).Error("failed to persist extended token")
		utils.Error(w, apperr.New(apperr.IO, "could not update the token's expiration"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete revokes a token by removing its record.
func (tc *TokenController) Delete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if len(id) != 20 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}

	if err := tc.Store.Delete("tokens", id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, apperr.New(apperr.NotFound, "could not find the specified token"))
			return
		}
		logrus.WithError(err).Error("failed to delete token")
		utils.Error(w, apperr.New(apperr.IO, "could not delete the specified token"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Verify reports whether the token exists, belongs to the given phone, and
// has not expired. Every failure path is false; it never errors and never
// mutates state, so callers can use it freely as an authorization gate.
func (tc *TokenController) Verify(id, phone string) bool {
	var token models.Token
	if err := tc.Store.Read("tokens", id, &token); err != nil {
		return false
	}
	return token.Phone == phone && !token.Expired()
}

// authorize checks the token header of a request against the target phone.
func (tc *TokenController) authorize(r *http.Request, phone string) error {
	if !tc.Verify(r.Header.Get("token"), phone) {
		return apperr.New(apperr.Unauthorized, "missing required token in header, or token is invalid")
	}
	return nil
}
