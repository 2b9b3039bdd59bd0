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

// UserController handles account creation and the token-gated lookup,
// update, and deletion of user records.
type UserController struct {
	Store  *storage.FileStore
	Tokens *TokenController
	Email  *utils.EmailService
}

func NewUserController(store *storage.FileStore, tokens *TokenController, email *utils.EmailService) *UserController {
	return &UserController{Store: store, Tokens: tokens, Email: email}
}

// Register creates a new account. The phone number is the primary key; the
// password is hashed before it is stored and the plaintext never persisted.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		Phone        string `json:"phone"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		TOSAgreement bool   `json:"tosAgreement"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	phone := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)

	if firstName == "" || lastName == "" || len(phone) != 10 || !validEmail(email) || password == "" || !req.TOSAgreement {
		utils.Error(w, apperr.New(apperr.Validation, "missing required fields"))
		return
	}

	hashedPassword, err := utils.Hash(password)
	if err != nil {
		utils.Error(w, apperr.New(apperr.IO, "could not hash the user's password"))
		return
	}

	user := models.User{
		FirstName:      firstName,
		LastName:       lastName,
		Phone:          phone,
		Email:          email,
		HashedPassword: hashedPassword,
		TOSAgreement:   true,
	}
	if err := uc.Store.Create("users", phone, user); err != nil {
		if errors.Is(err, storage.ErrExists) {
			utils.Error(w, apperr.New(apperr.AlreadyExists, "a user with this phone number already exists"))
			return
		}
		logrus.WithError(err).Error("failed to persist user")
		utils.Error(w, apperr.New(apperr.IO, "could not create the new user"))
		return
	}

	if uc.Email != nil {
		go func() {
			if err := uc.Email.SendWelcomeEmail(email, firstName); err != nil {
				logrus.WithError(err).Warn("failed to send welcome email")
			}
		}()
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get returns the user record for the phone in the query string, with the
// hashed password stripped before it leaves the trust boundary.
func (uc *UserController) Get(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if len(phone) != 10 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}
	if err := uc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	var user models.User
	if err := uc.Store.Read("users", phone, &user); err != nil {
		utils.Error(w, apperr.New(apperr.NotFound, "could not find the specified user"))
		return
	}
	user.HashedPassword = ""
	utils.JSON(w, http.StatusOK, user)
}

// Update applies whichever optional fields were supplied to an existing
// user. At least one of firstName, lastName, email, or password must be
// present; a new password is re-hashed before storing.
func (uc *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone     string `json:"phone"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, apperr.New(apperr.Validation, "invalid request body"))
		return
	}

	phone := strings.TrimSpace(req.Phone)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := strings.TrimSpace(req.Email)
	password := strings.TrimSpace(req.Password)

	if len(phone) != 10 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}
	if email != "" && !validEmail(email) {
		utils.Error(w, apperr.New(apperr.Validation, "invalid email address"))
		return
	}
	if firstName == "" && lastName == "" && email == "" && password == "" {
		utils.Error(w, apperr.New(apperr.Validation, "missing fields to update"))
		return
	}
	if err := uc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	var user models.User
	if err := uc.Store.Read("users", phone, &user); err != nil {
		utils.Error(w, apperr.New(apperr.NotFound, "the specified user does not exist"))
		return
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		hashedPassword, err := utils.Hash(password)
		if err != nil {
			utils.Error(w, apperr.New(apperr.IO, "could not hash the user's password"))
			return
		}
		user.HashedPassword = hashedPassword
	}

	if err := uc.Store.Update("users", phone, user); err != nil {
		logrus.WithError(err).Error("failed to persist user update")
		utils.Error(w, apperr.New(apperr.IO, "unable to update user"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes the user record.
// TODO: clean up the deleted user's tokens and cart record as well.
func (uc *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	phone := strings.TrimSpace(r.URL.Query().Get("phone"))
	if len(phone) != 10 {
		utils.Error(w, apperr.New(apperr.Validation, "missing required field"))
		return
	}
	if err := uc.Tokens.authorize(r, phone); err != nil {
		utils.Error(w, err)
		return
	}

	if err := uc.Store.Delete("users", phone); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			utils.Error(w, apperr.New(apperr.NotFound, "could not find the specified user"))
			return
		}
		logrus.WithError(err).Error("failed to delete user")
		utils.Error(w, apperr.New(apperr.IO, "could not delete the specified user"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validEmail requires an @ that is neither leading nor in the final two
// positions, matching the registration rules used everywhere else.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at >= 1 && at < len(email)-2
}
