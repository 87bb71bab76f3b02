package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaiwenlim/fintrack-be/internal/auth"
	"github.com/kaiwenlim/fintrack-be/internal/http/respond"
	"github.com/kaiwenlim/fintrack-be/internal/models"
	"github.com/kaiwenlim/fintrack-be/internal/models/dto"
	"github.com/kaiwenlim/fintrack-be/internal/storage"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthHandler owns the public register/login endpoints.
type AuthHandler struct {
	users  storage.UserStore
	tokens *auth.TokenManager
	log    *logrus.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users storage.UserStore, tokens *auth.TokenManager, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, log: log}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/register", h.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/login", h.handleLogin).Methods(http.MethodPost)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if err := validateRegistration(req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	// bcrypt embeds a per-hash random salt.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		PasswordHash: string(passwordHash),
	}
	created, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			respond.Error(w, http.StatusBadRequest, "email already registered")
		default:
			h.log.WithError(err).Error("create user failed")
			respond.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.log.WithField("email", created.Email).Info("user registered")
	respond.JSON(w, http.StatusCreated, "user created successfully", created)
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		respond.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if !emailPattern.MatchString(email) {
		respond.Error(w, http.StatusBadRequest, "invalid email format")
		return
	}

	// Unknown email and wrong password both produce the same answer.
	user, err := h.users.FindUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.WithError(err).Error("fetch user failed")
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	h.log.WithField("email", user.Email).Info("user logged in")
	respond.JSON(w, http.StatusOK, "login successful", dto.LoginResponse{Token: token, User: user})
}

func validateRegistration(req dto.RegisterRequest) error {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		return errors.New("name, email, and password are required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(req.Email)) {
		return errors.New("invalid email format")
	}
	return nil
}
