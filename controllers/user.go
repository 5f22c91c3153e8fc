package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"flowerhub/middleware"
	"flowerhub/models"
	"flowerhub/services"
	"flowerhub/store"
	"flowerhub/utils"
)

// IdentityService is the identity collaborator consumed by the HTTP layer.
type IdentityService interface {
	Login(ctx context.Context, email, password string) (models.User, error)
	Signup(ctx context.Context, name, email, password string) (models.User, error)
	GetCurrentUser(ctx context.Context, userID, email string) (models.User, error)
	UpdateProfile(ctx context.Context, userID, name, email string) error
}

// Mailer sends account-related mail.
type Mailer interface {
	SendWelcomeEmail(toEmail, name string) error
	SendOrderConfirmationEmail(toEmail string, order models.Order) error
}

// UserController handles user-related requests
type UserController struct {
	Identity IdentityService
	Manager  *store.Manager
	Email    Mailer
}

// NewUserController creates a new UserController
func NewUserController(identity IdentityService, manager *store.Manager, email Mailer) *UserController {
	return &UserController{Identity: identity, Manager: manager, Email: email}
}

// authResponse is returned by signup and login.
type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Register handles user signup
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Identity.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			http.Error(w, "User already exists", http.StatusBadRequest)
			return
		}
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	go func(email, name string) {
		if err := uc.Email.SendWelcomeEmail(email, name); err != nil {
			utils.Logger.Warnw("failed to send welcome email", "to", email, "error", err)
		}
	}(user.Email, user.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(authResponse{Token: token, User: user})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Identity.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "Error logging in", http.StatusInternalServerError)
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	uc.Manager.Session(user.ID).SetUser(&user)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(authResponse{Token: token, User: user})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Could not parse user from context", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Identity.GetCurrentUser(ctx, claims.UserID, claims.Email)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// UpdateProfile changes the authenticated user's name and email
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" {
		http.Error(w, "Name and email are required", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.Identity.UpdateProfile(ctx, claims.UserID, req.Name, req.Email); err != nil {
		http.Error(w, "Error updating profile", http.StatusInternalServerError)
		return
	}

	uc.Manager.Session(claims.UserID).SetUser(&models.User{
		ID:    claims.UserID,
		Name:  req.Name,
		Email: req.Email,
		Role:  claims.Role,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated"})
}

// Logout drops the user's in-memory session. The cart snapshot stays
// persisted and is restored on the next login.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.UserContextKey).(*utils.Claims)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	uc.Manager.Drop(claims.UserID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Logged out"})
}
