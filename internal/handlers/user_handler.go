package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Arman2205/Knowledge_Network/internal/config"
	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/internal/services"
	"github.com/Arman2205/Knowledge_Network/pkg/auth"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("RegisterUserHandler called")
	var body struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.WithError(err).Warn("Failed to decode user registration request")
		httperror.Write(w, httperror.NewBadRequest("invalid request payload"))
		return
	}

	createdUser, err := h.Service.RegisterUser(r.Context(), body.Email, body.Username, body.Password)
	if err != nil {
		log.WithError(err).Warn("Failed to register user")
		httperror.Write(w, err)
		return
	}

	log.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createdUser)
}

// LoginUserHandler handles user login.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("LoginUserHandler called")
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		httperror.Write(w, httperror.NewBadRequest("invalid request payload"))
		return
	}

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithFields(log.Fields{
			"email": credentials.Email,
			"error": err,
		}).Warn("Authentication failed")
		httperror.Write(w, err)
		return
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		httperror.Write(w, err)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// GetAllUsersHandler returns the flat list of all users.
func (h *UserHandler) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("GetAllUsersHandler called")

	users, err := h.Service.GetAllUsers(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to retrieve users")
		httperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// UpdateUserDetailsHandler handles updating a user's own profile.
func (h *UserHandler) UpdateUserDetailsHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("UpdateUserDetailsHandler called")
	targetID := mux.Vars(r)["id"]

	var details models.User
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		log.WithError(err).Warn("Failed to decode update request")
		httperror.Write(w, httperror.NewBadRequest("invalid request payload"))
		return
	}
	defer r.Body.Close()

	updatedUser, err := h.Service.UpdateUserDetails(r.Context(), authenticatedID(r), targetID, &details)
	if err != nil {
		log.WithFields(log.Fields{
			"userID": targetID,
			"error":  err,
		}).Warn("Failed to update user details")
		httperror.Write(w, err)
		return
	}

	log.WithField("userID", updatedUser.ID.Hex()).Info("User updated successfully")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updatedUser)
}

// AddFriendHandler appends the user addressed by the route to the
// authenticated user's friend set.
func (h *UserHandler) AddFriendHandler(w http.ResponseWriter, r *http.Request) {
	h.relationHandler(w, r, h.Service.AddFriend)
}

// RemoveFriendHandler removes the user addressed by the route from the
// authenticated user's friend set.
func (h *UserHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	h.relationHandler(w, r, h.Service.RemoveFriend)
}

// AddEnemyHandler appends the user addressed by the route to the
// authenticated user's enemy set.
func (h *UserHandler) AddEnemyHandler(w http.ResponseWriter, r *http.Request) {
	h.relationHandler(w, r, h.Service.AddEnemy)
}

// RemoveEnemyHandler removes the user addressed by the route from the
// authenticated user's enemy set.
func (h *UserHandler) RemoveEnemyHandler(w http.ResponseWriter, r *http.Request) {
	h.relationHandler(w, r, h.Service.RemoveEnemy)
}

func (h *UserHandler) relationHandler(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, authenticatedID, candidateID string) (*models.User, error)) {
	candidateID := mux.Vars(r)["id"]

	updatedUser, err := op(r.Context(), authenticatedID(r), candidateID)
	if err != nil {
		log.WithFields(log.Fields{
			"candidateID": candidateID,
			"error":       err,
		}).Warn("Failed to change relation")
		httperror.Write(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updatedUser)
}

// authenticatedID returns the id from the claims attached by the auth
// middleware, or "" when the request never passed authentication.
func authenticatedID(r *http.Request) string {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		return ""
	}
	return claims.UserID
}
