package controllers

import (
	"encoding/json"
	"net/http"

	"pressroom/app/models"
	"pressroom/app/services"

	"github.com/gorilla/mux"
)

// UserController handles HTTP requests for users
type UserController struct {
	userService *services.UserService
}

// NewUserController creates a new UserController
func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService}
}

// Index handles listing all users
func (uc *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := uc.userService.ListUsers()
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	sendJSON(w, http.StatusOK, users)
}

// Show handles fetching a single user
func (uc *UserController) Show(w http.ResponseWriter, r *http.Request) {
	user, err := uc.userService.GetUser(mux.Vars(r)["id"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// Create handles creating a new user
func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.CreateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := uc.userService.CreateUser(&in)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, user)
}

// Edit handles updating an existing user
func (uc *UserController) Edit(w http.ResponseWriter, r *http.Request) {
	var in models.UpdateUserInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := uc.userService.UpdateUser(mux.Vars(r)["id"], &in)
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// Delete handles deleting a user and everything they authored
func (uc *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := uc.userService.DeleteUser(mux.Vars(r)["id"])
	if err != nil {
		sendServiceError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, user)
}
