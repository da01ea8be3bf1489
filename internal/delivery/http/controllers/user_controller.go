package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventease/internal/delivery/http/helpers"
	"eventease/internal/domain"
)

// CreateUserRequest is the request body for the admin POST /users endpoint.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Validate implements Validator.
func (u CreateUserRequest) Validate() []string {
	var errs []string
	email := strings.TrimSpace(strings.ToLower(u.Email))
	if email == "" {
		errs = append(errs, "email is required")
	} else if !emailRegexp.MatchString(email) {
		errs = append(errs, "invalid email format")
	}
	if u.Password == "" {
		errs = append(errs, "password is required")
	} else if len(u.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if strings.TrimSpace(u.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if !domain.ValidRole(domain.Role(u.Role)) {
		errs = append(errs, "role must be \"admin\", \"staff\", or \"event_owner\"")
	}
	return errs
}

// UpdateUserRequest is the request body for the admin PATCH /users/{userID}
// endpoint. Only the provided fields are changed.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Role      *string `json:"role"`
}

// Validate implements Validator.
func (u UpdateUserRequest) Validate() []string {
	var errs []string
	if u.Email != nil && !emailRegexp.MatchString(strings.TrimSpace(strings.ToLower(*u.Email))) {
		errs = append(errs, "invalid email format")
	}
	if u.FirstName != nil && strings.TrimSpace(*u.FirstName) == "" {
		errs = append(errs, "first_name cannot be empty")
	}
	if u.Role != nil && !domain.ValidRole(domain.Role(*u.Role)) {
		errs = append(errs, "role must be \"admin\", \"staff\", or \"event_owner\"")
	}
	return errs
}

type UserController struct {
	Logger  *slog.Logger
	Service domain.UserService
}

func NewUserController(logger *slog.Logger, svc domain.UserService) *UserController {
	return &UserController{
		Logger:  logger,
		Service: svc,
	}
}

// List godoc
// @Summary List users
// @Description Returns all user profiles newest first, each with its created event count. Optional role filter. Admin or staff only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param role query string false "Filter by role (admin, staff, or event_owner)"
// @Success 200 {object} helpers.APIResponse "data contains an array of users"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users [get]
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	var (
		users []*domain.UserWithStats
		err   error
	)
	if role := r.URL.Query().Get("role"); role != "" {
		users, err = c.Service.ListUsersByRole(r.Context(), domain.Role(role))
	} else {
		users, err = c.Service.ListUsers(r.Context())
	}
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to list users")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, users)
}

// Get godoc
// @Summary Get a user
// @Description Returns one user profile with its created event count. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse "data contains the user"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [get]
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	user, err := c.Service.GetUser(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to get user")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// Create godoc
// @Summary Create a user
// @Description Creates a user with an explicit role. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateUserRequest true "User data"
// @Success 201 {object} helpers.APIResponse "data contains the created user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Router /users [post]
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.CreateUser(r.Context(), domain.CreateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
		Password:  req.Password,
	})
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to create user")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Update godoc
// @Summary Update a user
// @Description Partially updates a user's profile or role. Admin only.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param body body UpdateUserRequest true "Fields to change"
// @Success 200 {object} helpers.APIResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email already in use)"
// @Router /users/{userID} [patch]
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	var role *domain.Role
	if req.Role != nil {
		v := domain.Role(*req.Role)
		role = &v
	}
	user, err := c.Service.UpdateUser(r.Context(), r.PathValue("userID"), domain.UpdateUserInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	})
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to update user")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete a user
// @Description Removes the user's identity and profile. Their events and RSVPs are left in place. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /users/{userID} [delete]
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteUser(r.Context(), r.PathValue("userID")); err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to delete user")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"message": "user deleted"})
}

// Stats godoc
// @Summary Get system-wide user stats
// @Description Returns total user count, per-role counts, and the count of users created in the last 7 days. Admin only.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the stats"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /users/stats [get]
func (c *UserController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.SystemStats(r.Context())
	if err != nil {
		writeDomainError(w, r.Context(), c.Logger, err, "failed to get user stats")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
