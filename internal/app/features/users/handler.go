// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	userstore "github.com/dalemusser/waygo/internal/app/store/users"
	"github.com/dalemusser/waygo/internal/app/system/httpjson"
	"github.com/dalemusser/waygo/internal/app/system/inputval"
	"github.com/dalemusser/waygo/internal/app/system/timeouts"
	"github.com/dalemusser/waygo/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Store is the user repository surface the handlers use.
type Store interface {
	List(ctx context.Context) ([]models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByID(ctx context.Context, hexID string) (*models.User, error)
	Exists(ctx context.Context, email string) (bool, *models.User, error)
	Register(ctx context.Context, u models.User) (models.User, error)
	Reconcile(ctx context.Context, in models.User) (models.User, userstore.ReconcileOutcome, error)
	PatchByUID(ctx context.Context, uid string, fields map[string]any) (models.User, error)
	PatchRoleByEmail(ctx context.Context, email string, p userstore.RolePatch) (models.User, error)
}

type Handler struct {
	Users Store
	Log   *zap.Logger
}

func NewHandler(users Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// userResult is the envelope for endpoints that return one user.
type userResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type checkResult struct {
	Success bool         `json:"success"`
	Exists  bool         `json:"exists"`
	User    *models.User `json:"user"`
}

// registerRequest mirrors the fields Register requires.
type registerRequest struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name" validate:"required"`
	UID   string `json:"uid" validate:"required"`
}

type upsertRequest struct {
	Email       string `json:"email" validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
}

type rolePatchRequest struct {
	Role        *string `json:"role"`
	Name        *string `json:"name"`
	DisplayName *string `json:"displayName"`
}

// param returns a path parameter, percent-decoded when possible.
func param(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if u, err := url.PathUnescape(v); err == nil {
		return u
	}
	return v
}

// ServeList handles GET /users.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users")
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch users")
		return
	}
	httpjson.Write(w, http.StatusOK, users)
}

// ServeDebugList handles GET /test/users, a development listing with a
// count. It is only mounted outside production.
func (h *Handler) ServeDebugList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list users (debug)")
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to fetch users")
		return
	}
	httpjson.Write(w, http.StatusOK, debugListResult{Success: true, Count: len(users), Users: users})
}

type debugListResult struct {
	Success bool          `json:"success"`
	Count   int           `json:"count"`
	Users   []models.User `json:"users"`
}

// ServeByEmail handles GET /users/{email}. A miss is 200 with a null body.
func (h *Handler) ServeByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user by email")
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, param(r, "email"))
	if errors.Is(err, userstore.ErrUserNotFound) {
		httpjson.Write(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch user")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// ServeByUID handles GET /users/uid/{uid}.
func (h *Handler) ServeByUID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user by uid")
	defer cancel()

	u, err := h.Users.GetByUID(ctx, param(r, "uid"))
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch user")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// ServeByID handles GET /users/id/{id}.
func (h *Handler) ServeByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get user by id")
	defer cancel()

	u, err := h.Users.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		httpjson.FailLookup(w, h.Log, err, "Failed to fetch user")
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// ServeCheck handles GET /users/check/{email}.
func (h *Handler) ServeCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "check user")
	defer cancel()

	ok, u, err := h.Users.Exists(ctx, param(r, "email"))
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to check user")
		return
	}
	httpjson.Write(w, http.StatusOK, checkResult{Success: true, Exists: ok, User: u})
}

// ServeRegister handles POST /users/register.
//
//	201 {success:true, user}         created
//	200 {success:false, message}     email or uid already registered
//	400 {success:false, message}     email, name or uid missing
func (h *Handler) ServeRegister(w http.ResponseWriter, r *http.Request) {
	var in models.User
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to create user")
		return
	}
	if err := inputval.Struct(registerRequest{Email: in.Email, Name: in.Name, UID: in.UID}); err != nil {
		httpjson.Fail(w, h.Log, userstore.ErrMissingRegistration, "Failed to create user")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "register user")
	defer cancel()

	u, err := h.Users.Register(ctx, in)
	switch {
	case errors.Is(err, userstore.ErrAlreadyExists):
		httpjson.Write(w, http.StatusOK, userResult{Success: false, Message: "User already exists"})
		return
	case err != nil:
		httpjson.Fail(w, h.Log, err, "Failed to create user")
		return
	}

	h.Log.Info("user registered", zap.String("uid", u.UID), zap.String("email", u.Email))
	httpjson.Write(w, http.StatusCreated, userResult{Success: true, Message: "User created successfully", User: &u})
}

// ServeUpsert handles PUT /user, the legacy create-or-reconcile route.
func (h *Handler) ServeUpsert(w http.ResponseWriter, r *http.Request) {
	var in models.User
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to process user")
		return
	}
	if err := inputval.Struct(upsertRequest{Email: in.Email, DisplayName: in.DisplayName}); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to process user")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "upsert user")
	defer cancel()

	u, outcome, err := h.Users.Reconcile(ctx, in)
	if errors.Is(err, userstore.ErrAlreadyExists) {
		httpjson.Write(w, http.StatusOK, userResult{Success: false, Message: "User already exists"})
		return
	}
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to process user")
		return
	}

	msg := "User created/updated successfully"
	switch outcome {
	case userstore.StatusUpdated:
		msg = "User status updated"
	case userstore.Unchanged:
		msg = "User already exists"
	}
	httpjson.Write(w, http.StatusOK, userResult{Success: true, Message: msg, User: &u})
}

// ServePatchByUID handles PATCH /users/uid/{uid}.
func (h *Handler) ServePatchByUID(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := httpjson.Decode(w, r, &fields); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update user")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "patch user")
	defer cancel()

	u, err := h.Users.PatchByUID(ctx, param(r, "uid"), fields)
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update user")
		return
	}
	httpjson.Write(w, http.StatusOK, userResult{Success: true, Message: "User updated successfully", User: &u})
}

// ServePatchRole handles PATCH /users/{email}.
func (h *Handler) ServePatchRole(w http.ResponseWriter, r *http.Request) {
	var in rolePatchRequest
	if err := httpjson.Decode(w, r, &in); err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update user")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "patch user role")
	defer cancel()

	email := param(r, "email")
	u, err := h.Users.PatchRoleByEmail(ctx, email, userstore.RolePatch{
		Role:        in.Role,
		Name:        in.Name,
		DisplayName: in.DisplayName,
	})
	if err != nil {
		httpjson.Fail(w, h.Log, err, "Failed to update user")
		return
	}
	h.Log.Info("user role updated", zap.String("email", email), zap.String("role", u.Role))
	httpjson.Write(w, http.StatusOK, userResult{Success: true, Message: "User updated successfully", User: &u})
}
