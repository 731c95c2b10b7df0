// Package http exposes the user-management API over HTTP. Handlers do
// boundary validation and shape mapping only; every operation is executed
// by a durable workflow behind the dispatch layer.
package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ahrav/go-userflow/internal/domain"
)

// UserDispatcher is the dispatch-layer contract the handlers depend on:
// the four logical operations, each returning a structured outcome or an
// engine-level failure.
type UserDispatcher interface {
	CreateUser(ctx context.Context, in domain.CreateUserInput) (*domain.CreateUserResult, error)
	UpdateUser(ctx context.Context, id int64, in domain.UpdateUserInput) (*domain.UpdateUserResult, error)
	GetUser(ctx context.Context, id int64) (*domain.GetUserResult, error)
	ListUsers(ctx context.Context, in domain.ListUsersInput) (*domain.ListUsersResult, error)
}

// UserHandlers handles user HTTP requests.
type UserHandlers struct {
	dispatcher UserDispatcher
	log        *zap.SugaredLogger
}

// NewUserHandlers creates handlers over a dispatcher.
func NewUserHandlers(d UserDispatcher, log *zap.SugaredLogger) *UserHandlers {
	return &UserHandlers{dispatcher: d, log: log}
}

// CreateRequest is the create payload accepted at the HTTP boundary.
type CreateRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Mobile string `json:"mobile" binding:"required"`
}

// UpdateRequest is a partial update; absent fields stay untouched.
type UpdateRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty" binding:"omitempty,email"`
	Mobile        *string `json:"mobile,omitempty"`
	SuspendStatus *bool   `json:"suspend_status,omitempty"`
}

// Create handles POST /users.
func (h *UserHandlers) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.dispatcher.CreateUser(c.Request.Context(), domain.CreateUserInput{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
	})
	if err != nil {
		h.fail(c, "create user", err)
		return
	}
	c.JSON(result.Code, result)
}

// Update handles PATCH /users/:id.
func (h *UserHandlers) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.dispatcher.UpdateUser(c.Request.Context(), id, domain.UpdateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		Mobile:        req.Mobile,
		SuspendStatus: req.SuspendStatus,
	})
	if err != nil {
		h.fail(c, "update user", err)
		return
	}
	c.JSON(result.Code, result)
}

// Get handles GET /users/:id.
func (h *UserHandlers) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.dispatcher.GetUser(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get user", err)
		return
	}
	c.JSON(result.Code, result)
}

// List handles GET /users with optional limit/offset query parameters.
func (h *UserHandlers) List(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
		return
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be an integer"})
		return
	}

	result, derr := h.dispatcher.ListUsers(c.Request.Context(), domain.ListUsersInput{Limit: limit, Offset: offset})
	if derr != nil {
		h.fail(c, "list users", derr)
		return
	}
	c.JSON(result.Code, result)
}

// pathID parses the :id path parameter, responding 400 on garbage.
func (h *UserHandlers) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// fail reports an engine-level failure. Business outcomes never take
// this path; their status codes travel inside the workflow results.
func (h *UserHandlers) fail(c *gin.Context, op string, err error) {
	h.log.Errorw("operation failed", "operation", op, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation could not be completed"})
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
