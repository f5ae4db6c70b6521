package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront.dev/app/internal/http/middleware"
	"shopfront.dev/app/internal/modules/users"
	"shopfront.dev/app/internal/shared/apperr"
)

type UserInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

type UsersHandler struct {
	svc *users.Service
}

func NewUsersHandler(svc *users.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

func (h *UsersHandler) Create(c *gin.Context) {
	var in UserInput
	if !bindJSON(c, &in) {
		return
	}
	u, err := h.svc.Create(c.Request.Context(), in.Email, in.Password)
	switch {
	case errors.Is(err, users.ErrEmailTaken):
		middleware.Fail(c, apperr.ConflictErr("Email already registered"))
		return
	case err != nil:
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, UserResponse{ID: u.ID, Email: u.Email})
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.svc.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, users.ErrNotFound):
		middleware.Fail(c, apperr.NotFoundErr("User not found"))
		return
	case err != nil:
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, UserResponse{ID: u.ID, Email: u.Email})
}
