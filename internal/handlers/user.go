package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/veljkom/meetlite-api/internal/middleware"
	"github.com/veljkom/meetlite-api/internal/models"
	"github.com/veljkom/meetlite-api/internal/services"
	"github.com/veljkom/meetlite-api/pkg/dto"
)

type UserHandler struct {
	users UserServiceInterface
}

func NewUserHandler(users UserServiceInterface) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Get(c *drift.Context) {
	if middleware.GetUserID(c) == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	user, err := h.users.GetByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.NotFound("user not found")
			return
		}
		c.InternalServerError("failed to load user")
		return
	}

	c.JSON(200, userResponse(user))
}

func (h *UserHandler) Update(c *drift.Context) {
	if middleware.GetUserID(c) == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name != nil && *req.Name == "" {
		c.BadRequest("name cannot be empty")
		return
	}

	user, err := h.users.Update(context.Background(), id, services.UserUpdate{
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.NotFound("user not found")
			return
		}
		c.InternalServerError("failed to update user")
		return
	}

	c.JSON(200, userResponse(user))
}

func (h *UserHandler) Delete(c *drift.Context) {
	if middleware.GetUserID(c) == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	if err := h.users.Delete(context.Background(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.NotFound("user not found")
			return
		}
		c.InternalServerError("failed to delete user")
		return
	}

	c.JSON(200, dto.MessageResponse{Message: "user deleted"})
}

func userResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
		IsVerified:     user.IsVerified,
	}
}
