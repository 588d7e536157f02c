package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luma/gallery/internal/core/domain"
	"github.com/luma/gallery/internal/core/ports"
)

// UserHandler handles HTTP requests for the user collection.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   object
// @Router       /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ListUsers(c.Request().Context()))
}

// Create handles POST /api/users.
//
// @Summary      Create a user
// @Description  Stores the body as received with a fresh server-assigned id.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "User record"
// @Success      200   {object}  object
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /api/users/:id.
//
// @Summary      Update a user
// @Description  Shallow-merges the body over the first user with the given id.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string  true  "User id"
// @Param        body  body      object  true  "Fields to merge"
// @Success      200   {object}  object
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, ok := domain.ParseID(c.Param("id"))
	if !ok {
		return domain.ErrUserNotFound
	}

	patch, err := readDocument(c)
	if err != nil {
		return err
	}

	user, err := h.service.UpdateUser(c.Request().Context(), id, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
