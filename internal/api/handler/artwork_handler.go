package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/luma/gallery/internal/core/domain"
	"github.com/luma/gallery/internal/core/ports"
)

// ArtworkHandler handles HTTP requests for the artwork collection.
type ArtworkHandler struct {
	service ports.ArtworkService
}

func NewArtworkHandler(service ports.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{service: service}
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// List handles GET /api/art.
//
// @Summary      List artworks, newest first
// @Tags         art
// @Produce      json
// @Success      200  {array}   object
// @Router       /api/art [get]
func (h *ArtworkHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.service.ListArtworks(c.Request().Context()))
}

// Create handles POST /api/art.
//
// @Summary      Create an artwork
// @Tags         art
// @Accept       json
// @Produce      json
// @Param        body  body      object  true  "Artwork record"
// @Success      200   {object}  object
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/art [post]
func (h *ArtworkHandler) Create(c echo.Context) error {
	doc, err := readDocument(c)
	if err != nil {
		return err
	}

	art, err := h.service.CreateArtwork(c.Request().Context(), doc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, art)
}

// Delete handles DELETE /api/art/:id. Deleting an unknown id succeeds.
//
// @Summary      Delete an artwork
// @Tags         art
// @Produce      json
// @Param        id   path      string  true  "Artwork id"
// @Success      200  {object}  deleteResponse
// @Failure      500  {object}  map[string]string
// @Router       /api/art/{id} [delete]
func (h *ArtworkHandler) Delete(c echo.Context) error {
	if id, ok := domain.ParseID(c.Param("id")); ok {
		if err := h.service.DeleteArtwork(c.Request().Context(), id); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}
