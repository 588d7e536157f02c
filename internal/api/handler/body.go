package handler

import (
	"io"

	"github.com/labstack/echo/v4"

	"github.com/luma/gallery/internal/core/domain"
)

// readDocument decodes the request body as a single JSON object. An empty
// body is an empty object.
func readDocument(c echo.Context) (domain.Document, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	return domain.DecodeDocument(body)
}
