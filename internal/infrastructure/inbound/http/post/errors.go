package post_http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog-post-service/internal/custom_errors"
	ports "blog-post-service/internal/domain/ports/output"
)

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

func validationFailed(c echo.Context, verr *custom_errors.ValidationError) error {
	fields := make(map[string][]string, len(verr.Fields))
	for field, msg := range verr.Fields {
		fields[field] = []string{msg}
	}
	return c.JSON(http.StatusUnprocessableEntity, validationResponse{
		Message: "The given data was invalid.",
		Errors:  fields,
	})
}

// respondError turns a service error into the matching JSON response.
func respondError(c echo.Context, log ports.Logger, err error) error {
	var verr *custom_errors.ValidationError
	switch {
	case errors.As(err, &verr):
		return validationFailed(c, verr)
	case errors.Is(err, custom_errors.ErrUnauthenticated):
		return c.JSON(http.StatusUnauthorized, messageResponse{Message: "Unauthenticated."})
	case errors.Is(err, custom_errors.ErrForbidden):
		return c.JSON(http.StatusForbidden, messageResponse{Message: "Forbidden"})
	case errors.Is(err, custom_errors.ErrPostNotFound):
		return c.JSON(http.StatusNotFound, messageResponse{Message: "Post not found"})
	case errors.Is(err, custom_errors.ErrTagNotFound):
		v := custom_errors.NewValidationError()
		v.Add("tags", "The selected tags is invalid.")
		return validationFailed(c, v)
	case errors.Is(err, custom_errors.ErrCategoryNotFound):
		v := custom_errors.NewValidationError()
		v.Add("category_id", "The selected category id is invalid.")
		return validationFailed(c, v)
	case errors.Is(err, custom_errors.ErrSlugGeneration):
		return c.JSON(http.StatusConflict, messageResponse{Message: "Could not generate a unique slug, please retry."})
	default:
		log.Error("Request failed",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.String("error", err.Error()))
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: "Server Error"})
	}
}
