package post_http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	"blog-post-service/internal/infrastructure/inbound/http/middleware"
)

type PostFormProvider interface {
	CreateForm(ctx context.Context) (*model.PostForm, error)
	EditForm(ctx context.Context, callerID, postID int64) (*model.PostEditForm, error)
}

// PostFormHandler serves the choices an editor needs: every category and
// tag, plus the current post and its tag ids when editing.
type PostFormHandler struct {
	postService PostFormProvider
	log         ports.Logger
}

func NewPostFormHandler(postService PostFormProvider, log ports.Logger) *PostFormHandler {
	return &PostFormHandler{postService: postService, log: log}
}

func (h *PostFormHandler) CreateForm(c echo.Context) error {
	if _, err := middleware.CallerID(c); err != nil {
		return respondError(c, h.log, err)
	}

	form, err := h.postService.CreateForm(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, form)
}

func (h *PostFormHandler) EditForm(c echo.Context) error {
	callerID, err := middleware.CallerID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	postID, ok := parseID(c)
	if !ok {
		return respondError(c, h.log, custom_errors.ErrPostNotFound)
	}

	form, err := h.postService.EditForm(c.Request().Context(), callerID, postID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, form)
}
