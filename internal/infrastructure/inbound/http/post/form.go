package post_http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
)

// maxUploadBytes caps how much of an uploaded image is read into memory.
// The size rule itself is enforced by validation.
const maxUploadBytes = 8 << 20

// bindPostInput reads the post form (urlencoded or multipart). Fields that
// cannot be parsed are reported the same way validation failures are.
func bindPostInput(c echo.Context) (*model.PostInput, error) {
	form, err := c.FormParams()
	if err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	verr := custom_errors.NewValidationError()
	input := &model.PostInput{
		Title:   strings.TrimSpace(form.Get("title")),
		Content: strings.TrimSpace(form.Get("content")),
	}

	if values, ok := form["published"]; ok && len(values) > 0 {
		published := values[0]
		input.Published = &published
	}

	if raw := strings.TrimSpace(form.Get("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			verr.Add("category_id", "The selected category id is invalid.")
		} else {
			input.CategoryID = &id
		}
	}

	for _, raw := range append(form["tags[]"], form["tags"]...) {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			verr.Add("tags", "The selected tags is invalid.")
			continue
		}
		input.TagIDs = append(input.TagIDs, id)
	}

	upload, err := readImage(c)
	if err != nil {
		verr.Add("image", "The image failed to upload.")
	}
	input.Image = upload

	if verr.HasErrors() {
		return nil, verr
	}
	return input, nil
}

func readImage(c echo.Context) (*model.ImageUpload, error) {
	header, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, err
	}
	return &model.ImageUpload{Filename: header.Filename, Data: data}, nil
}

func parseID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func postLocation(id int64) string {
	return "/admin/posts/" + strconv.FormatInt(id, 10)
}
