// Package validation checks owner-submitted post input and reports problems
// as field level messages.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
)

const DefaultMaxImageSizeKB = 500

var imageMIMETypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/bmp",
	"image/svg+xml",
	"image/webp",
}

var fieldNames = map[string]string{
	"Title":      "title",
	"Content":    "content",
	"Published":  "published",
	"CategoryID": "category_id",
	"TagIDs":     "tags",
	"Image":      "image",
}

type PostValidator struct {
	validate       *validator.Validate
	maxImageSizeKB int
}

func NewPostValidator(validate *validator.Validate, maxImageSizeKB int) *PostValidator {
	if maxImageSizeKB <= 0 {
		maxImageSizeKB = DefaultMaxImageSizeKB
	}
	return &PostValidator{validate: validate, maxImageSizeKB: maxImageSizeKB}
}

// Validate runs the schema checks that need no storage access. The returned
// ValidationError is never nil; callers add reference checks to it and test
// HasErrors afterwards.
func (v *PostValidator) Validate(input *model.PostInput) *custom_errors.ValidationError {
	verr := custom_errors.NewValidationError()
	if input == nil {
		verr.Add("title", "The title field is required.")
		verr.Add("content", "The content field is required.")
		return verr
	}

	if err := v.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			verr.Add("input", err.Error())
			return verr
		}
		for _, fe := range fieldErrs {
			field := fieldName(fe)
			verr.Add(field, message(field, fe))
		}
	}

	if input.Image != nil {
		if msg := v.checkImage(input.Image); msg != "" {
			verr.Add("image", msg)
		}
	}
	return verr
}

func (v *PostValidator) checkImage(img *model.ImageUpload) string {
	if len(img.Data) == 0 {
		return "The image must be an image."
	}
	detected := mimetype.Detect(img.Data)
	if !mimetype.EqualsAny(detected.String(), imageMIMETypes...) {
		return "The image must be an image."
	}
	if len(img.Data) > v.maxImageSizeKB*1024 {
		return fmt.Sprintf("The image may not be greater than %d kilobytes.", v.maxImageSizeKB)
	}
	return ""
}

func fieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if i := strings.Index(ns, "["); i >= 0 {
		ns = ns[:i]
	}
	if name, ok := fieldNames[ns]; ok {
		return name
	}
	return strings.ToLower(ns)
}

func message(field string, fe validator.FieldError) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("The %s must be accepted.", label)
	case "gt":
		return fmt.Sprintf("The selected %s is invalid.", label)
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}
