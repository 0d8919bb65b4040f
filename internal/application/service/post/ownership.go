package post_service

import (
	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
)

// ensureOwner allows access only to the user who created the post.
func ensureOwner(post *model.Post, callerID int64) error {
	if post.UserID != callerID {
		return custom_errors.ErrForbidden
	}
	return nil
}
