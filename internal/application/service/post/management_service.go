package post_service

import (
	"context"
	"errors"
	"log/slog"

	"blog-post-service/internal/application/slug"
	"blog-post-service/internal/application/validation"
	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
	category_repository "blog-post-service/internal/domain/ports/output/category"
	image_store "blog-post-service/internal/domain/ports/output/image"
	post_repository "blog-post-service/internal/domain/ports/output/post"
	tag_repository "blog-post-service/internal/domain/ports/output/tag"
	user_repository "blog-post-service/internal/domain/ports/output/user"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres"
)

// maxSlugAttempts bounds how often a write is retried after losing a slug
// race to a concurrent writer.
const maxSlugAttempts = 5

type ManagementService struct {
	postRepo     post_repository.Repository
	tagRepo      tag_repository.Repository
	categoryRepo category_repository.Repository
	userRepo     user_repository.Repository
	images       image_store.Store
	uow          postgres.UnitOfWork
	validator    *validation.PostValidator
	log          ports.Logger
	metrics      ports.MetricsProvider
}

func NewManagementService(
	postRepo post_repository.Repository,
	tagRepo tag_repository.Repository,
	categoryRepo category_repository.Repository,
	userRepo user_repository.Repository,
	images image_store.Store,
	uow postgres.UnitOfWork,
	validator *validation.PostValidator,
	log ports.Logger,
	metrics ports.MetricsProvider,
) *ManagementService {
	return &ManagementService{
		postRepo:     postRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		images:       images,
		uow:          uow,
		validator:    validator,
		log:          log,
		metrics:      metrics,
	}
}

func (s *ManagementService) ListOwn(ctx context.Context, callerID int64) ([]*model.Post, error) {
	posts, err := s.postRepo.ListByOwner(ctx, callerID)
	if err != nil {
		s.log.Error("Failed to list own posts", slog.Int64("user_id", callerID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return posts, nil
}

func (s *ManagementService) CreateForm(ctx context.Context) (*model.PostForm, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list categories", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	tags, err := s.tagRepo.List(ctx)
	if err != nil {
		s.log.Error("Failed to list tags", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &model.PostForm{Categories: categories, Tags: tags}, nil
}

func (s *ManagementService) Create(ctx context.Context, callerID int64, input *model.PostInput) (*model.PostDetailed, error) {
	if err := s.validate(ctx, input); err != nil {
		s.metrics.IncrementPostOperations("create", false)
		return nil, err
	}

	newPost := &model.Post{
		UserID:     callerID,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		Content:    input.Content,
		Published:  input.IsPublished(),
	}

	var storedRef string
	if input.Image != nil {
		ref, err := s.images.Store(ctx, input.Image.Data, input.Image.Filename)
		if err != nil {
			s.metrics.IncrementPostOperations("create", false)
			s.log.Error("Failed to store image for new post", slog.Int64("user_id", callerID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrImageStore
		}
		storedRef = ref
		newPost.Image = &storedRef
	}

	tagIDs := model.UniqueTagIDs(input.TagIDs)
	created, err := s.withSlugRetry(ctx, "create", func(tx postgres.Transaction) (*model.Post, error) {
		repo := tx.PostRepository()
		generated, err := slug.GenerateUnique(ctx, newPost.Title, repo.SlugExists)
		if err != nil {
			return nil, err
		}
		candidate := *newPost
		candidate.Slug = generated

		post, err := repo.Create(ctx, &candidate)
		if err != nil {
			return nil, err
		}
		if err := tx.TagRepository().SyncPostTags(ctx, post.ID, tagIDs); err != nil {
			return nil, err
		}
		return post, nil
	})
	if err != nil {
		s.metrics.IncrementPostOperations("create", false)
		s.discardImage(ctx, storedRef)
		return nil, err
	}

	s.metrics.IncrementPostOperations("create", true)
	s.log.Info("Post created", slog.Int64("post_id", created.ID), slog.Int64("user_id", callerID), slog.String("slug", created.Slug))
	return s.detailed(ctx, created)
}

func (s *ManagementService) Get(ctx context.Context, callerID, postID int64) (*model.PostDetailed, error) {
	post, err := s.ownedPost(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}
	return s.detailed(ctx, post)
}

func (s *ManagementService) EditForm(ctx context.Context, callerID, postID int64) (*model.PostEditForm, error) {
	detailed, err := s.Get(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}
	form, err := s.CreateForm(ctx)
	if err != nil {
		return nil, err
	}
	return &model.PostEditForm{
		Post:       detailed,
		Categories: form.Categories,
		Tags:       form.Tags,
		PostTagIDs: model.TagIDs(detailed.Tags),
	}, nil
}

func (s *ManagementService) Update(ctx context.Context, callerID, postID int64, input *model.PostInput) (*model.PostDetailed, error) {
	current, err := s.ownedPost(ctx, callerID, postID)
	if err != nil {
		s.metrics.IncrementPostOperations("update", false)
		return nil, err
	}
	if err := s.validate(ctx, input); err != nil {
		s.metrics.IncrementPostOperations("update", false)
		return nil, err
	}

	changes := *current
	changes.Title = input.Title
	changes.Content = input.Content
	changes.CategoryID = input.CategoryID
	changes.Published = input.IsPublished()

	var newRef string
	if input.Image != nil {
		ref, err := s.images.Store(ctx, input.Image.Data, input.Image.Filename)
		if err != nil {
			s.metrics.IncrementPostOperations("update", false)
			s.log.Error("Failed to store replacement image", slog.Int64("post_id", postID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrImageStore
		}
		newRef = ref
		changes.Image = &newRef
	}

	titleChanged := current.Title != input.Title
	tagIDs := model.UniqueTagIDs(input.TagIDs)
	updated, err := s.withSlugRetry(ctx, "update", func(tx postgres.Transaction) (*model.Post, error) {
		repo := tx.PostRepository()
		candidate := changes
		if titleChanged {
			generated, err := slug.GenerateUnique(ctx, candidate.Title, func(ctx context.Context, sl string) (bool, error) {
				if sl == current.Slug {
					return false, nil
				}
				return repo.SlugExists(ctx, sl)
			})
			if err != nil {
				return nil, err
			}
			candidate.Slug = generated
		}

		post, err := repo.Update(ctx, &candidate)
		if err != nil {
			return nil, err
		}
		if err := tx.TagRepository().SyncPostTags(ctx, post.ID, tagIDs); err != nil {
			return nil, err
		}
		return post, nil
	})
	if err != nil {
		s.metrics.IncrementPostOperations("update", false)
		s.discardImage(ctx, newRef)
		return nil, err
	}

	if newRef != "" && current.HasImage() {
		s.discardImage(ctx, *current.Image)
	}

	s.metrics.IncrementPostOperations("update", true)
	s.log.Info("Post updated", slog.Int64("post_id", updated.ID), slog.String("slug", updated.Slug), slog.Bool("published", updated.Published))
	return s.detailed(ctx, updated)
}

func (s *ManagementService) Delete(ctx context.Context, callerID, postID int64) error {
	post, err := s.ownedPost(ctx, callerID, postID)
	if err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		s.metrics.IncrementPostOperations("delete", false)
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if post.HasImage() {
		s.discardImage(ctx, *post.Image)
	}

	s.metrics.IncrementPostOperations("delete", true)
	s.log.Info("Post deleted", slog.Int64("post_id", postID), slog.Int64("user_id", callerID))
	return nil
}

func (s *ManagementService) ownedPost(ctx context.Context, callerID, postID int64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	if err := ensureOwner(post, callerID); err != nil {
		s.log.Debug("Caller does not own post", slog.Int64("post_id", postID), slog.Int64("user_id", callerID), slog.Int64("owner_id", post.UserID))
		return nil, err
	}
	return post, nil
}

// validate runs the schema checks and then confirms that the referenced
// category and tags exist.
func (s *ManagementService) validate(ctx context.Context, input *model.PostInput) error {
	verr := s.validator.Validate(input)
	if input == nil {
		return verr
	}

	if _, bad := verr.Fields["category_id"]; !bad && input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if !errors.Is(err, custom_errors.ErrCategoryNotFound) {
				s.log.Error("Failed to check category", slog.Int64("category_id", *input.CategoryID), slog.String("error", err.Error()))
				return custom_errors.ErrDatabaseQuery
			}
			verr.Add("category_id", "The selected category id is invalid.")
		}
	}

	if _, bad := verr.Fields["tags"]; !bad && len(input.TagIDs) > 0 {
		wanted := model.UniqueTagIDs(input.TagIDs)
		found, err := s.tagRepo.FindByIDs(ctx, wanted)
		if err != nil {
			s.log.Error("Failed to check tags", slog.Any("tag_ids", wanted), slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
		if len(found) != len(wanted) {
			verr.Add("tags", "The selected tags is invalid.")
		}
	}

	if verr.HasErrors() {
		s.log.Debug("Post input rejected", slog.Any("fields", verr.Fields))
		return verr
	}
	return nil
}

// withSlugRetry runs write in its own transaction and starts over with a
// fresh transaction when the slug it picked was taken in the meantime.
func (s *ManagementService) withSlugRetry(ctx context.Context, operation string, write func(tx postgres.Transaction) (*model.Post, error)) (*model.Post, error) {
	var lastErr error
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		post, err := s.writeInTx(ctx, write)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, custom_errors.ErrSlugConflict) {
			return nil, err
		}
		lastErr = err
		s.metrics.IncrementSlugCollisions()
		s.log.Warn("Slug collision, retrying", slog.String("operation", operation), slog.Int("attempt", attempt))
	}
	s.log.Error("Giving up after repeated slug collisions", slog.String("operation", operation), slog.String("error", lastErr.Error()))
	return nil, custom_errors.ErrSlugGeneration
}

func (s *ManagementService) writeInTx(ctx context.Context, write func(tx postgres.Transaction) (*model.Post, error)) (*model.Post, error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	var committed bool
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.log.Error("Failed to rollback transaction", slog.String("error", rbErr.Error()))
		}
	}()

	post, err := write(tx)
	if err != nil {
		return nil, mapWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	committed = true
	return post, nil
}

func mapWriteError(err error) error {
	switch {
	case errors.Is(err, custom_errors.ErrSlugConflict),
		errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrTagNotFound),
		errors.Is(err, custom_errors.ErrCategoryNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.Is(err, custom_errors.ErrTagSyncFailed):
		return custom_errors.ErrTagSyncFailed
	default:
		return custom_errors.ErrDatabaseQuery
	}
}

func (s *ManagementService) discardImage(ctx context.Context, ref string) {
	if ref == "" {
		return
	}
	if err := s.images.Delete(ctx, ref); err != nil {
		s.log.Warn("Failed to delete image, leaving orphaned blob", slog.String("ref", ref), slog.String("error", err.Error()))
	}
}

func (s *ManagementService) detailed(ctx context.Context, post *model.Post) (*model.PostDetailed, error) {
	result := &model.PostDetailed{Post: post}

	if post.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *post.CategoryID)
		switch {
		case err == nil:
			result.Category = category
		case errors.Is(err, custom_errors.ErrCategoryNotFound):
			s.log.Debug("Category of post not found", slog.Int64("post_id", post.ID), slog.Int64("category_id", *post.CategoryID))
		default:
			s.log.Error("Failed to load post category", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	tags, err := s.tagRepo.FindByPost(ctx, post.ID)
	if err != nil {
		s.log.Error("Failed to load post tags", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	result.Tags = tags

	user, err := s.userRepo.GetByID(ctx, post.UserID)
	switch {
	case err == nil:
		result.User = user
	case errors.Is(err, custom_errors.ErrUserNotFound):
		s.log.Debug("Owner of post not found", slog.Int64("post_id", post.ID), slog.Int64("user_id", post.UserID))
	default:
		s.log.Error("Failed to load post owner", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return result, nil
}
