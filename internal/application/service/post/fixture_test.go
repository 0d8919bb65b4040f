package post_service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"blog-post-service/internal/application/validation"
	model "blog-post-service/internal/domain/models"
	image_store "blog-post-service/internal/domain/ports/output/image"
	"blog-post-service/internal/infrastructure/logger"
	"blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	"blog-post-service/internal/infrastructure/outbound/repository/memory"
	"blog-post-service/internal/infrastructure/outbound/storage/image"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

const (
	ownerID    int64 = 1
	strangerID int64 = 2
)

type fixture struct {
	store   *memory.Store
	fs      afero.Fs
	manage  *ManagementService
	public  *PublicService
	tagRepo *memory.TagRepository
}

// newFixture wires the services to an in-memory store. A nil images uses an
// afero backed store whose files can be inspected through fixture.fs.
func newFixture(t *testing.T, images image_store.Store) *fixture {
	t.Helper()

	log := logger.New("test")
	metrics := prometheus.NewPrometheusMetricsProvider()
	store := memory.NewStore()
	fs := afero.NewMemMapFs()
	if images == nil {
		images = image.NewFileStore(fs, log, metrics)
	}

	store.AddUser(&model.User{ID: ownerID, Name: "Owner", Email: "owner@example.com"})
	store.AddUser(&model.User{ID: strangerID, Name: "Stranger", Email: "stranger@example.com"})
	store.AddCategory(&model.Category{ID: 1, Name: "News", Slug: "news"})
	store.AddCategory(&model.Category{ID: 2, Name: "Guides", Slug: "guides"})
	for _, tag := range []*model.Tag{
		{ID: 2, Name: "Go", Slug: "go"},
		{ID: 5, Name: "SQL", Slug: "sql"},
		{ID: 9, Name: "Web", Slug: "web"},
	} {
		store.AddTag(tag)
	}

	postRepo := memory.NewPostRepository(store, log)
	tagRepo := memory.NewTagRepository(store, log)

	return &fixture{
		store: store,
		fs:    fs,
		manage: NewManagementService(
			postRepo,
			tagRepo,
			memory.NewCategoryRepository(store),
			memory.NewUserRepository(store),
			images,
			memory.NewUnitOfWork(store, log),
			validation.NewPostValidator(validator.New(), 0),
			log,
			metrics,
		),
		public:  NewPublicService(postRepo, tagRepo, log),
		tagRepo: tagRepo,
	}
}

func (f *fixture) seedPost(t *testing.T, post *model.Post, tagIDs ...int64) *model.Post {
	t.Helper()
	seeded := f.store.SeedPost(post)
	if len(tagIDs) > 0 {
		require.NoError(t, f.tagRepo.SyncPostTags(context.Background(), seeded.ID, tagIDs))
	}
	return seeded
}

func (f *fixture) uploads(t *testing.T) []string {
	t.Helper()
	exists, err := afero.DirExists(f.fs, image.UploadsDir)
	require.NoError(t, err)
	if !exists {
		return nil
	}
	entries, err := afero.ReadDir(f.fs, image.UploadsDir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, image.UploadsDir+"/"+e.Name())
	}
	return names
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }
