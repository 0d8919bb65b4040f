package post_service

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	image_store_mock "blog-post-service/mocks/image"
)

func TestManagementService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newFixture(t, nil)

		got, err := f.manage.Create(ctx, ownerID, &model.PostInput{
			Title:      "Hello World",
			Content:    "Body",
			CategoryID: int64Ptr(1),
			TagIDs:     []int64{5, 2, 5},
		})
		require.NoError(t, err)

		assert.Equal(t, "hello-world", got.Post.Slug)
		assert.Equal(t, ownerID, got.Post.UserID)
		assert.False(t, got.Post.Published)
		assert.Nil(t, got.Post.Image)
		require.NotNil(t, got.Category)
		assert.Equal(t, "News", got.Category.Name)
		require.NotNil(t, got.User)
		assert.Equal(t, "Owner", got.User.Name)
		assert.Equal(t, []int64{2, 5}, model.TagIDs(got.Tags))
		assert.Equal(t, []int64{2, 5}, f.store.PostTagIDs(got.Post.ID))
	})

	t.Run("Published accepted values", func(t *testing.T) {
		f := newFixture(t, nil)
		for _, v := range []string{"yes", "on", "1", "true"} {
			got, err := f.manage.Create(ctx, ownerID, &model.PostInput{Title: "T " + v, Content: "c", Published: strPtr(v)})
			require.NoError(t, err)
			assert.True(t, got.Post.Published, v)
		}
	})

	t.Run("Same title gets suffixed slug", func(t *testing.T) {
		f := newFixture(t, nil)
		first, err := f.manage.Create(ctx, ownerID, &model.PostInput{Title: "Hello World", Content: "a"})
		require.NoError(t, err)
		second, err := f.manage.Create(ctx, ownerID, &model.PostInput{Title: "Hello World", Content: "b"})
		require.NoError(t, err)

		assert.Equal(t, "hello-world", first.Post.Slug)
		assert.Equal(t, "hello-world-1", second.Post.Slug)
	})

	t.Run("Validation errors leave store untouched", func(t *testing.T) {
		tests := []struct {
			name   string
			input  *model.PostInput
			fields []string
		}{
			{
				name:   "Missing title and content",
				input:  &model.PostInput{},
				fields: []string{"title", "content"},
			},
			{
				name:   "Unknown category",
				input:  &model.PostInput{Title: "T", Content: "c", CategoryID: int64Ptr(42)},
				fields: []string{"category_id"},
			},
			{
				name:   "Unknown tag",
				input:  &model.PostInput{Title: "T", Content: "c", TagIDs: []int64{2, 77}},
				fields: []string{"tags"},
			},
			{
				name:   "Published not accepted",
				input:  &model.PostInput{Title: "T", Content: "c", Published: strPtr("maybe")},
				fields: []string{"published"},
			},
			{
				name:   "Image not an image",
				input:  &model.PostInput{Title: "T", Content: "c", Image: &model.ImageUpload{Filename: "a.png", Data: []byte("plain text")}},
				fields: []string{"image"},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t, nil)

				got, err := f.manage.Create(ctx, ownerID, tt.input)
				assert.Nil(t, got)

				var verr *custom_errors.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.ErrorIs(t, err, custom_errors.ErrInvalidInput)
				for _, field := range tt.fields {
					assert.Contains(t, verr.Fields, field)
				}
				assert.Equal(t, 0, f.store.PostCount())
				assert.Empty(t, f.uploads(t))
			})
		}
	})

	t.Run("Stores image", func(t *testing.T) {
		f := newFixture(t, nil)

		got, err := f.manage.Create(ctx, ownerID, &model.PostInput{
			Title:   "With image",
			Content: "c",
			Image:   &model.ImageUpload{Filename: "cover.png", Data: pngHeader},
		})
		require.NoError(t, err)
		require.NotNil(t, got.Post.Image)

		assert.Equal(t, []string{*got.Post.Image}, f.uploads(t))
		data, err := afero.ReadFile(f.fs, *got.Post.Image)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, data)
	})

	t.Run("Removes stored image when persisting fails", func(t *testing.T) {
		f := newFixture(t, nil)
		f.store.FailPostWrites(errors.New("connection reset"), 1)

		got, err := f.manage.Create(ctx, ownerID, &model.PostInput{
			Title:   "With image",
			Content: "c",
			Image:   &model.ImageUpload{Filename: "cover.png", Data: pngHeader},
		})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, custom_errors.ErrDatabaseQuery)
		assert.Empty(t, f.uploads(t))
		assert.Equal(t, 0, f.store.PostCount())
	})

	t.Run("Image store failure", func(t *testing.T) {
		images := image_store_mock.NewStore(t)
		images.On("Store", mock.Anything, pngHeader, "cover.png").Return("", custom_errors.ErrImageStore)
		f := newFixture(t, images)

		got, err := f.manage.Create(ctx, ownerID, &model.PostInput{
			Title:   "With image",
			Content: "c",
			Image:   &model.ImageUpload{Filename: "cover.png", Data: pngHeader},
		})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, custom_errors.ErrImageStore)
		assert.Equal(t, 0, f.store.PostCount())
	})

	t.Run("Retries after losing a slug race", func(t *testing.T) {
		f := newFixture(t, nil)
		raced := false
		f.store.SetBeforePostWrite(func() {
			if raced {
				return
			}
			raced = true
			f.store.SeedPost(&model.Post{UserID: strangerID, Title: "Hello World", Content: "x", Slug: "hello-world"})
		})

		got, err := f.manage.Create(ctx, ownerID, &model.PostInput{Title: "Hello World", Content: "c", TagIDs: []int64{9}})
		require.NoError(t, err)

		assert.True(t, raced)
		assert.Equal(t, "hello-world-1", got.Post.Slug)
		assert.Equal(t, []int64{9}, f.store.PostTagIDs(got.Post.ID))
		assert.Equal(t, 2, f.store.PostCount())
	})

	t.Run("Gives up after repeated slug conflicts", func(t *testing.T) {
		f := newFixture(t, nil)
		f.store.FailPostWrites(custom_errors.ErrSlugConflict, maxSlugAttempts)

		got, err := f.manage.Create(ctx, ownerID, &model.PostInput{Title: "Hello World", Content: "c"})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, custom_errors.ErrSlugGeneration)
		assert.Equal(t, 0, f.store.PostCount())
	})

	t.Run("Rolls back post when tag sync fails", func(t *testing.T) {
		f := newFixture(t, nil)
		f.store.SetBeforePostWrite(func() { f.store.RemoveTag(9) })

		got, err := f.manage.Create(ctx, ownerID, &model.PostInput{Title: "Tagged", Content: "c", TagIDs: []int64{2, 9}})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, custom_errors.ErrTagNotFound)
		assert.Equal(t, 0, f.store.PostCount())
	})
}

func TestManagementService_Get(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Mine", Content: "c", Slug: "mine", CategoryID: int64Ptr(2)}, 5)

	tests := []struct {
		name     string
		callerID int64
		postID   int64
		wantErr  error
	}{
		{name: "Owner", callerID: ownerID, postID: post.ID},
		{name: "Other user", callerID: strangerID, postID: post.ID, wantErr: custom_errors.ErrForbidden},
		{name: "Missing post", callerID: ownerID, postID: 999, wantErr: custom_errors.ErrPostNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.manage.Get(ctx, tt.callerID, tt.postID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "mine", got.Post.Slug)
			assert.Equal(t, "Guides", got.Category.Name)
			assert.Equal(t, []int64{5}, model.TagIDs(got.Tags))
		})
	}
}

func TestManagementService_ListOwn(t *testing.T) {
	f := newFixture(t, nil)
	a := f.seedPost(t, &model.Post{UserID: ownerID, Title: "A", Content: "c", Slug: "a"})
	f.seedPost(t, &model.Post{UserID: strangerID, Title: "B", Content: "c", Slug: "b"})
	c := f.seedPost(t, &model.Post{UserID: ownerID, Title: "C", Content: "c", Slug: "c", Published: true})

	got, err := f.manage.ListOwn(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, a.ID, got[0].ID)
	assert.Equal(t, c.ID, got[1].ID)
}

func TestManagementService_Forms(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	form, err := f.manage.CreateForm(ctx)
	require.NoError(t, err)
	assert.Len(t, form.Categories, 2)
	assert.Len(t, form.Tags, 3)

	post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Edit me", Content: "c", Slug: "edit-me"}, 9, 2)

	edit, err := f.manage.EditForm(ctx, ownerID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, edit.Post.Post.ID)
	assert.Equal(t, []int64{2, 9}, edit.PostTagIDs)
	assert.Len(t, edit.Categories, 2)
	assert.Len(t, edit.Tags, 3)

	_, err = f.manage.EditForm(ctx, strangerID, post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)
}

func TestManagementService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces fields and synchronizes tags", func(t *testing.T) {
		f := newFixture(t, nil)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Old", Content: "old", Slug: "old", Published: true, CategoryID: int64Ptr(1)}, 2, 5)

		got, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{
			Title:   "New Title",
			Content: "new",
			TagIDs:  []int64{5, 9},
		})
		require.NoError(t, err)

		assert.Equal(t, "new-title", got.Post.Slug)
		assert.Equal(t, "new", got.Post.Content)
		assert.False(t, got.Post.Published)
		assert.Nil(t, got.Post.CategoryID)
		assert.Nil(t, got.Category)
		assert.Equal(t, ownerID, got.Post.UserID)
		assert.Equal(t, []int64{5, 9}, f.store.PostTagIDs(post.ID))
	})

	t.Run("Absent tags clear associations", func(t *testing.T) {
		f := newFixture(t, nil)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t"}, 2, 5)

		_, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{Title: "T", Content: "c"})
		require.NoError(t, err)
		assert.Empty(t, f.store.PostTagIDs(post.ID))
	})

	t.Run("Unchanged title keeps slug", func(t *testing.T) {
		f := newFixture(t, nil)
		f.seedPost(t, &model.Post{UserID: strangerID, Title: "Same", Content: "c", Slug: "same-1"})
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Same", Content: "c", Slug: "same"})

		got, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{Title: "Same", Content: "changed", Published: strPtr("on")})
		require.NoError(t, err)
		assert.Equal(t, "same", got.Post.Slug)
		assert.True(t, got.Post.Published)
	})

	t.Run("Retitle to the same base slug keeps slug", func(t *testing.T) {
		f := newFixture(t, nil)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Hello World", Content: "c", Slug: "hello-world"})

		got, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{Title: "Hello, World!", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "hello-world", got.Post.Slug)
	})

	t.Run("Retitle onto a taken slug is suffixed", func(t *testing.T) {
		f := newFixture(t, nil)
		f.seedPost(t, &model.Post{UserID: strangerID, Title: "Taken", Content: "c", Slug: "taken"})
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Mine", Content: "c", Slug: "mine"})

		got, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{Title: "Taken", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, "taken-1", got.Post.Slug)
	})

	t.Run("Other user is rejected without changes", func(t *testing.T) {
		f := newFixture(t, nil)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Mine", Content: "c", Slug: "mine"}, 2)

		got, err := f.manage.Update(ctx, strangerID, post.ID, &model.PostInput{Title: "Stolen", Content: "x"})
		assert.Nil(t, got)
		assert.ErrorIs(t, err, custom_errors.ErrForbidden)

		current, err := f.manage.Get(ctx, ownerID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mine", current.Post.Title)
		assert.Equal(t, []int64{2}, f.store.PostTagIDs(post.ID))
	})

	t.Run("Invalid input is rejected without changes", func(t *testing.T) {
		f := newFixture(t, nil)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "Mine", Content: "c", Slug: "mine"})

		_, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{Title: "", Content: "x"})
		var verr *custom_errors.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "title")

		current, err := f.manage.Get(ctx, ownerID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "c", current.Post.Content)
	})

	t.Run("Missing post", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.manage.Update(ctx, ownerID, 404, &model.PostInput{Title: "T", Content: "c"})
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	})

	t.Run("Replacing image deletes the old blob after commit", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, afero.WriteFile(f.fs, "uploads/old.png", pngHeader, 0o644))
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t", Image: strPtr("uploads/old.png")})

		got, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{
			Title:   "T",
			Content: "c",
			Image:   &model.ImageUpload{Filename: "new.png", Data: pngHeader},
		})
		require.NoError(t, err)
		require.NotNil(t, got.Post.Image)
		assert.NotEqual(t, "uploads/old.png", *got.Post.Image)
		assert.Equal(t, []string{*got.Post.Image}, f.uploads(t))
	})

	t.Run("Keeps old image when persisting fails", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, afero.WriteFile(f.fs, "uploads/old.png", pngHeader, 0o644))
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t", Image: strPtr("uploads/old.png")})
		f.store.FailPostWrites(errors.New("connection reset"), 1)

		_, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{
			Title:   "T",
			Content: "c",
			Image:   &model.ImageUpload{Filename: "new.png", Data: pngHeader},
		})
		assert.ErrorIs(t, err, custom_errors.ErrDatabaseQuery)
		assert.Equal(t, []string{"uploads/old.png"}, f.uploads(t))

		current, err := f.manage.Get(ctx, ownerID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "uploads/old.png", *current.Post.Image)
	})

	t.Run("Keeps image when none is uploaded", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, afero.WriteFile(f.fs, "uploads/old.png", pngHeader, 0o644))
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t", Image: strPtr("uploads/old.png")})

		got, err := f.manage.Update(ctx, ownerID, post.ID, &model.PostInput{Title: "T", Content: "c2"})
		require.NoError(t, err)
		assert.Equal(t, "uploads/old.png", *got.Post.Image)
		assert.Equal(t, []string{"uploads/old.png"}, f.uploads(t))
	})
}

func TestManagementService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Removes post, associations and image", func(t *testing.T) {
		f := newFixture(t, nil)
		require.NoError(t, afero.WriteFile(f.fs, "uploads/cover.png", pngHeader, 0o644))
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t", Image: strPtr("uploads/cover.png")}, 2, 9)

		require.NoError(t, f.manage.Delete(ctx, ownerID, post.ID))

		assert.Equal(t, 0, f.store.PostCount())
		assert.Empty(t, f.store.PostTagIDs(post.ID))
		assert.Empty(t, f.uploads(t))

		_, err := f.manage.Get(ctx, ownerID, post.ID)
		assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
	})

	t.Run("Other user is rejected", func(t *testing.T) {
		f := newFixture(t, nil)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t"})

		err := f.manage.Delete(ctx, strangerID, post.ID)
		assert.ErrorIs(t, err, custom_errors.ErrForbidden)
		assert.Equal(t, 1, f.store.PostCount())
	})

	t.Run("Missing post", func(t *testing.T) {
		f := newFixture(t, nil)
		assert.ErrorIs(t, f.manage.Delete(ctx, ownerID, 12), custom_errors.ErrPostNotFound)
	})

	t.Run("Image delete failure is not reported", func(t *testing.T) {
		images := image_store_mock.NewStore(t)
		images.On("Delete", mock.Anything, "uploads/cover.png").Return(custom_errors.ErrImageDelete).Once()
		f := newFixture(t, images)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t", Image: strPtr("uploads/cover.png")})

		require.NoError(t, f.manage.Delete(ctx, ownerID, post.ID))
		assert.Equal(t, 0, f.store.PostCount())
	})

	t.Run("Post without image skips image store", func(t *testing.T) {
		images := image_store_mock.NewStore(t)
		f := newFixture(t, images)
		post := f.seedPost(t, &model.Post{UserID: ownerID, Title: "T", Content: "c", Slug: "t"})

		require.NoError(t, f.manage.Delete(ctx, ownerID, post.ID))
		images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
