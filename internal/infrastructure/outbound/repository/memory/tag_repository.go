package memory

import (
	"context"
	"log/slog"
	"sort"

	"blog-post-service/internal/custom_errors"
	model "blog-post-service/internal/domain/models"
	ports "blog-post-service/internal/domain/ports/output"
)

type TagRepository struct {
	store *Store
	log   ports.Logger
	tx    *txLog
}

func NewTagRepository(store *Store, log ports.Logger) *TagRepository {
	return &TagRepository{store: store, log: log}
}

func (t *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	tags := make([]*model.Tag, 0, len(t.store.tags))
	for _, tag := range t.store.tags {
		cp := *tag
		tags = append(tags, &cp)
	}
	sortTags(tags)
	return tags, nil
}

func (t *TagRepository) FindByIDs(ctx context.Context, ids []int64) ([]*model.Tag, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	tags := make([]*model.Tag, 0, len(ids))
	for _, id := range model.UniqueTagIDs(ids) {
		if tag, ok := t.store.tags[id]; ok {
			cp := *tag
			tags = append(tags, &cp)
		}
	}
	sortTags(tags)
	return tags, nil
}

func (t *TagRepository) FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()
	return t.tagsForPostLocked(postID), nil
}

func (t *TagRepository) FindByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.Tag, error) {
	t.store.mu.RLock()
	defer t.store.mu.RUnlock()

	result := make(map[int64][]*model.Tag, len(postIDs))
	for _, id := range postIDs {
		if tags := t.tagsForPostLocked(id); len(tags) > 0 {
			result[id] = tags
		}
	}
	return result, nil
}

func (t *TagRepository) SyncPostTags(ctx context.Context, postID int64, tagIDs []int64) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return custom_errors.ErrPostNotFound
	}

	toAdd, toRemove := model.DiffTagIDs(s.postTagIDsLocked(postID), tagIDs)
	for _, id := range toAdd {
		if _, ok := s.tags[id]; !ok {
			t.log.Debug("Tag not found during sync (memory impl)", slog.Int64("tag_id", id))
			return custom_errors.ErrTagNotFound
		}
	}

	for _, id := range toRemove {
		k := postTagKey{postID: postID, tagID: id}
		delete(s.postTags, k)
		t.tx.record(func() { s.postTags[k] = struct{}{} })
	}
	for _, id := range toAdd {
		k := postTagKey{postID: postID, tagID: id}
		s.postTags[k] = struct{}{}
		t.tx.record(func() { delete(s.postTags, k) })
	}
	return nil
}

func (t *TagRepository) tagsForPostLocked(postID int64) []*model.Tag {
	tags := make([]*model.Tag, 0)
	for _, id := range t.store.postTagIDsLocked(postID) {
		if tag, ok := t.store.tags[id]; ok {
			cp := *tag
			tags = append(tags, &cp)
		}
	}
	return tags
}

func sortTags(tags []*model.Tag) {
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
}
