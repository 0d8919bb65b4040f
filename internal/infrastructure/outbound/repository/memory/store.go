// Package memory keeps posts, tags, categories and users in process memory.
// It backs the service tests and local runs without a database.
package memory

import (
	"sort"
	"sync"

	model "blog-post-service/internal/domain/models"
)

type postTagKey struct {
	postID int64
	tagID  int64
}

type Store struct {
	mu sync.RWMutex

	posts      map[int64]*model.Post
	tags       map[int64]*model.Tag
	categories map[int64]*model.Category
	users      map[int64]*model.User
	postTags   map[postTagKey]struct{}

	nextPostID int64

	beforePostWrite func()
	writeErr        error
	writeErrTimes   int
}

func NewStore() *Store {
	return &Store{
		posts:      make(map[int64]*model.Post),
		tags:       make(map[int64]*model.Tag),
		categories: make(map[int64]*model.Category),
		users:      make(map[int64]*model.User),
		postTags:   make(map[postTagKey]struct{}),
		nextPostID: 1,
	}
}

func (s *Store) AddUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	s.users[u.ID] = &c
}

func (s *Store) AddCategory(c *model.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	s.categories[c.ID] = &cp
}

func (s *Store) AddTag(t *model.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *t
	s.tags[t.ID] = &cp
}

// RemoveTag drops the tag and its post associations outside of any
// transaction.
func (s *Store) RemoveTag(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tags, id)
	for k := range s.postTags {
		if k.tagID == id {
			delete(s.postTags, k)
		}
	}
}

// SeedPost stores post as is, assigning an id when it has none.
func (s *Store) SeedPost(p *model.Post) *model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	if cp.ID == 0 {
		cp.ID = s.nextPostID
	}
	if cp.ID >= s.nextPostID {
		s.nextPostID = cp.ID + 1
	}
	s.posts[cp.ID] = &cp
	out := cp
	return &out
}

// SetBeforePostWrite registers fn to run right before every post insert or
// update. Tests use it to interleave a competing writer.
func (s *Store) SetBeforePostWrite(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beforePostWrite = fn
}

// FailPostWrites makes the next times post inserts or updates return err.
func (s *Store) FailPostWrites(err error, times int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
	s.writeErrTimes = times
}

// PostTagIDs returns the tag ids associated with postID in ascending order.
func (s *Store) PostTagIDs(postID int64) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.postTagIDsLocked(postID)
}

func (s *Store) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

func (s *Store) postTagIDsLocked(postID int64) []int64 {
	ids := make([]int64, 0)
	for k := range s.postTags {
		if k.postID == postID {
			ids = append(ids, k.tagID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) slugTakenLocked(slug string, exceptID int64) bool {
	for _, p := range s.posts {
		if p.Slug == slug && p.ID != exceptID {
			return true
		}
	}
	return false
}

func (s *Store) takeWriteErrLocked() error {
	if s.writeErrTimes <= 0 {
		return nil
	}
	s.writeErrTimes--
	return s.writeErr
}

func (s *Store) runBeforePostWrite() {
	s.mu.RLock()
	fn := s.beforePostWrite
	s.mu.RUnlock()
	if fn != nil {
		fn()
	}
}
