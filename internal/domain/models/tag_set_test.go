package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	model "blog-post-service/internal/domain/models"
)

func TestDiffTagIDs(t *testing.T) {
	tests := []struct {
		name       string
		current    []int64
		desired    []int64
		wantAdd    []int64
		wantRemove []int64
	}{
		{
			name:    "empty current adds everything",
			current: nil,
			desired: []int64{2, 5},
			wantAdd: []int64{2, 5},
		},
		{
			name:       "replace keeps shared ids",
			current:    []int64{2, 5},
			desired:    []int64{5, 9},
			wantAdd:    []int64{9},
			wantRemove: []int64{2},
		},
		{
			name:       "empty desired clears",
			current:    []int64{1, 2, 3},
			desired:    []int64{},
			wantRemove: []int64{1, 2, 3},
		},
		{
			name:    "same set is a no-op",
			current: []int64{3, 1},
			desired: []int64{1, 3},
		},
		{
			name:       "duplicates are ignored",
			current:    []int64{4, 4},
			desired:    []int64{7, 7},
			wantAdd:    []int64{7},
			wantRemove: []int64{4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := model.DiffTagIDs(tt.current, tt.desired)
			assert.Equal(t, tt.wantAdd, add)
			assert.Equal(t, tt.wantRemove, remove)
		})
	}
}

func TestUniqueTagIDs(t *testing.T) {
	assert.Nil(t, model.UniqueTagIDs(nil))
	assert.Equal(t, []int64{5, 2, 9}, model.UniqueTagIDs([]int64{5, 2, 5, 9, 2}))
}

func TestPostInput_IsPublished(t *testing.T) {
	value := func(s string) *string { return &s }

	assert.False(t, (&model.PostInput{}).IsPublished())
	assert.True(t, (&model.PostInput{Published: value("on")}).IsPublished())
	assert.True(t, (&model.PostInput{Published: value("1")}).IsPublished())
	assert.False(t, (&model.PostInput{Published: value("")}).IsPublished())
}
