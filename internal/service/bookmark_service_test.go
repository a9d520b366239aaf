package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeBookmarkStore struct {
	rows   map[uint]model.Bookmark
	nextID uint
}

func newFakeBookmarkStore() *fakeBookmarkStore {
	return &fakeBookmarkStore{rows: map[uint]model.Bookmark{}}
}

func (f *fakeBookmarkStore) Find(studentID, courseID uint) (*model.Bookmark, error) {
	for _, b := range f.rows {
		if b.StudentID == studentID && b.CourseID == courseID {
			found := b
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookmarkStore) Create(bookmark *model.Bookmark) error {
	f.nextID++
	bookmark.ID = f.nextID
	f.rows[bookmark.ID] = *bookmark
	return nil
}

func (f *fakeBookmarkStore) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func TestToggleBookmark(t *testing.T) {
	store := newFakeBookmarkStore()

	on, err := toggleBookmark(store, 1, 10)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, store.rows, 1)

	off, err := toggleBookmark(store, 1, 10)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, store.rows)
}

func TestToggleBookmarkIndependentPairs(t *testing.T) {
	store := newFakeBookmarkStore()

	_, err := toggleBookmark(store, 1, 10)
	require.NoError(t, err)
	_, err = toggleBookmark(store, 2, 10)
	require.NoError(t, err)
	_, err = toggleBookmark(store, 1, 11)
	require.NoError(t, err)

	// Removing one pair leaves the others alone.
	off, err := toggleBookmark(store, 1, 10)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Len(t, store.rows, 2)
}
