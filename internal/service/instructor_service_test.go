package service

import (
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFollowStore struct {
	rows   map[uint]model.InstructorFollow
	nextID uint
}

func newFakeFollowStore() *fakeFollowStore {
	return &fakeFollowStore{rows: map[uint]model.InstructorFollow{}}
}

func (f *fakeFollowStore) Find(studentID, instructorID uint) (*model.InstructorFollow, error) {
	for _, row := range f.rows {
		if row.StudentID == studentID && row.InstructorID == instructorID {
			found := row
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFollowStore) Create(follow *model.InstructorFollow) error {
	f.nextID++
	follow.ID = f.nextID
	f.rows[follow.ID] = *follow
	return nil
}

func (f *fakeFollowStore) Delete(id uint) error {
	delete(f.rows, id)
	return nil
}

func TestToggleFollow(t *testing.T) {
	store := newFakeFollowStore()

	following, err := toggleFollow(store, 1, 5)
	require.NoError(t, err)
	assert.True(t, following)

	following, err = toggleFollow(store, 1, 5)
	require.NoError(t, err)
	assert.False(t, following)
	assert.Empty(t, store.rows)

	// A third toggle follows again: state strictly alternates.
	following, err = toggleFollow(store, 1, 5)
	require.NoError(t, err)
	assert.True(t, following)
}

type fakeInstructorDirectory struct {
	profiles  map[uint]model.InstructorProfile
	followers map[uint]int64
}

func (f *fakeInstructorDirectory) FindByID(id uint) (*model.InstructorProfile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

func (f *fakeInstructorDirectory) CountFollowers(instructorID uint) (int64, error) {
	return f.followers[instructorID], nil
}

type fakeRecentCourseLister struct {
	courses map[uint][]model.Course
}

func (f *fakeRecentCourseLister) ListRecentByInstructors(instructorIDs []uint, limit int) ([]model.Course, error) {
	var out []model.Course
	for _, id := range instructorIDs {
		out = append(out, f.courses[id]...)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func followsTo(instructorIDs ...uint) []model.InstructorFollow {
	follows := make([]model.InstructorFollow, 0, len(instructorIDs))
	for _, id := range instructorIDs {
		follows = append(follows, model.InstructorFollow{StudentID: 1, InstructorID: id})
	}
	return follows
}

func TestBuildSubscriptions(t *testing.T) {
	directory := &fakeInstructorDirectory{
		profiles: map[uint]model.InstructorProfile{
			5: {BaseModel: model.BaseModel{ID: 5}, Name: "Ada"},
			7: {BaseModel: model.BaseModel{ID: 7}, Name: "Grace"},
		},
		followers: map[uint]int64{5: 12, 7: 4},
	}
	lister := &fakeRecentCourseLister{
		courses: map[uint][]model.Course{
			5: {
				{BaseModel: model.BaseModel{ID: 100}, Title: "Go Basics"},
				{BaseModel: model.BaseModel{ID: 101}, Title: "Advanced Go"},
			},
		},
	}

	t.Run("ProfileFollowersAndRecentCourses", func(t *testing.T) {
		subscriptions, err := buildSubscriptions(followsTo(5, 7), directory, lister)
		require.NoError(t, err)
		require.Len(t, subscriptions, 2)

		assert.Equal(t, "Ada", subscriptions[0].Instructor.Name)
		assert.Equal(t, int64(12), subscriptions[0].Followers)
		require.Len(t, subscriptions[0].RecentCourses, 2)
		assert.Equal(t, "Go Basics", subscriptions[0].RecentCourses[0].Title)

		assert.Equal(t, "Grace", subscriptions[1].Instructor.Name)
		assert.Equal(t, int64(4), subscriptions[1].Followers)
		assert.Empty(t, subscriptions[1].RecentCourses)
	})

	t.Run("RemovedProfileSkipped", func(t *testing.T) {
		subscriptions, err := buildSubscriptions(followsTo(5, 99), directory, lister)
		require.NoError(t, err)
		require.Len(t, subscriptions, 1)
		assert.Equal(t, uint(5), subscriptions[0].Instructor.ID)
	})

	t.Run("NoFollows", func(t *testing.T) {
		subscriptions, err := buildSubscriptions(nil, directory, lister)
		require.NoError(t, err)
		assert.NotNil(t, subscriptions)
		assert.Empty(t, subscriptions)
	})
}
