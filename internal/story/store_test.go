package story

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/commonfire/storyshare/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStory(id, author string) model.Story {
	return model.Story{
		ID:        id,
		Title:     "The long walk home",
		Author:    author,
		Tag:       "memoir",
		Content:   "It was already dark when we finally left the station together.",
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestLoad_FreshEnvironmentInitializesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.json")
	s := NewStore(path)

	stories, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, stories)

	// The empty state must have been persisted, not just returned.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestLoad_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "stories.json")
	s := NewStore(path)

	_, err := s.Load()
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestAppendThenLoad_RoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "stories.json"))

	want := testStory("abc-123", "Mara")
	require.NoError(t, s.Append(want))

	stories, err := s.Load()
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, want, stories[0])
}

func TestAppend_PreservesInsertionOrder(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "stories.json"))

	require.NoError(t, s.Append(testStory("first", "Mara")))
	require.NoError(t, s.Append(testStory("second", "Iris")))
	require.NoError(t, s.Append(testStory("third", "Tomas")))

	stories, err := s.Load()
	require.NoError(t, err)
	require.Len(t, stories, 3)
	assert.Equal(t, "first", stories[0].ID)
	assert.Equal(t, "second", stories[1].ID)
	assert.Equal(t, "third", stories[2].ID)
}

func TestLoad_CorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := NewStore(path)

	_, err := s.Load()
	assert.Error(t, err)
}

func TestAppend_CorruptFileAbortsSubmission(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stories.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := NewStore(path)

	err := s.Append(testStory("abc", "Mara"))
	assert.Error(t, err)

	// The corrupt file must not have been overwritten.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestGet(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "stories.json"))
	require.NoError(t, s.Append(testStory("abc-123", "Mara")))

	got, err := s.Get("abc-123")
	require.NoError(t, err)
	assert.Equal(t, "Mara", got.Author)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
