package platform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpad/internal/platform"
	"inkpad/pkg/core"
	"inkpad/pkg/storage"
)

func TestNew_FileBacked(t *testing.T) {
	dir := t.TempDir()

	st, err := platform.New(dir)
	require.NoError(t, err)

	note := st.AddNote("Persisted", "body", nil)
	require.Nil(t, st.LastError(), "write to a fresh directory should persist")

	// A second instance over the same directory sees the note.
	st2, err := platform.New(dir)
	require.NoError(t, err)

	got, ok := st2.NoteByID(note.ID)
	require.True(t, ok, "note should survive across instances")
	assert.Equal(t, "Persisted", got.Title)
}

func TestNew_Memory(t *testing.T) {
	st, err := platform.New("", platform.WithMemory(true))
	require.NoError(t, err)

	st.AddNote("Ephemeral", "", nil)
	assert.Len(t, st.Notes(), 1)
	assert.Nil(t, st.LastError())
}

func TestNew_MemoryQuota(t *testing.T) {
	st, err := platform.New("", platform.WithMemory(true), platform.WithQuota(400))
	require.NoError(t, err)

	// Small note fits; a large one trips the quota but stays in memory.
	st.AddNote("A", "", nil)
	first := st.LastError()

	st.AddNote("B", string(make([]byte, 4096)), nil)
	assert.Nil(t, first)
	require.NotNil(t, st.LastError())
	assert.Equal(t, storage.KindQuotaExceeded, st.LastError().Kind)
	assert.Len(t, st.Notes(), 2, "quota failure must not roll back the edit")
}

func TestNew_SeedTags(t *testing.T) {
	seeds := []core.Tag{{ID: "custom", Name: "custom", Color: "#000000"}}
	st, err := platform.New("", platform.WithMemory(true), platform.WithSeedTags(seeds))
	require.NoError(t, err)

	tags := st.Tags()
	require.Len(t, tags, 1)
	assert.Equal(t, "custom", tags[0].ID)
}

func TestNew_CombinedState(t *testing.T) {
	dir := t.TempDir()

	st, err := platform.New(dir, platform.WithCombinedState(true))
	require.NoError(t, err)
	st.AddNote("Blob", "", nil)

	st2, err := platform.New(dir, platform.WithCombinedState(true))
	require.NoError(t, err)
	assert.Len(t, st2.Notes(), 1)
}
