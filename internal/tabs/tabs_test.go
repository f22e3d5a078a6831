package tabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titlesFor(r *Registry, winID string) []string {
	var out []string
	for _, tab := range r.TabsFor(winID) {
		out = append(out, tab.Title)
	}
	return out
}

func TestRegistryOrdering(t *testing.T) {
	r := NewRegistry()
	a := r.NewTab("win1", "a", "https://a.example")
	b := r.NewTab("win1", "b", "https://b.example")
	c := r.NewTab("win1", "c", "https://c.example")

	assert.Equal(t, []string{"a", "b", "c"}, titlesFor(r, "win1"))
	assert.Equal(t, 3, r.Count("win1"))
	assert.Equal(t, 0, r.IndexOf(a.ID))
	assert.Equal(t, 2, r.IndexOf(c.ID))

	owner, ok := r.Owner(b.ID)
	require.True(t, ok)
	assert.Equal(t, "win1", owner)
}

func TestReindex(t *testing.T) {
	r := NewRegistry()
	a := r.NewTab("win1", "a", "")
	r.NewTab("win1", "b", "")
	r.NewTab("win1", "c", "")

	var gotTab, gotWin string
	gotIndex := -1
	r.OnReindexed = func(tabID, windowID string, index int) {
		gotTab, gotWin, gotIndex = tabID, windowID, index
	}

	require.NoError(t, r.Reindex(a.ID, 2))
	assert.Equal(t, []string{"b", "c", "a"}, titlesFor(r, "win1"))
	assert.Equal(t, a.ID, gotTab)
	assert.Equal(t, "win1", gotWin)
	assert.Equal(t, 2, gotIndex)

	// Same index is a no-op and must not notify.
	gotIndex = -1
	require.NoError(t, r.Reindex(a.ID, 2))
	assert.Equal(t, -1, gotIndex)
}

func TestReindexClamps(t *testing.T) {
	r := NewRegistry()
	a := r.NewTab("win1", "a", "")
	r.NewTab("win1", "b", "")

	require.NoError(t, r.Reindex(a.ID, 99))
	assert.Equal(t, []string{"b", "a"}, titlesFor(r, "win1"))

	require.NoError(t, r.Reindex(a.ID, -5))
	assert.Equal(t, []string{"a", "b"}, titlesFor(r, "win1"))
}

func TestMoveToWindow(t *testing.T) {
	r := NewRegistry()
	a := r.NewTab("win1", "a", "")
	r.NewTab("win1", "b", "")
	r.NewTab("win2", "x", "")

	attached := 0
	r.OnAttached = func(tabID, windowID string, index int) {
		attached++
		assert.Equal(t, a.ID, tabID)
		assert.Equal(t, "win2", windowID)
		assert.Equal(t, 0, index)
	}

	require.NoError(t, r.MoveToWindow(a.ID, "win2", 0))
	assert.Equal(t, []string{"b"}, titlesFor(r, "win1"))
	assert.Equal(t, []string{"a", "x"}, titlesFor(r, "win2"))
	assert.Equal(t, 1, attached)

	// Re-delivering the same placement is a no-op.
	require.NoError(t, r.MoveToWindow(a.ID, "win2", 0))
	assert.Equal(t, 1, attached)

	assert.Error(t, r.MoveToWindow("nope", "win2", 0))
}

func TestUnpinnedFor(t *testing.T) {
	r := NewRegistry()
	r.NewTab("win1", "a", "").Pinned = true
	r.NewTab("win1", "b", "")
	r.NewTab("win1", "c", "")

	unpinned := r.UnpinnedFor("win1")
	require.Len(t, unpinned, 2)
	assert.Equal(t, "b", unpinned[0].Title)
	assert.Equal(t, "c", unpinned[1].Title)
}

func TestClose(t *testing.T) {
	r := NewRegistry()
	a := r.NewTab("win1", "a", "")
	r.NewTab("win1", "b", "")

	r.Close(a.ID)
	assert.Equal(t, []string{"b"}, titlesFor(r, "win1"))
	assert.Nil(t, r.Get(a.ID))
	_, ok := r.Owner(a.ID)
	assert.False(t, ok)
}
