package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPush(t *testing.T) {
	t.Parallel()

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()
		var list []Entry
		list = Push(list, Entry{ID: "p1", Category: "shoes"})
		list = Push(list, Entry{ID: "p2", Category: "hats"})
		assert.Equal(t, []string{"p2", "p1"}, IDs(list))
	})

	t.Run("re-adding moves to front", func(t *testing.T) {
		t.Parallel()
		var list []Entry
		for _, id := range []string{"p1", "p2", "p1"} {
			list = Push(list, Entry{ID: id})
		}
		assert.Equal(t, []string{"p1", "p2"}, IDs(list))
	})

	t.Run("eleventh view evicts the oldest", func(t *testing.T) {
		t.Parallel()
		var list []Entry
		for i := 1; i <= 11; i++ {
			list = Push(list, Entry{ID: fmt.Sprintf("p%d", i)})
		}
		require.Len(t, list, MaxEntries)
		assert.Equal(t, "p11", list[0].ID)
		assert.Equal(t, "p2", list[MaxEntries-1].ID)
		assert.NotContains(t, IDs(list), "p1")
	})

	t.Run("re-adding a full list keeps length", func(t *testing.T) {
		t.Parallel()
		var list []Entry
		for i := 1; i <= MaxEntries; i++ {
			list = Push(list, Entry{ID: fmt.Sprintf("p%d", i)})
		}
		list = Push(list, Entry{ID: "p1"})
		require.Len(t, list, MaxEntries)
		assert.Equal(t, "p1", list[0].ID)
		assert.ElementsMatch(t, []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10"}, IDs(list))
	})

	t.Run("input is not modified", func(t *testing.T) {
		t.Parallel()
		in := []Entry{{ID: "p1"}, {ID: "p2"}}
		_ = Push(in, Entry{ID: "p2"})
		assert.Equal(t, []Entry{{ID: "p1"}, {ID: "p2"}}, in)
	})
}

func TestCategories(t *testing.T) {
	t.Parallel()
	list := []Entry{{ID: "a", Category: "shoes"}, {ID: "b", Category: "shoes"}, {ID: "c"}}
	assert.Equal(t, []string{"shoes", "shoes", ""}, Categories(list))
}
