package web

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("member-%02d", i+1)
	}
	return out
}

func identity(s string) string { return s }

func TestListView_Pagination(t *testing.T) {
	v := NewListView(names(20), 1, "", identity)

	assert.Equal(t, 3, v.TotalPages())
	assert.Len(t, v.Visible(), PageSize)
	assert.Equal(t, "member-01", v.Visible()[0])
	assert.False(t, v.HasPrev())
	assert.True(t, v.HasNext())

	last := NewListView(names(20), 3, "", identity)
	assert.Equal(t, []string{"member-19", "member-20"}, last.Visible())
	assert.True(t, last.HasPrev())
	assert.False(t, last.HasNext())
	assert.Equal(t, []int{1, 2, 3}, last.Pages())
}

func TestListView_PageClamped(t *testing.T) {
	assert.Equal(t, 1, NewListView(names(5), -3, "", identity).Page)
	assert.Equal(t, 2, NewListView(names(10), 99, "", identity).Page)

	empty := NewListView([]string{}, 4, "", identity)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages())
	assert.Empty(t, empty.Visible())
}

func TestListView_SearchMode(t *testing.T) {
	v := NewListView(names(20), 2, "  MEMBER-1 ", identity)

	assert.True(t, v.SearchMode())
	// поиск идет по всему списку, а не по текущей странице
	assert.Equal(t, []string{
		"member-10", "member-11", "member-12", "member-13", "member-14",
		"member-15", "member-16", "member-17", "member-18", "member-19",
	}, v.Visible())
	assert.False(t, v.HasPrev())
	assert.False(t, v.HasNext())

	none := NewListView(names(3), 1, "zzz", identity)
	assert.NotNil(t, none.Visible())
	assert.Empty(t, none.Visible())
}
