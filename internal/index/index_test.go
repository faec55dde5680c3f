package index

import (
	"path/filepath"
	"testing"

	"animeseason/internal/domain/anime"
	"animeseason/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	st, err := Open(OpenOptions{Path: filepath.Join(t.TempDir(), "sub", "index.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func entry(year string, season anime.Season, order int, title string, tags ...string) source.Entry {
	return source.Entry{
		Year:   year,
		Season: season,
		Order:  order,
		Record: anime.Record{Title: title, Tags: tags},
	}
}

func TestRebuild_ListByTagOrdered(t *testing.T) {
	st := openTemp(t)

	require.NoError(t, st.Rebuild([]source.Entry{
		entry("2025", anime.Spring, 1, "前桥魔女", "原创", "魔法少女"),
		entry("2025", anime.Winter, 0, "W", "原创"),
		entry("2024", anime.Autumn, 0, "Old", "原创", " 原创 "),
		entry("2025", anime.Spring, 0, "黑执事 绿魔女篇", "漫改"),
		entry("2025", anime.Spring, 2, "", "原创"),
	}))

	got, err := st.ListByTag("原创")
	require.NoError(t, err)

	var titles []string
	for _, e := range got {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"Old", "W", "前桥魔女"}, titles)
	assert.Equal(t, anime.Spring, got[2].Season)
	assert.Equal(t, []string{"原创"}, got[0].Tags)

	_, err = st.ListByTag("没有")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.ListByTag(" ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRebuild_ReplacesPreviousContent(t *testing.T) {
	st := openTemp(t)

	require.NoError(t, st.Rebuild([]source.Entry{entry("2025", anime.Spring, 0, "A", "x")}))
	require.NoError(t, st.Rebuild([]source.Entry{entry("2025", anime.Spring, 0, "B", "y")}))

	_, err := st.ListByTag("x")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := st.ListByTag("y")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Title)
}

func TestTagStats(t *testing.T) {
	st := openTemp(t)

	stats, err := st.TagStats()
	require.NoError(t, err)
	assert.Empty(t, stats)

	require.NoError(t, st.Rebuild([]source.Entry{
		entry("2025", anime.Spring, 0, "A", "b", "a"),
		entry("2025", anime.Spring, 1, "B", "c", "a"),
		entry("2025", anime.Spring, 2, "C", "b"),
		entry("2025", anime.Spring, 3, "D", "z"),
	}))

	stats, err = st.TagStats()
	require.NoError(t, err)
	assert.Equal(t, []TagStat{
		{Name: "a", Count: 2},
		{Name: "b", Count: 2},
		{Name: "c", Count: 1},
		{Name: "z", Count: 1},
	}, stats)
}

func TestOpen_MissingPath(t *testing.T) {
	_, err := Open(OpenOptions{})
	assert.Error(t, err)
}
