package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDataFile_EncodesTitle(t *testing.T) {
	r := DataFile("2025", "spring", "黑执事 绿魔女篇")
	assert.Equal(t, "/data/2025/spring/%E9%BB%91%E6%89%A7%E4%BA%8B%20%E7%BB%BF%E9%AD%94%E5%A5%B3%E7%AF%87.json", r.Path)
	assert.Equal(t, RouteData, r.Kind)

	assert.Equal(t, "/data/2025/spring/Re%3AZero.json", DataFile("2025", "spring", "Re:Zero").Path)
}

func TestEscapeComponent(t *testing.T) {
	cases := map[string]string{
		"Re:Zero":       "Re%3AZero",
		"a b":           "a%20b",
		"1+1=2":         "1%2B1%3D2",
		"A&B, C;D$@":    "A%26B%2C%20C%3BD%24%40",
		"x/y?z#w":       "x%2Fy%3Fz%23w",
		"Hi! (it's) *~": "Hi!%20(it's)%20*~",
		"-_.":           "-_.",
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeComponent(in), in)
	}
}

func TestActionRoutes(t *testing.T) {
	assert.Equal(t, "/tabs/year/2025", YearTab("2025").Path)
	assert.Equal(t, "/tabs/season/winter", SeasonTab("winter").Path)
	assert.Equal(t, "/cards/3", Card(3).Path)
	assert.Equal(t, "/detail/close", CloseDetail().Path)
	assert.Equal(t, "/tags/%E5%8E%9F%E5%88%9B", Tag("原创").Path)

	assert.Equal(t, "card index=3 path=/cards/3", Card(3).String())
	assert.Equal(t, "year key=2025 path=/tabs/year/2025", YearTab("2025").String())
}
