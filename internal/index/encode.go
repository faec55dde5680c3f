package index

import (
	"animeseason/internal/domain/anime"
	"encoding/binary"
)

func seasonOrdinal(s anime.Season) byte {
	for i, v := range anime.Seasons {
		if v == s {
			return byte(i)
		}
	}
	return 0xff
}

// key = year + 0x00 + season(1) + order(2) + title
// 按年份、季度、季度内顺序排列。
func makeEntryKey(year string, season anime.Season, order int, title string) []byte {
	if order < 0 {
		order = 0
	}
	if order > 0xffff {
		order = 0xffff
	}
	buf := make([]byte, 0, len(year)+1+1+2+len(title))
	buf = append(buf, []byte(year)...)
	buf = append(buf, 0x00)
	buf = append(buf, seasonOrdinal(season))

	tmp2 := make([]byte, 2)
	binary.BigEndian.PutUint16(tmp2, uint16(order))
	buf = append(buf, tmp2...)

	buf = append(buf, []byte(title)...)
	return buf
}
