package index

import (
	"animeseason/internal/domain/anime"
	"animeseason/internal/source"
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"strings"
)

type Entry struct {
	Year   string       `json:"year"`
	Season anime.Season `json:"season"`
	Title  string       `json:"title"`
	Tags   []string     `json:"tags,omitempty"`
}

// Rebuild 清空后整体重写，entries 的顺序无关紧要。
func (s *Store) Rebuild(entries []source.Entry) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		_ = tx.DeleteBucket(bEntry)
		_ = tx.DeleteBucket(bIdxTag)

		entryB, err := tx.CreateBucket(bEntry)
		if err != nil {
			return err
		}
		idxTagB, err := tx.CreateBucket(bIdxTag)
		if err != nil {
			return err
		}

		for _, e := range entries {
			title := strings.TrimSpace(e.Record.Title)
			if title == "" {
				continue
			}
			key := makeEntryKey(e.Year, e.Season, e.Order, title)
			tags := normalizeTags(e.Record.Tags)

			eb, err := json.Marshal(Entry{
				Year:   e.Year,
				Season: e.Season,
				Title:  title,
				Tags:   tags,
			})
			if err != nil {
				return err
			}
			if err := entryB.Put(key, eb); err != nil {
				return err
			}

			for _, tag := range tags {
				sb, err := idxTagB.CreateBucketIfNotExists([]byte(tag))
				if err != nil {
					return err
				}
				if err := sb.Put(key, []byte{1}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// 去空白、去重，保留原始大小写（标签多为中文）。
func normalizeTags(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
