package index

import (
	"encoding/json"
	"errors"
	bolt "go.etcd.io/bbolt"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("not found")

type TagStat struct {
	Name  string
	Count int
}

// ListByTag 按 年份→季度→季度内顺序 返回带有该标签的作品。
func (s *Store) ListByTag(tag string) ([]Entry, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, ErrNotFound
	}
	var out []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxTag)
		entryB := tx.Bucket(bEntry)
		if idx == nil || entryB == nil {
			return ErrNotFound
		}
		sb := idx.Bucket([]byte(tag))
		if sb == nil {
			return ErrNotFound
		}
		return sb.ForEach(func(k, _ []byte) error {
			v := entryB.Get(k)
			if v == nil {
				return nil
			}
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			out = append(out, e)
			return nil
		})
	})
	return out, err
}

// TagStats 按数量降序、同数量按名称升序。
func (s *Store) TagStats() ([]TagStat, error) {
	var stats []TagStat
	err := s.db.View(func(tx *bolt.Tx) error {
		idx := tx.Bucket(bIdxTag)
		if idx == nil {
			return nil
		}
		return idx.ForEachBucket(func(name []byte) error {
			n := 0
			if err := idx.Bucket(name).ForEach(func(_, _ []byte) error {
				n++
				return nil
			}); err != nil {
				return err
			}
			stats = append(stats, TagStat{Name: string(name), Count: n})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Name < stats[j].Name
		}
		return stats[i].Count > stats[j].Count
	})
	return stats, nil
}
