package anime

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

var errNotObject = errors.New("record must be a JSON object")

// Record 是单个作品 JSON 文件解析后的内容。
// title 同时作为展示名和文件名，没有独立的 id。
type Record struct {
	Title       string
	Icon        string
	Description string
	Tags        []string

	// 其余字段（首播日、集数……）统一按展示字符串保存，null 视为不存在。
	Fields map[string]string
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errNotObject
	}

	out := Record{Fields: make(map[string]string, len(raw))}
	for key, val := range raw {
		switch key {
		case "title":
			out.Title, _ = stringValue(val)
		case "icon":
			out.Icon, _ = stringValue(val)
		case "description":
			out.Description, _ = stringValue(val)
		case "tags":
			out.Tags = tagList(val)
		default:
			if s, ok := displayValue(val); ok {
				out.Fields[key] = s
			}
		}
	}
	*r = out
	return nil
}

// Field 返回可展示的字段值；不存在、null 或空串都算缺失。
func (r Record) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func stringValue(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// tags 不是数组时整体忽略。
func tagList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	tags := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := displayValue(item); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// 字符串原样返回，数字/布尔/对象保留字面量文本。
func displayValue(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", false
	}
	if raw[0] == '"' {
		return stringValue(raw)
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw)), true
	}
	return buf.String(), true
}
