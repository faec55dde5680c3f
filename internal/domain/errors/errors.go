package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalid    = errors.New("invalid")
	ErrSeasonLoad = errors.New("season load failed")
)

type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationError struct {
	Items []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "validation failed"
	}

	var b strings.Builder
	b.WriteString("validation failed:\n")
	for _, item := range e.Items {
		b.WriteString(" - ")
		b.WriteString(item.Error())
		b.WriteString("\n")
	}
	return b.String()
}

func (e *ValidationError) Add(field, msg string) {
	e.Items = append(e.Items, FieldError{
		Field:   field,
		Message: msg,
	})
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

func (e ValidationError) HasAny() bool {
	return len(e.Items) > 0
}

// SeasonLoadError 表示一个季度批量加载中某个文件失败，整批作废。
// Status 为 0 时说明不是 HTTP 状态码问题（读取或解析失败）。
type SeasonLoadError struct {
	File   string
	Status int
	Err    error
}

// Error 就是页面上展示的文案，只含文件名。
// 状态码和底层错误可能带本地路径，只通过 Detail 进日志。
func (e *SeasonLoadError) Error() string {
	return "无法加载文件: " + e.File
}

// Detail 返回失败原因，没有时为空串。
func (e *SeasonLoadError) Detail() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("HTTP %d", e.Status)
	case e.Err != nil:
		return e.Err.Error()
	}
	return ""
}

func (e *SeasonLoadError) Unwrap() error {
	return e.Err
}

func (e *SeasonLoadError) Is(target error) bool {
	return target == ErrSeasonLoad
}
