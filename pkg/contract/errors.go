package contract

import (
	"errors"
	"fmt"
	"strings"
)

// 反序列化 / 校验失败的类别，可用 errors.Is 判断
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrUnknownEnumValue     = errors.New("unknown enum value")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrInvariantViolation   = errors.New("invariant violation")
)

// 具体的不变量错误
var (
	ErrPasswordMismatch = errors.New("password and password_confirm do not match")
	ErrEmptyVideoFile   = errors.New("video_file must be a non-empty binary payload")
	ErrNonPositiveID    = errors.New("id must be a positive integer")
	ErrCountBelowLength = errors.New("count is smaller than the number of results")
)

// SchemaError 结构化的契约错误，调用方可以据此决定重试、丢弃或告警
type SchemaError struct {
	Kind    error
	Entity  string
	Field   string
	Value   string
	Allowed []string
	Detail  string
	Err     error
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Entity != "" || e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Entity)
		if e.Field != "" {
			if e.Entity != "" {
				b.WriteString(".")
			}
			b.WriteString(e.Field)
		}
	}
	if e.Value != "" {
		fmt.Fprintf(&b, " (got %q", e.Value)
		if len(e.Allowed) > 0 {
			fmt.Fprintf(&b, ", allowed: %s", strings.Join(e.Allowed, ", "))
		}
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *SchemaError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindName 返回错误类别名，HTTP 层用作 error.type
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrMissingRequiredField):
		return "MissingRequiredField"
	case errors.Is(err, ErrUnknownEnumValue):
		return "UnknownEnumValue"
	case errors.Is(err, ErrTypeMismatch):
		return "TypeMismatch"
	case errors.Is(err, ErrInvariantViolation):
		return "InvariantViolation"
	default:
		return ""
	}
}

func missingField(entity, field string) error {
	return &SchemaError{Kind: ErrMissingRequiredField, Entity: entity, Field: field}
}

func unknownEnum(entity, field, value string, allowed []string) error {
	return &SchemaError{Kind: ErrUnknownEnumValue, Entity: entity, Field: field, Value: value, Allowed: allowed}
}

func typeMismatch(entity, field, detail string) error {
	return &SchemaError{Kind: ErrTypeMismatch, Entity: entity, Field: field, Detail: detail}
}

func invariant(entity, field string, err error) error {
	return &SchemaError{Kind: ErrInvariantViolation, Entity: entity, Field: field, Err: err}
}
