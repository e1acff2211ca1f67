package contract

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Optional 可缺省字段。Set=false 表示字段在报文中不存在，
// 与"存在但为空值"严格区分。
//
// 序列化时需配合 `json:",omitzero"` 使用，缺省字段不会输出。
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some 构造一个存在的值
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// None 构造一个缺省值
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// FromPtr nil 指针视为缺省（常用于 gorm 可空列）
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Optional[T]{}
	}
	return Some(*p)
}

// Present 字段是否存在
func (o Optional[T]) Present() bool {
	return o.Set
}

// Get 返回值和是否存在
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrElse 缺省时返回 fallback
func (o Optional[T]) OrElse(fallback T) T {
	if !o.Set {
		return fallback
	}
	return o.Value
}

// Ptr 转回指针形式，缺省返回 nil
func (o Optional[T]) Ptr() *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}

// Blank 字段存在但值为零值（空字符串、0 等）。
// 这通常是上游的数据质量问题，调用方应自行决定如何处理。
func (o Optional[T]) Blank() bool {
	if !o.Set {
		return false
	}
	rv := reflect.ValueOf(o.Value)
	if !rv.IsValid() {
		return true
	}
	if rv.Kind() == reflect.Slice {
		return rv.Len() == 0
	}
	return rv.IsZero()
}

// IsZero 供 encoding/json 的 omitzero 使用
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// UnmarshalJSON null 按缺省处理
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = v
	o.Set = true
	return nil
}
