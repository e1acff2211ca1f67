package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// recordSpec 描述一个记录的必填字段
type recordSpec struct {
	entity   string
	required []string
	// ids 中的字段出现且非 null 时必须为正整数
	ids []string
}

// decodeRecord 严格解码一个 JSON 对象：
//  1. 顶层必须是对象
//  2. 必填字段必须存在且不为 null
//  3. 字段类型不符报 TypeMismatch，不做默认值替换
//
// 未知字段忽略，枚举校验由各实体在解码后完成。
func decodeRecord(data []byte, spec recordSpec, dst any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return typeMismatch(spec.entity, "", "expected JSON object, got "+jsonKind(trimmed))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return typeMismatch(spec.entity, "", err.Error())
	}

	for _, name := range spec.required {
		raw, ok := fields[name]
		if !ok {
			return missingField(spec.entity, name)
		}
		if isNull(raw) {
			return typeMismatch(spec.entity, name, "required field is null")
		}
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		var schemaErr *SchemaError
		if errors.As(err, &schemaErr) {
			return err
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return typeMismatch(spec.entity, typeErr.Field,
				fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value))
		}
		return typeMismatch(spec.entity, "", err.Error())
	}
	return checkIDs(spec, fields)
}

func checkIDs(spec recordSpec, fields map[string]json.RawMessage) error {
	for _, name := range spec.ids {
		raw, ok := fields[name]
		if !ok || isNull(raw) {
			continue
		}
		var id int64
		if err := json.Unmarshal(raw, &id); err != nil {
			return typeMismatch(spec.entity, name, "expected integer id, got "+jsonKind(bytes.TrimSpace(raw)))
		}
		if id <= 0 {
			return invariant(spec.entity, name, ErrNonPositiveID)
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func jsonKind(raw []byte) string {
	if len(raw) == 0 {
		return "empty input"
	}
	switch raw[0] {
	case 'n':
		return "null"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	default:
		return "number"
	}
}

// Decode 将 JSON 解码为任意契约类型，错误均为 *SchemaError
func Decode[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	if err != nil {
		var schemaErr *SchemaError
		if !errors.As(err, &schemaErr) {
			err = typeMismatch(fmt.Sprintf("%T", v), "", err.Error())
		}
	}
	return v, err
}
