package contract

import "encoding/json"

// APIResponse 列表接口的分页信封，对所有实体通用。
// Next / Previous 相互独立，可以都有、都没有或只有其一。
type APIResponse[T any] struct {
	Results  []T              `json:"results"`
	Count    int64            `json:"count"`
	Next     Optional[string] `json:"next,omitzero"`
	Previous Optional[string] `json:"previous,omitzero"`
}

// envelopeWire 与 APIResponse 字段一致、不带方法，避免递归调用
type envelopeWire[T any] struct {
	Results  []T              `json:"results"`
	Count    int64            `json:"count"`
	Next     Optional[string] `json:"next,omitzero"`
	Previous Optional[string] `json:"previous,omitzero"`
}

var envelopeSpec = recordSpec{
	entity:   "ApiResponse",
	required: []string{"results", "count"},
}

// NewAPIResponse 构造并校验信封
func NewAPIResponse[T any](results []T, count int64, next, previous Optional[string]) (APIResponse[T], error) {
	if results == nil {
		results = []T{}
	}
	r := APIResponse[T]{
		Results:  results,
		Count:    count,
		Next:     next,
		Previous: previous,
	}
	return r, r.Validate()
}

// Validate count 不能为负，也不能小于本页结果数
func (r APIResponse[T]) Validate() error {
	if r.Count < 0 {
		return &SchemaError{Kind: ErrInvariantViolation, Entity: envelopeSpec.entity, Field: "count", Detail: "count must not be negative"}
	}
	if r.Count < int64(len(r.Results)) {
		return invariant(envelopeSpec.entity, "count", ErrCountBelowLength)
	}
	return nil
}

func (r APIResponse[T]) MarshalJSON() ([]byte, error) {
	if r.Results == nil {
		r.Results = []T{}
	}
	return json.Marshal(envelopeWire[T](r))
}

func (r *APIResponse[T]) UnmarshalJSON(data []byte) error {
	var w envelopeWire[T]
	if err := decodeRecord(data, envelopeSpec, &w); err != nil {
		return err
	}
	*r = APIResponse[T](w)
	return r.Validate()
}
