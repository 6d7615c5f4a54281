package types

import "encoding/json"

// LooseString 只接受 JSON 字符串，其它类型（数字、对象、布尔）解码为空串而不报错，
// 由后续的字段校验给出对应的缺失提示.
type LooseString string

// UnmarshalJSON 实现 json.Unmarshaler.
func (s *LooseString) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		*s = ""
		return nil
	}

	*s = LooseString(v)

	return nil
}

// LooseBool 只有 JSON true 解码为 true，其余值均为 false.
type LooseBool bool

// UnmarshalJSON 实现 json.Unmarshaler.
func (v *LooseBool) UnmarshalJSON(b []byte) error {
	var x bool
	if err := json.Unmarshal(b, &x); err != nil {
		*v = false
		return nil
	}

	*v = LooseBool(x)

	return nil
}
