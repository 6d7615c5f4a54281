package types

import (
	"bytes"
	"encoding/json"

	"github.com/yeisme/filevault/pkg/internal/model"
)

// ParentRef 请求与响应中的 parentId. 根目录在响应中编码为数字 0，
// 请求中 0、"0"、""、null 或缺省都表示根目录.
type ParentRef string

// String 返回规范化后的父目录 ID.
func (p ParentRef) String() string {
	if model.IsRoot(string(p)) {
		return model.RootParentID
	}

	return string(p)
}

// MarshalJSON 实现 json.Marshaler.
func (p ParentRef) MarshalJSON() ([]byte, error) {
	if model.IsRoot(string(p)) {
		return []byte("0"), nil
	}

	return json.Marshal(string(p))
}

// UnmarshalJSON 实现 json.Unmarshaler.
func (p *ParentRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)

	switch {
	case bytes.Equal(b, []byte("null")):
		*p = ParentRef(model.RootParentID)
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*p = ParentRef(s)

		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			// 非字符串非数字保留原文，查找时得到 Parent not found
			*p = ParentRef(b)
			return nil
		}

		*p = ParentRef(n.String())

		return nil
	}
}
