package model

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ErrInvalidID 标识符无法解析为 ObjectID 形式.
var ErrInvalidID = errors.New("invalid id")

// ID 记录标识符，与 MongoDB ObjectID 同构（12 字节，对外为 24 位小写十六进制）.
type ID [12]byte

// NilID 零值标识符.
var NilID ID

// NewID 生成新的标识符.
func NewID() ID {
	return ID(bson.NewObjectID())
}

// ParseID 解析外部传入的标识符，格式不符时返回 ErrInvalidID.
func ParseID(s string) (ID, error) {
	var id ID

	if len(s) != hex.EncodedLen(len(id)) {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return NilID, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}

	return id, nil
}

// String 返回 24 位十六进制表示.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero 是否为零值.
func (id ID) IsZero() bool {
	return id == NilID
}

// ObjectID 转换为 MongoDB ObjectID.
func (id ID) ObjectID() bson.ObjectID {
	return bson.ObjectID(id)
}

// MarshalText 实现 encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(b []byte) error {
	parsed, err := ParseID(string(b))
	if err != nil {
		return err
	}

	*id = parsed

	return nil
}

// Value 实现 driver.Valuer，SQL 中以十六进制字符串存储.
func (id ID) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan 实现 sql.Scanner.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	case nil:
		*id = NilID
		return nil
	default:
		return fmt.Errorf("cannot scan %T into model.ID", src)
	}
}
