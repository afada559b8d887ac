package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Issues is the JSON column holding a repository's embedded issues.
type Issues []Issue

// Value implements driver.Valuer.
func (i Issues) Value() (driver.Value, error) {
	if i == nil {
		i = Issues{}
	}
	return marshalJSON(i)
}

// Scan implements sql.Scanner.
func (i *Issues) Scan(src any) error {
	return unmarshalJSON(src, i)
}

// StringList is a JSON column holding an ordered list of strings.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return marshalJSON(s)
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src any) error {
	return unmarshalJSON(src, s)
}

func marshalJSON(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func unmarshalJSON(src any, dst any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
