package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringList is a list of strings persisted as a JSON array in a text column.
// Used for idea tags and user skills. A nil list is stored as NULL; stored
// text that fails to decode scans as an empty list.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	if len(data) == 0 {
		*l = nil
		return nil
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
			// Tolerate legacy junk in the column instead of failing the read
			*l = StringList{}
			return nil
		}
		return err
	}
	*l = StringList(out)
	return nil
}
