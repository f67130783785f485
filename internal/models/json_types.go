package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OptionList mirrors the JSON structure stored in questions.options.
type OptionList []Option

// StringList is a JSON-encoded list of usernames, used for note
// recipients and study group members. Semantically an unordered set.
type StringList []string

// Scan implements sql.Scanner
func (o *OptionList) Scan(src any) error {
	if src == nil {
		*o = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*o = nil
			return nil
		}
		return json.Unmarshal(data, o)
	case string:
		if data == "" {
			*o = nil
			return nil
		}
		return json.Unmarshal([]byte(data), o)
	default:
		return fmt.Errorf("OptionList: unsupported src type %T", src)
	}
}

// Value implements driver.Valuer
func (o OptionList) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Scan implements sql.Scanner
func (s *StringList) Scan(src any) error {
	if src == nil {
		*s = nil
		return nil
	}
	switch data := src.(type) {
	case []byte:
		if len(data) == 0 {
			*s = nil
			return nil
		}
		return json.Unmarshal(data, s)
	case string:
		if data == "" {
			*s = nil
			return nil
		}
		return json.Unmarshal([]byte(data), s)
	default:
		return fmt.Errorf("StringList: unsupported src type %T", src)
	}
}

// Value implements driver.Valuer
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Contains reports whether username is in the list.
func (s StringList) Contains(username string) bool {
	for _, u := range s {
		if u == username {
			return true
		}
	}
	return false
}
