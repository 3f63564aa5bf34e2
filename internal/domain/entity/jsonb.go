package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// jsonbValue marshals a Go value into a driver value for a jsonb column.
func jsonbValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal jsonb column: %w", err)
	}
	return b, nil
}

// jsonbScan unmarshals a jsonb column into dst. A NULL column leaves dst
// untouched.
func jsonbScan(dst interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported source type for jsonb column")
	}
}
