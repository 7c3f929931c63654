package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// PermissionMap maps permission keys (e.g. ADMIN_BIN_MNG_CREATE) to grants.
// Stored as JSONB.
type PermissionMap map[string]bool

func (m PermissionMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *PermissionMap) Scan(value interface{}) error {
	if value == nil {
		*m = PermissionMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported permissions type %T", value)
	}
	return json.Unmarshal(data, m)
}
