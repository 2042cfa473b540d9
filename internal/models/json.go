package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Weights stores a project's category name to percentage weight mapping as a
// JSON column. Wraps gorm.io/datatypes.JSON so the column type can be mapped
// per database driver.
type Weights struct {
	datatypes.JSON
}

// NewWeights builds a Weights column value from a category weight map.
func NewWeights(m map[string]float64) (Weights, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return Weights{}, err
	}
	return Weights{JSON: datatypes.JSON(raw)}, nil
}

// Map decodes the stored weight mapping. An empty column decodes to an empty map.
func (w Weights) Map() (map[string]float64, error) {
	if len(w.JSON) == 0 {
		return map[string]float64{}, nil
	}
	var m map[string]float64
	if err := json.Unmarshal(w.JSON, &m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]float64{}
	}
	return m, nil
}

// Value promotes the embedded JSON's Value method
func (w Weights) Value() (driver.Value, error) {
	return w.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method
func (w *Weights) Scan(value interface{}) error {
	return w.JSON.Scan(value)
}

// GormDBDataType ensures the correct data type is used for each database driver.
// This resolves the issue where MSSQL does not support the 'json' data type.
func (Weights) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}
