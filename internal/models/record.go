package models

import (
	"strings"
	"time"
)

// Fields holds the form content of a stock entry record.
// A nil field means the value was left blank on the form.
type Fields struct {
	Date          *string `json:"date,omitempty"` // "from ~ to" date range
	LocationCode  *string `json:"locationCode,omitempty"`
	LocationName  *string `json:"locationName,omitempty"`
	LabelCode     *string `json:"labelCode,omitempty"`
	LabelName     *string `json:"labelName,omitempty"`
	ProductCode   *string `json:"productCode,omitempty"`
	ProductName   *string `json:"productName,omitempty"`
	LotCode       *string `json:"lotCode,omitempty"`
	LotNumber     *string `json:"lotNumber,omitempty"`
	OrderCode     *string `json:"orderCode,omitempty"`
	OrderNumber   *string `json:"orderNumber,omitempty"`
	MaterialCode  *string `json:"materialCode,omitempty"`
	MaterialName  *string `json:"materialName,omitempty"`
	WarehouseCode *string `json:"warehouseCode,omitempty"`
	WarehouseName *string `json:"warehouseName,omitempty"`
	Weight        *string `json:"weight,omitempty"`
	SpecValue     *string `json:"specValue,omitempty"`
	StockLocation *string `json:"stockLocation,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	PersonCode    *string `json:"personCode,omitempty"`
	PersonName    *string `json:"personName,omitempty"`
}

// absentMarker is how older saved data spelled a blank field
const absentMarker = "-"

// pointers returns every field slot in column order
func (f *Fields) pointers() []**string {
	return []**string{
		&f.Date,
		&f.LocationCode, &f.LocationName,
		&f.LabelCode, &f.LabelName,
		&f.ProductCode, &f.ProductName,
		&f.LotCode, &f.LotNumber,
		&f.OrderCode, &f.OrderNumber,
		&f.MaterialCode, &f.MaterialName,
		&f.WarehouseCode, &f.WarehouseName,
		&f.Weight, &f.SpecValue, &f.StockLocation, &f.Notes,
		&f.PersonCode, &f.PersonName,
	}
}

// Normalize turns blank and "-" placeholder values into nil.
func (f Fields) Normalize() Fields {
	for _, p := range f.pointers() {
		if *p == nil {
			continue
		}
		v := strings.TrimSpace(**p)
		if v == "" || v == absentMarker {
			*p = nil
			continue
		}
		*p = &v
	}
	return f
}

// Record is one stored form submission
type Record struct {
	ID int64 `json:"id"`
	Fields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreState is the persisted snapshot of the record store
type StoreState struct {
	Records []Record `json:"records"`
	NextID  int64    `json:"nextId"`
}

// MaxID returns the largest record id in the snapshot, or 0 when empty
func (s StoreState) MaxID() int64 {
	var max int64
	for _, r := range s.Records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
