// Package form converts between raw form input, stored records and the
// display strings used in table cells.
package form

import (
	"strconv"
	"strings"

	"github.com/xelth-com/eckform/internal/models"
)

// Sentinel is shown in place of a blank field
const Sentinel = "-"

const (
	dateSeparator     = "~"
	combinedSeparator = " - "
)

// Input is the raw content of the entry form. Code fields come from
// select boxes, the rest from text inputs.
type Input struct {
	DateFrom      string `json:"dateFrom"`
	DateTo        string `json:"dateTo"`
	LocationCode  string `json:"locationCode"`
	LocationName  string `json:"locationName"`
	LabelCode     string `json:"labelCode"`
	LabelName     string `json:"labelName"`
	ProductCode   string `json:"productCode"`
	ProductName   string `json:"productName"`
	LotCode       string `json:"lotCode"`
	LotNumber     string `json:"lotNumber"`
	OrderCode     string `json:"orderCode"`
	OrderNumber   string `json:"orderNumber"`
	MaterialCode  string `json:"materialCode"`
	MaterialName  string `json:"materialName"`
	WarehouseCode string `json:"warehouseCode"`
	WarehouseName string `json:"warehouseName"`
	Weight        string `json:"weight"`
	SpecValue     string `json:"specValue"`
	StockLocation string `json:"stockLocation"`
	Notes         string `json:"notes"`
	PersonCode    string `json:"personCode"`
	PersonName    string `json:"personName"`
}

// Fields gathers the input into record fields. Blank inputs become absent.
func (in Input) Fields() models.Fields {
	return models.Fields{
		Date:          optional(FormatDateRange(in.DateFrom, in.DateTo)),
		LocationCode:  optional(in.LocationCode),
		LocationName:  optional(in.LocationName),
		LabelCode:     optional(in.LabelCode),
		LabelName:     optional(in.LabelName),
		ProductCode:   optional(in.ProductCode),
		ProductName:   optional(in.ProductName),
		LotCode:       optional(in.LotCode),
		LotNumber:     optional(in.LotNumber),
		OrderCode:     optional(in.OrderCode),
		OrderNumber:   optional(in.OrderNumber),
		MaterialCode:  optional(in.MaterialCode),
		MaterialName:  optional(in.MaterialName),
		WarehouseCode: optional(in.WarehouseCode),
		WarehouseName: optional(in.WarehouseName),
		Weight:        optional(in.Weight),
		SpecValue:     optional(in.SpecValue),
		StockLocation: optional(in.StockLocation),
		Notes:         optional(in.Notes),
		PersonCode:    optional(in.PersonCode),
		PersonName:    optional(in.PersonName),
	}.Normalize()
}

// FromRecord fills a form from a stored record, for editing
func FromRecord(r models.Record) Input {
	from, to := ParseDateRange(value(r.Date))
	return Input{
		DateFrom:      from,
		DateTo:        to,
		LocationCode:  value(r.LocationCode),
		LocationName:  value(r.LocationName),
		LabelCode:     value(r.LabelCode),
		LabelName:     value(r.LabelName),
		ProductCode:   value(r.ProductCode),
		ProductName:   value(r.ProductName),
		LotCode:       value(r.LotCode),
		LotNumber:     value(r.LotNumber),
		OrderCode:     value(r.OrderCode),
		OrderNumber:   value(r.OrderNumber),
		MaterialCode:  value(r.MaterialCode),
		MaterialName:  value(r.MaterialName),
		WarehouseCode: value(r.WarehouseCode),
		WarehouseName: value(r.WarehouseName),
		Weight:        value(r.Weight),
		SpecValue:     value(r.SpecValue),
		StockLocation: value(r.StockLocation),
		Notes:         value(r.Notes),
		PersonCode:    value(r.PersonCode),
		PersonName:    value(r.PersonName),
	}
}

// FormatDateRange renders "from ~ to", or whichever side is set
func FormatDateRange(from, to string) string {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	switch {
	case from != "" && to != "":
		return from + " " + dateSeparator + " " + to
	case from != "":
		return from
	default:
		return to
	}
}

// ParseDateRange splits "from ~ to". A value without the separator is
// treated as the start date.
func ParseDateRange(text string) (from, to string) {
	text = strings.TrimSpace(text)
	if text == "" || text == Sentinel {
		return "", ""
	}
	before, after, found := strings.Cut(text, dateSeparator)
	if !found {
		return text, ""
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// Display returns the value of an optional field or the sentinel
func Display(v *string) string {
	if v == nil || *v == "" {
		return Sentinel
	}
	return *v
}

// FormatCombined renders a code/name pair as "code - name". When one half
// is missing the other is shown alone.
func FormatCombined(code, name *string) string {
	c, n := Display(code), Display(name)
	if c != Sentinel && n != Sentinel {
		return c + combinedSeparator + n
	}
	if n != Sentinel {
		return n
	}
	return c
}

// ParseCombined reverses FormatCombined. Only the first separator splits,
// so names may contain " - " themselves.
func ParseCombined(text string) (code, name string) {
	before, after, found := strings.Cut(text, combinedSeparator)
	if !found {
		return text, text
	}
	return before, after
}

// Columns are the table headers in cell order
var Columns = []string{
	"#", "Date", "Location", "Label", "Product", "Lot", "Order", "Material",
	"Warehouse", "Weight", "Spec", "Stock location", "Notes", "Person",
}

// Row renders the table cells of a record. rowNumber is the position in
// the whole collection, not the page.
func Row(r models.Record, rowNumber int) []string {
	return []string{
		strconv.Itoa(rowNumber),
		Display(r.Date),
		FormatCombined(r.LocationCode, r.LocationName),
		FormatCombined(r.LabelCode, r.LabelName),
		FormatCombined(r.ProductCode, r.ProductName),
		FormatCombined(r.LotCode, r.LotNumber),
		FormatCombined(r.OrderCode, r.OrderNumber),
		FormatCombined(r.MaterialCode, r.MaterialName),
		FormatCombined(r.WarehouseCode, r.WarehouseName),
		Display(r.Weight),
		Display(r.SpecValue),
		Display(r.StockLocation),
		Display(r.Notes),
		FormatCombined(r.PersonCode, r.PersonName),
	}
}

// Rows renders a page of records starting at the 1-based position start
func Rows(records []models.Record, start int) [][]string {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, Row(r, start+i))
	}
	return rows
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
