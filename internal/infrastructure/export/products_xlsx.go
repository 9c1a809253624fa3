package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ProductRow is one line of a product import sheet. Columns, left to right: name, category
// id, price, min price, max price, stock, sku, colours (comma separated), image url,
// description. Empty min and max stay nil.
type ProductRow struct {
	Line        int
	Name        string
	CategoryID  string
	Price       float64
	MinPrice    *float64
	MaxPrice    *float64
	Stock       int
	SKU         string
	Colors      []string
	ImageURL    string
	Description string
}

// ReadProducts parses the first sheet of an import workbook. The first row is a header.
func ReadProducts(r io.Reader) ([]ProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	var out []ProductRow
	for i, cols := range rows {
		if i == 0 {
			continue
		}
		cell := func(n int) string {
			if n < len(cols) {
				return strings.TrimSpace(cols[n])
			}
			return ""
		}
		if cell(0) == "" {
			continue
		}

		row := ProductRow{
			Line:        i + 1,
			Name:        cell(0),
			CategoryID:  cell(1),
			SKU:         cell(6),
			ImageURL:    cell(8),
			Description: cell(9),
		}
		if row.Price, err = parseAmount(cell(2)); err != nil {
			return nil, fmt.Errorf("line %d: price: %w", row.Line, err)
		}
		if row.MinPrice, err = optionalAmount(cell(3)); err != nil {
			return nil, fmt.Errorf("line %d: min price: %w", row.Line, err)
		}
		if row.MaxPrice, err = optionalAmount(cell(4)); err != nil {
			return nil, fmt.Errorf("line %d: max price: %w", row.Line, err)
		}
		if s := cell(5); s != "" {
			if row.Stock, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("line %d: stock: %w", row.Line, err)
			}
		}
		row.Colors = splitColors(cell(7))
		out = append(out, row)
	}
	return out, nil
}

func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func optionalAmount(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// splitColors accepts both the Latin and the Arabic comma.
func splitColors(s string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '،' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
