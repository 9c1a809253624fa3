package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestReadProducts(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"name", "category", "price", "min", "max", "stock", "sku", "colors", "image", "description"},
		[]interface{}{"حقيبة", "bags", "10,000", "12000", "18000", "4", "BAG-1", "أحمر، أسود", "https://cdn/x.png", "جلد"},
		[]interface{}{""},
		[]interface{}{"قلم", "office", "500"},
	)

	rows, err := ReadProducts(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	bag := rows[0]
	assert.Equal(t, 2, bag.Line)
	assert.Equal(t, "bags", bag.CategoryID)
	assert.Equal(t, 10000.0, bag.Price)
	require.NotNil(t, bag.MinPrice)
	assert.Equal(t, 12000.0, *bag.MinPrice)
	assert.Equal(t, 4, bag.Stock)
	assert.Equal(t, []string{"أحمر", "أسود"}, bag.Colors)

	pen := rows[1]
	assert.Equal(t, 4, pen.Line)
	assert.Nil(t, pen.MinPrice)
	assert.Nil(t, pen.MaxPrice)
	assert.Equal(t, 0, pen.Stock)
	assert.Equal(t, []string{}, pen.Colors)
}

func TestReadProductsRejectsBadNumbers(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"name", "category", "price"},
		[]interface{}{"x", "c", "cheap"},
	)

	_, err := ReadProducts(buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
