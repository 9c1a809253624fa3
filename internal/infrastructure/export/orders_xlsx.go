package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"dukkan/internal/domain/entity"
)

const ordersSheet = "Orders"

var orderHeaders = []string{
	"رقم الطلب", "التاريخ", "الحالة", "هاتف المسوق",
	"اسم الزبون", "هاتف الزبون", "المحافظة", "العنوان",
	"المنتجات", "سعر الزبون", "التوصيل", "المجموع مع التوصيل",
	"سعر الجملة", "الربح",
}

func itemsSummary(items []entity.OrderItem) string {
	s := ""
	for i, it := range items {
		if i > 0 {
			s += "، "
		}
		s += fmt.Sprintf("%s × %d", it.Name, it.Quantity)
		if it.Color != "" {
			s += " (" + it.Color + ")"
		}
	}
	return s
}

// WriteOrders renders orders as a single-sheet workbook, right to left, with a totals row.
func WriteOrders(w io.Writer, orders []*entity.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ordersSheet); err != nil {
		return err
	}
	rtl := true
	if err := f.SetSheetView(ordersSheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(ordersSheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(orderHeaders))
	for i, h := range orderHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	var customer, delivery, total, wholesale, profit float64
	for i, o := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			o.ID,
			o.CreatedAt.Format("2006-01-02 15:04"),
			string(o.Status),
			o.UserPhone,
			o.Customer.Name,
			o.Customer.Phone,
			o.Customer.Province,
			o.Customer.Address,
			itemsSummary(o.Items),
			o.CustomerPrice,
			o.DeliveryFee,
			o.TotalWithDelivery,
			o.WholesaleTotal,
			o.Profit,
		}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
		customer = entity.AddMoney(customer, o.CustomerPrice)
		delivery = entity.AddMoney(delivery, o.DeliveryFee)
		total = entity.AddMoney(total, o.TotalWithDelivery)
		wholesale = entity.AddMoney(wholesale, o.WholesaleTotal)
		profit = entity.AddMoney(profit, o.Profit)
	}

	cell, _ := excelize.CoordinatesToCellName(1, len(orders)+2)
	totals := []interface{}{"المجموع", nil, nil, nil, nil, nil, nil, nil, nil, customer, delivery, total, wholesale, profit}
	if err := sw.SetRow(cell, totals); err != nil {
		return err
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	return f.Write(w)
}
