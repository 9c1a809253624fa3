package entity

import "github.com/shopspring/decimal"

type OrderTotals struct {
	CustomerPrice     float64
	DeliveryFee       float64
	TotalWithDelivery float64
	WholesaleTotal    float64
	Profit            float64
}

// PriceItems computes order totals from line items. Profit is the margin between what the
// customer pays for goods and the wholesale cost; delivery is passed through.
func PriceItems(items []OrderItem, deliveryFee float64) OrderTotals {
	customer := decimal.Zero
	wholesale := decimal.Zero

	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		customer = customer.Add(decimal.NewFromFloat(item.SellingPrice).Mul(qty))
		wholesale = wholesale.Add(decimal.NewFromFloat(item.WholesalePrice).Mul(qty))
	}

	fee := decimal.NewFromFloat(deliveryFee)
	profit := customer.Sub(wholesale)
	if profit.IsNegative() {
		profit = decimal.Zero
	}

	return OrderTotals{
		CustomerPrice:     customer.Round(2).InexactFloat64(),
		DeliveryFee:       fee.Round(2).InexactFloat64(),
		TotalWithDelivery: customer.Add(fee).Round(2).InexactFloat64(),
		WholesaleTotal:    wholesale.Round(2).InexactFloat64(),
		Profit:            profit.Round(2).InexactFloat64(),
	}
}

func (o *Order) ApplyTotals(t OrderTotals) {
	o.CustomerPrice = t.CustomerPrice
	o.DeliveryFee = t.DeliveryFee
	o.TotalWithDelivery = t.TotalWithDelivery
	o.WholesaleTotal = t.WholesaleTotal
	o.Profit = t.Profit
}

// SumProfit adds order profits without float drift.
func SumProfit(orders []*Order) float64 {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(decimal.NewFromFloat(o.Profit))
	}
	return total.Round(2).InexactFloat64()
}

// AddMoney adds two stored money amounts without float drift.
func AddMoney(a, b float64) float64 {
	return decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).InexactFloat64()
}
