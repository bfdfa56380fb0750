package services

import (
	"infinix-store/internal/models"

	"github.com/shopspring/decimal"
)

// Pricing holds the checkout tariff. Amounts are rounded to cents.
type Pricing struct {
	TaxRate          decimal.Decimal
	ShippingFee      decimal.Decimal
	FreeShippingOver decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:          decimal.RequireFromString("0.08"),
		ShippingFee:      decimal.NewFromInt(50),
		FreeShippingOver: decimal.NewFromInt(500),
	}
}

// Summarize prices an order: free shipping strictly above the threshold, tax on the subtotal only.
func (p Pricing) Summarize(subtotal float64) models.OrderSummary {
	sub := decimal.NewFromFloat(subtotal).Round(2)

	shipping := p.ShippingFee
	if sub.GreaterThan(p.FreeShippingOver) {
		shipping = decimal.Zero
	}
	tax := sub.Mul(p.TaxRate).Round(2)

	return models.OrderSummary{
		Subtotal: sub.InexactFloat64(),
		Tax:      tax.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    sub.Add(tax).Add(shipping).Round(2).InexactFloat64(),
	}
}

func lineTotal(items []models.CartItem) float64 {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2).InexactFloat64()
}
