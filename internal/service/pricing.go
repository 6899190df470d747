package service

import (
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"

	"github.com/shopspring/decimal"
)

// PricingRules 订单计价参数
type PricingRules struct {
	SetupFee        decimal.Decimal
	ShippingFee     decimal.Decimal
	PixDiscountRate decimal.Decimal
}

// PricedLine 计价明细行
type PricedLine struct {
	ProductID uint
	Name      string
	Image     string
	UnitPrice decimal.Decimal
	Quantity  int
}

// OrderAmounts 订单金额
type OrderAmounts struct {
	Subtotal models.Money `json:"subtotal"`
	SetupFee models.Money `json:"setup_fee"`
	Shipping models.Money `json:"shipping"`
	Discount models.Money `json:"discount"`
	Total    models.Money `json:"total"`
}

// PriceOrder 计算订单金额。
// 装机费计入 PIX 折扣基数；中间结果保持精确，仅在最终金额处四舍五入到分，折扣为差额。
func PriceOrder(lines []PricedLine, method string, setupService bool, rules PricingRules) OrderAmounts {
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	setupFee := decimal.Zero
	if setupService {
		setupFee = rules.SetupFee
	}
	shipping := rules.ShippingFee
	gross := subtotal.Add(setupFee).Add(shipping)

	total := gross
	if method == constants.PaymentMethodPix {
		total = gross.Mul(decimal.NewFromInt(1).Sub(rules.PixDiscountRate))
	}
	total = total.Round(2)
	gross = gross.Round(2)

	return OrderAmounts{
		Subtotal: models.NewMoneyFromDecimal(subtotal),
		SetupFee: models.NewMoneyFromDecimal(setupFee),
		Shipping: models.NewMoneyFromDecimal(shipping),
		Discount: models.NewMoneyFromDecimal(gross.Sub(total)),
		Total:    models.NewMoneyFromDecimal(total),
	}
}

// NewPricingRules 解析店铺配置中的金额参数，非法值回退为默认值
func NewPricingRules(setupFee, shippingFee, pixRate string) PricingRules {
	return PricingRules{
		SetupFee:        parseDecimalOr(setupFee, decimal.NewFromInt(150)),
		ShippingFee:     parseDecimalOr(shippingFee, decimal.Zero),
		PixDiscountRate: parseRateOr(pixRate, decimal.RequireFromString("0.05")),
	}
}

func parseDecimalOr(raw string, fallback decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return fallback
	}
	return d
}

// parseRateOr 折扣率须在 [0, 1] 内，否则回退默认值
func parseRateOr(raw string, fallback decimal.Decimal) decimal.Decimal {
	d := parseDecimalOr(raw, fallback)
	if d.GreaterThan(decimal.NewFromInt(1)) {
		return fallback
	}
	return d
}
