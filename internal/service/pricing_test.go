package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/constants"

	"github.com/shopspring/decimal"
)

func TestPriceOrder(t *testing.T) {
	single := []PricedLine{{ProductID: 1, UnitPrice: decimal.RequireFromString("2999.90"), Quantity: 1}}
	tests := []struct {
		name         string
		lines        []PricedLine
		method       string
		setup        bool
		wantSubtotal string
		wantSetup    string
		wantDiscount string
		wantTotal    string
	}{
		{name: "pix_no_setup", lines: single, method: constants.PaymentMethodPix, wantSubtotal: "2999.90", wantSetup: "0.00", wantDiscount: "149.99", wantTotal: "2849.91"},
		{name: "pix_with_setup", lines: single, method: constants.PaymentMethodPix, setup: true, wantSubtotal: "2999.90", wantSetup: "150.00", wantDiscount: "157.49", wantTotal: "2992.41"},
		{name: "card_with_setup", lines: single, method: constants.PaymentMethodCard, setup: true, wantSubtotal: "2999.90", wantSetup: "150.00", wantDiscount: "0.00", wantTotal: "3149.90"},
		{
			name: "boleto_multi_line",
			lines: []PricedLine{
				{ProductID: 1, UnitPrice: decimal.RequireFromString("1000.00"), Quantity: 2},
				{ProductID: 2, UnitPrice: decimal.RequireFromString("499.99"), Quantity: 1},
			},
			method:       constants.PaymentMethodBoleto,
			wantSubtotal: "2499.99",
			wantSetup:    "0.00",
			wantDiscount: "0.00",
			wantTotal:    "2499.99",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceOrder(tt.lines, tt.method, tt.setup, testPricingRules())
			if got.Subtotal.String() != tt.wantSubtotal {
				t.Fatalf("subtotal want %s got %s", tt.wantSubtotal, got.Subtotal.String())
			}
			if got.SetupFee.String() != tt.wantSetup {
				t.Fatalf("setup fee want %s got %s", tt.wantSetup, got.SetupFee.String())
			}
			if got.Discount.String() != tt.wantDiscount {
				t.Fatalf("discount want %s got %s", tt.wantDiscount, got.Discount.String())
			}
			if got.Total.String() != tt.wantTotal {
				t.Fatalf("total want %s got %s", tt.wantTotal, got.Total.String())
			}
		})
	}
}

func TestPriceOrderAppliesShippingBeforeDiscount(t *testing.T) {
	rules := testPricingRules()
	rules.ShippingFee = decimal.RequireFromString("100.00")
	lines := []PricedLine{{UnitPrice: decimal.RequireFromString("900.00"), Quantity: 1}}

	got := PriceOrder(lines, constants.PaymentMethodPix, false, rules)
	if got.Total.String() != "950.00" || got.Discount.String() != "50.00" {
		t.Fatalf("unexpected amounts: %+v", got)
	}
}

func TestNewPricingRulesFallsBackOnInvalidValues(t *testing.T) {
	rules := NewPricingRules("abc", "-1", "")
	if !rules.SetupFee.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected default setup fee, got %s", rules.SetupFee)
	}
	if !rules.ShippingFee.IsZero() {
		t.Fatalf("expected zero shipping, got %s", rules.ShippingFee)
	}
	if !rules.PixDiscountRate.Equal(decimal.RequireFromString("0.05")) {
		t.Fatalf("expected 0.05 pix rate, got %s", rules.PixDiscountRate)
	}
}

func TestNewPricingRulesRejectsPixRateAboveOne(t *testing.T) {
	for _, raw := range []string{"1.5", "2", "100"} {
		rules := NewPricingRules("150", "0", raw)
		if !rules.PixDiscountRate.Equal(decimal.RequireFromString("0.05")) {
			t.Fatalf("rate %s: expected fallback 0.05, got %s", raw, rules.PixDiscountRate)
		}
		got := PriceOrder([]PricedLine{{UnitPrice: decimal.RequireFromString("1000.00"), Quantity: 1}}, constants.PaymentMethodPix, false, rules)
		if got.Total.IsNegative() || got.Total.String() != "950.00" {
			t.Fatalf("rate %s: unexpected total %s", raw, got.Total.String())
		}
	}

	rules := NewPricingRules("150", "0", "1")
	if !rules.PixDiscountRate.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected rate 1 to be kept, got %s", rules.PixDiscountRate)
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 9, 15, 4, 5, 0, time.UTC)
	pattern := regexp.MustCompile(`^PC20260309\d{6}$`)
	for i := 0; i < 50; i++ {
		got, err := generateOrderNumber("PC", now)
		if err != nil {
			t.Fatalf("generate order number: %v", err)
		}
		if !pattern.MatchString(got) {
			t.Fatalf("unexpected order number: %s", got)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy unavailable")
}

func TestRandNumericReturnsReaderError(t *testing.T) {
	got, err := randNumeric(failingReader{}, 6)
	if err == nil {
		t.Fatalf("expected error, got digits %q", got)
	}
	if got != "" {
		t.Fatalf("expected no digits on failure, got %q", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	orderCases := []struct {
		from, to string
		want     bool
	}{
		{constants.OrderStatusPending, constants.OrderStatusProcessing, true},
		{constants.OrderStatusPending, constants.OrderStatusCancelled, true},
		{constants.OrderStatusPending, constants.OrderStatusShipped, false},
		{constants.OrderStatusProcessing, constants.OrderStatusShipped, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusDelivered, constants.OrderStatusPending, false},
		{constants.OrderStatusCancelled, constants.OrderStatusProcessing, false},
	}
	for _, tc := range orderCases {
		if got := CanTransitionOrderStatus(tc.from, tc.to); got != tc.want {
			t.Fatalf("order %s -> %s: want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}

	paymentCases := []struct {
		from, to string
		want     bool
	}{
		{constants.PaymentStatusPending, constants.PaymentStatusCompleted, true},
		{constants.PaymentStatusPending, constants.PaymentStatusRefunded, false},
		{constants.PaymentStatusFailed, constants.PaymentStatusPending, true},
		{constants.PaymentStatusCompleted, constants.PaymentStatusRefunded, true},
		{constants.PaymentStatusRefunded, constants.PaymentStatusCompleted, false},
	}
	for _, tc := range paymentCases {
		if got := CanTransitionPaymentStatus(tc.from, tc.to); got != tc.want {
			t.Fatalf("payment %s -> %s: want %v got %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"PC Gamer Neon Pro":       "pc-gamer-neon-pro",
		"  RTX 4090 -- Edição!! ": "rtx-4090-edio",
		"Street_Art / Graffiti":   "streetart-graffiti",
		"---":                     "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) want %q got %q", in, want, got)
		}
	}
}
