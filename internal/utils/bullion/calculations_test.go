package bullion

import (
	"testing"

	"github.com/SscSPs/bullion_books_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func dp(v string) *decimal.Decimal {
	dec := decimal.RequireFromString(v)
	return &dec
}

func TestPureWeight(t *testing.T) {
	tests := []struct {
		name   string
		weight decimal.Decimal
		touch  *decimal.Decimal
		cut    *decimal.Decimal
		want   decimal.Decimal
	}{
		{name: "no touch counts gross", weight: d("10"), want: d("10")},
		{name: "touch 100 is gross", weight: d("10"), touch: dp("100"), want: d("10")},
		{name: "touch 85", weight: d("5"), touch: dp("85"), want: d("4.25")},
		{name: "cut reduces effective touch", weight: d("10"), touch: dp("92"), cut: dp("2"), want: d("9")},
		{name: "silver form fraction", weight: d("1200"), touch: dp("70"), want: d("840")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PureWeight(tt.weight, tt.touch, tt.cut)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestEntrySubtotal(t *testing.T) {
	tests := []struct {
		name  string
		entry domain.TransactionEntry
		want  decimal.Decimal
	}{
		{
			name:  "sell gold is positive",
			entry: domain.TransactionEntry{Kind: domain.EntrySell, ItemType: domain.Gold999, Weight: d("10"), Touch: dp("100"), Price: d("100000")},
			want:  d("100000"),
		},
		{
			name:  "purchase gold is negative",
			entry: domain.TransactionEntry{Kind: domain.EntryPurchase, ItemType: domain.Gold999, Weight: d("10"), Touch: dp("100"), Price: d("100000")},
			want:  d("-100000"),
		},
		{
			name:  "silver prices per kilogram",
			entry: domain.TransactionEntry{Kind: domain.EntrySell, ItemType: domain.Silver, Weight: d("500"), Touch: dp("100"), Price: d("90000")},
			want:  d("45000"),
		},
		{
			name:  "rani prices per 10 grams",
			entry: domain.TransactionEntry{Kind: domain.EntrySell, ItemType: domain.Rani, Weight: d("5"), Touch: dp("85"), Price: d("100000")},
			want:  d("42500"),
		},
		{
			name:  "rupu prices per kilogram",
			entry: domain.TransactionEntry{Kind: domain.EntryPurchase, ItemType: domain.Rupu, Weight: d("120"), Touch: dp("70"), Price: d("90000")},
			want:  d("-7560"),
		},
		{
			name:  "money receive is positive",
			entry: domain.TransactionEntry{Kind: domain.EntryMoney, MoneyType: domain.MoneyReceive, Amount: d("5000")},
			want:  d("5000"),
		},
		{
			name:  "money give is negative",
			entry: domain.TransactionEntry{Kind: domain.EntryMoney, MoneyType: domain.MoneyGive, Amount: d("5000")},
			want:  d("-5000"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EntrySubtotal(tt.entry)
			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestEntrySubtotal_UnknownKind(t *testing.T) {
	_, err := EntrySubtotal(domain.TransactionEntry{Kind: "barter"})
	assert.Error(t, err)
}

func TestMetalDelta(t *testing.T) {
	sell := domain.TransactionEntry{Kind: domain.EntrySell, ItemType: domain.Rani, Weight: d("5"), Touch: dp("85")}
	got, err := MetalDelta(sell)
	assert.NoError(t, err)
	assert.True(t, got.Equal(d("-4.25")), "a sell hands metal out, got %s", got)

	purchase := domain.TransactionEntry{Kind: domain.EntryPurchase, ItemType: domain.Rupu, Weight: d("120"), Touch: dp("70")}
	got, err = MetalDelta(purchase)
	assert.NoError(t, err)
	assert.True(t, got.Equal(d("84")), "a purchase takes metal in, got %s", got)

	_, err = MetalDelta(domain.TransactionEntry{Kind: domain.EntryMoney, Amount: d("5000")})
	assert.Error(t, err, "money entries have no metal effect")
}

func TestFinalBalance(t *testing.T) {
	tests := []struct {
		name          string
		net           decimal.Decimal
		paid          decimal.Decimal
		discountExtra decimal.Decimal
		moneyOnly     bool
		washCustomer  bool
		want          decimal.Decimal
	}{
		{name: "sell partially paid", net: d("100000"), paid: d("40000"), discountExtra: d("0"), want: d("-60000")},
		{name: "sell fully paid", net: d("100000"), paid: d("100000"), discountExtra: d("0"), want: d("0")},
		{name: "sell with discount", net: d("100000"), paid: d("40000"), discountExtra: d("500"), want: d("-59500")},
		{name: "sell overpaid flips the sign", net: d("100000"), paid: d("120000"), discountExtra: d("0"), want: d("20000")},
		{name: "purchase partially paid", net: d("-7560"), paid: d("5000"), discountExtra: d("0"), want: d("2560")},
		{name: "purchase fully paid", net: d("-7560"), paid: d("7560"), discountExtra: d("0"), want: d("0")},
		{name: "purchase with extra", net: d("-7560"), paid: d("5000"), discountExtra: d("60"), want: d("2620")},
		{name: "money only settles at net", net: d("5000"), paid: d("0"), discountExtra: d("0"), moneyOnly: true, want: d("5000")},
		{name: "money only against wash is zero", net: d("5000"), paid: d("0"), discountExtra: d("0"), moneyOnly: true, washCustomer: true, want: d("0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalBalance(tt.net, tt.paid, tt.discountExtra, tt.moneyOnly, tt.washCustomer)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}

func TestRateCutCredit(t *testing.T) {
	got := RateCutCredit(domain.Gold999, d("25"), d("98000"))
	assert.True(t, got.Equal(d("245000")), "gold credits per 10g, got %s", got)

	got = RateCutCredit(domain.Silver, d("500"), d("90000"))
	assert.True(t, got.Equal(d("45000")), "silver credits per kg, got %s", got)
}
