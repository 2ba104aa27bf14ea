package packages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockroom/internal/core/types"
)

func contractPackage() *Package {
	p := NewPackage(7, "Home Bundle", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), 12)
	p.MonthlyFee = types.MustMoney("50")
	p.SetupFee = types.MustMoney("200")
	p.DiscountAmount = types.MustMoney("100")
	p.Items = []Item{
		{SKU: 100, Quantity: 2, UnitPrice: types.MustMoney("250")},
		{SKU: 200, Quantity: 1, UnitPrice: types.MustMoney("500")},
	}
	return p
}

func TestTotalPrice(t *testing.T) {
	p := contractPackage()
	assert.True(t, p.TotalPrice().Equal(types.MustMoney("1000")), "total = %s", p.TotalPrice())
}

func TestTotalPrice_RoundsToTwoPlaces(t *testing.T) {
	p := &Package{Items: []Item{
		{SKU: 1, Quantity: 3, UnitPrice: types.MustMoney("19.999")},
	}}
	assert.True(t, p.TotalPrice().Equal(types.MustMoney("60.00")), "total = %s", p.TotalPrice())
}

func TestDiscountedPrice(t *testing.T) {
	p := contractPackage()
	assert.True(t, p.DiscountedPrice().Equal(types.MustMoney("900")))
}

func TestDiscountedPrice_FlooredAtZero(t *testing.T) {
	p := contractPackage()
	p.DiscountAmount = types.MustMoney("5000")

	assert.True(t, p.DiscountedPrice().IsZero())
}

func TestTotalContractValue(t *testing.T) {
	// 12 x 50 monthly + 200 setup + 900 discounted hardware = 1700
	p := contractPackage()
	assert.True(t, p.TotalContractValue().Equal(types.MustMoney("1700")),
		"value = %s", p.TotalContractValue())
}

func TestTotalContractValue_ZeroTermIsFeesPlusHardware(t *testing.T) {
	p := contractPackage()
	p.ContractTermMonths = 0

	assert.True(t, p.TotalContractValue().Equal(types.MustMoney("1100")))
}

func TestContractEnd(t *testing.T) {
	p := contractPackage()
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), p.ContractEnd())
}

func TestIsContractActive(t *testing.T) {
	p := contractPackage()
	end := p.ContractEnd()

	assert.True(t, p.IsContractActive(end.Add(-time.Second)))
	assert.False(t, p.IsContractActive(end), "the end instant is no longer active")
	assert.False(t, p.IsContractActive(end.Add(time.Hour)))
}

func TestRemainingContractTime(t *testing.T) {
	p := contractPackage()
	end := p.ContractEnd()

	assert.Equal(t, 48*time.Hour, p.RemainingContractTime(end.Add(-48*time.Hour)))
	assert.Equal(t, time.Duration(0), p.RemainingContractTime(end.Add(time.Hour)),
		"expired contracts report zero, never negative")
}
