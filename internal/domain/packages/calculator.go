package packages

import (
	"time"

	"github.com/shopspring/decimal"

	"stockroom/internal/core/types"
)

// Contract arithmetic. All methods are pure: they never touch storage
// and monetary results are rounded to two places.

// TotalPrice sums the package items at their captured unit prices.
func (p *Package) TotalPrice() types.Money {
	total := types.Zero()
	for _, it := range p.Items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return types.RoundMoney(total)
}

// DiscountedPrice is the item total minus the discount, floored at
// zero. A discount larger than the total never produces a credit.
func (p *Package) DiscountedPrice() types.Money {
	return types.RoundMoney(types.FloorZero(p.TotalPrice().Sub(p.DiscountAmount)))
}

// TotalContractValue is the full value over the contract term:
// monthly fees plus setup fee plus the discounted hardware price.
func (p *Package) TotalContractValue() types.Money {
	fees := p.MonthlyFee.Mul(decimal.NewFromInt(int64(p.ContractTermMonths)))
	return types.RoundMoney(fees.Add(p.SetupFee).Add(p.DiscountedPrice()))
}

// ContractEnd is the calendar end of the term.
func (p *Package) ContractEnd() time.Time {
	return p.ContractStartDate.AddDate(0, p.ContractTermMonths, 0)
}

// IsContractActive reports whether the contract is still running at
// the given instant. The end instant itself is no longer active.
func (p *Package) IsContractActive(now time.Time) bool {
	return now.Before(p.ContractEnd())
}

// RemainingContractTime is the time left until the contract ends,
// floored at zero for expired contracts.
func (p *Package) RemainingContractTime(now time.Time) time.Duration {
	remaining := p.ContractEnd().Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}
