package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PriceCategoryCount - число ценовых категорий (квартили)
const PriceCategoryCount = 4

// PriceRange - полуоткрытый интервал [Low, High)
type PriceRange struct {
	Low  decimal.Decimal `json:"low"`
	High decimal.Decimal `json:"high"`
}

func NewPriceRange(low, high decimal.Decimal) PriceRange {
	return PriceRange{Low: low, High: high}
}

// Contains - low включительно, high исключительно
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Low) && price.LessThan(r.High)
}

// Empty - интервал не содержит ни одной цены (квартили совпали)
func (r PriceRange) Empty() bool {
	return !r.Low.LessThan(r.High)
}

func (r PriceRange) Validate() error {
	if r.Low.IsNegative() || r.High.LessThan(r.Low) {
		return ErrInvalidPriceRange
	}
	return nil
}

func (r PriceRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Low.String(), r.High.String())
}

// PriceCategory - подпись и интервал ценовой категории
type PriceCategory struct {
	Label string     `json:"label"`
	Range PriceRange `json:"range"`
}

var (
	quartile1 = decimal.RequireFromString("0.25")
	quartile2 = decimal.RequireFromString("0.5")
	quartile3 = decimal.RequireFromString("0.75")
)

// BuildPriceCategories строит 4 категории по 25/50/75 перцентилям и максимуму.
// Границы усекаются до целых долларов; последняя категория заканчивается на max+1,
// чтобы максимальная цена попала в нее. Категории покрывают [0, max] без пропусков.
func BuildPriceCategories(prices []decimal.Decimal) ([]PriceCategory, error) {
	if len(prices) == 0 {
		return nil, ErrNoPrices
	}

	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	q1 := Percentile(sorted, quartile1).Truncate(0)
	q2 := Percentile(sorted, quartile2).Truncate(0)
	q3 := Percentile(sorted, quartile3).Truncate(0)
	maxPrice := sorted[len(sorted)-1].Truncate(0)

	return []PriceCategory{
		{Label: "Below $" + q1.String(), Range: NewPriceRange(decimal.Zero, q1)},
		{Label: fmt.Sprintf("$%s to $%s", q1, q2), Range: NewPriceRange(q1, q2)},
		{Label: fmt.Sprintf("$%s to $%s", q2, q3), Range: NewPriceRange(q2, q3)},
		{Label: "Above $" + q3.String(), Range: NewPriceRange(q3, maxPrice.Add(decimal.NewFromInt(1)))},
	}, nil
}

// Percentile - перцентиль q (0..1) отсортированной выборки с линейной интерполяцией
// между соседними рангами: pos = q*(n-1).
func Percentile(sorted []decimal.Decimal, q decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n == 0 {
		return decimal.Zero
	}
	if n == 1 {
		return sorted[0]
	}

	pos := q.Mul(decimal.NewFromInt(int64(n - 1)))
	lo := pos.Floor()
	idx := int(lo.IntPart())
	if idx >= n-1 {
		return sorted[n-1]
	}
	if idx < 0 {
		return sorted[0]
	}

	frac := pos.Sub(lo)
	return sorted[idx].Add(frac.Mul(sorted[idx+1].Sub(sorted[idx])))
}
