package hfcharts

import (
	"cmp"
	"slices"
	"strings"

	"github.com/etnz/hfcharts/date"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Allocation is the pivot of a Collection: one row per date, one column per series.
type Allocation struct {
	Dates []date.Date
	// Names are the series names, ordered by ascending total absolute value so that the
	// largest positions are stacked last.
	Names []string
	// Values[i][j] is the market value of Names[j] on Dates[i]. Missing values are zero.
	Values [][]decimal.Decimal
}

// NewAllocation pivots the collection.
//
// Values of the same series on the same date are summed. A date whose values are all equal to
// the ones of an earlier date is dropped: a snapshot that was not refreshed carries no
// information.
func NewAllocation(c *Collection) *Allocation {
	series := c.Series()
	histories := make(map[string]*date.History, len(series))
	totals := make(map[string]decimal.Decimal, len(series))
	names := make([]string, 0, len(series))
	for _, s := range series {
		h := new(date.History)
		total := decimal.Zero
		for _, p := range s.Points {
			h.AppendAdd(p.Date, p.Value)
		}
		for _, v := range h.Values() {
			total = total.Add(v.Abs())
		}
		histories[s.Name] = h
		totals[s.Name] = total
		names = append(names, s.Name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := totals[a].Cmp(totals[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	a := &Allocation{Names: names}
	seen := make(map[string]bool)
	for _, on := range c.Dates() {
		row := make([]decimal.Decimal, len(names))
		for j, name := range names {
			v, _ := histories[name].Get(on)
			row[j] = v
		}
		key := rowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		a.Dates = append(a.Dates, on)
		a.Values = append(a.Values, row)
	}
	return a
}

// rowKey identifies a row of values regardless of their representation ("1.0" and "1").
func rowKey(row []decimal.Decimal) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = v.String()
	}
	return strings.Join(parts, "|")
}

// Len returns the number of dates.
func (a *Allocation) Len() int { return len(a.Dates) }

// IsEmpty reports whether the allocation has no data.
func (a *Allocation) IsEmpty() bool { return len(a.Dates) == 0 }

// Net returns the sum of all values on the i-th date.
func (a *Allocation) Net(i int) decimal.Decimal { return decimal.Sum(decimal.Zero, a.Values[i]...) }

// Gross returns the sum of absolute values on the i-th date.
func (a *Allocation) Gross(i int) decimal.Decimal {
	return a.Long(i).Sub(a.Short(i))
}

// Long returns the sum of positive values on the i-th date.
func (a *Allocation) Long(i int) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range a.Values[i] {
		if v.IsPositive() {
			sum = sum.Add(v)
		}
	}
	return sum
}

// Short returns the sum of negative values on the i-th date. It is negative or zero.
func (a *Allocation) Short(i int) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range a.Values[i] {
		if v.IsNegative() {
			sum = sum.Add(v)
		}
	}
	return sum
}

// Normalized returns the values as a percentage of each date's gross value. Shorts stay
// negative. A date with a zero gross value is all zeros.
func (a *Allocation) Normalized() [][]Percent {
	res := make([][]Percent, len(a.Values))
	for i, row := range a.Values {
		gross := a.Gross(i)
		res[i] = make([]Percent, len(row))
		if gross.IsZero() {
			continue
		}
		for j, v := range row {
			res[i][j] = Percent(v.Div(gross).Mul(hundred).InexactFloat64())
		}
	}
	return res
}
