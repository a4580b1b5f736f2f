package date

import (
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// History stores a chronological series of values, each associated with a specific date.
// It ensures that dates are unique and the series is always sorted.
type History struct {
	days   []Date
	values []decimal.Decimal
}

// insert returns the index of day, inserting a zero value there if needed.
func (h *History) insert(on Date) int {
	i, found := slices.BinarySearchFunc(h.days, on, Date.Compare)
	if !found {
		h.days = slices.Insert(h.days, i, on)
		h.values = slices.Insert(h.values, i, decimal.Zero)
	}
	return i
}

// AppendAdd adds a point to the history.
//
// Existing value is added.
func (h *History) AppendAdd(on Date, q decimal.Decimal) *History {
	i := h.insert(on)
	h.values[i] = h.values[i].Add(q)
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true or zero value and false.
func (h *History) Get(day Date) (decimal.Decimal, bool) {
	i, found := slices.BinarySearchFunc(h.days, day, Date.Compare)
	if found {
		return h.values[i], true
	}
	return decimal.Zero, false
}
