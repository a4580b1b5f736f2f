package hfcharts

import (
	"slices"

	"github.com/etnz/hfcharts/date"
	"github.com/shopspring/decimal"
)

// Point is a single market value observation: the value of one series (a security) on a date.
type Point struct {
	Date   date.Date
	Series string
	Value  decimal.Decimal
}

// Series is a named sequence of points, in date order.
type Series struct {
	Name   string
	Points []Point
}

// Dates returns the unique dates of the series, in order.
func (s *Series) Dates() []date.Date {
	days := make([]date.Date, 0, len(s.Points))
	for _, p := range s.Points {
		if n := len(days); n > 0 && days[n-1] == p.Date {
			continue
		}
		days = append(days, p.Date)
	}
	return days
}

// Collection holds all the points read from a workbook, in reading order.
type Collection struct {
	Points []Point
}

// Len returns the number of points.
func (c *Collection) Len() int { return len(c.Points) }

// Append adds points at the end of the collection.
func (c *Collection) Append(points ...Point) { c.Points = append(c.Points, points...) }

// Series groups points by series name.
//
// Series are returned in order of first appearance, and the points of each series are sorted
// by date. Points on the same date keep their reading order.
func (c *Collection) Series() []*Series {
	index := make(map[string]*Series)
	var series []*Series
	for _, p := range c.Points {
		s, ok := index[p.Series]
		if !ok {
			s = &Series{Name: p.Series}
			index[p.Series] = s
			series = append(series, s)
		}
		s.Points = append(s.Points, p)
	}
	for _, s := range series {
		slices.SortStableFunc(s.Points, func(a, b Point) int { return a.Date.Compare(b.Date) })
	}
	return series
}

// Dates returns all the dates of the collection, unique and sorted.
func (c *Collection) Dates() []date.Date {
	series := c.Series()
	days := make([][]date.Date, 0, len(series))
	for _, s := range series {
		days = append(days, s.Dates())
	}
	return slices.Collect(date.Iterate(days...))
}
