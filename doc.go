// Package hfcharts turns fund position snapshots kept in spreadsheets into
// market value timeseries, ready to be charted.
//
// A fund's spreadsheet holds one worksheet per snapshot date. Each worksheet
// lists the positions held that day, one row per security, with at least a
// security name column and a market value column.
//
// The package covers the pure part of the pipeline:
//   - Workbook and Sheet: raw tabular data as returned by a source.
//   - Transformer: reshapes a Workbook into a Collection of Points, one per
//     data row, failing with a ParseError on malformed cells.
//   - Allocation: the dates x securities pivot of a Collection, with the
//     normalized (percent of gross) view used by the charts.
//
// Fetching lives in the sheets package, rendering in the renderer package,
// and the hfcharts command ties them together.
package hfcharts
