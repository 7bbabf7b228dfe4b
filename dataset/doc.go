// Package dataset holds the observation table a scatterplot matrix is built
// from: rows of N finite values plus one name and one source path per column.
//
// Sources produce Series (timestamped samples that may be missing); FromSeries
// aligns them into rows and drops every row with a missing or non-finite
// value, so the statistics packages never see NaN.
package dataset
