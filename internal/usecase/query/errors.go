// Package query serves the filtered read views over stored signals and the
// CSV export.
package query

import "errors"

var (
	// ErrUnknownExportType is returned for an export type other than articles or startups.
	ErrUnknownExportType = errors.New("unknown export type")
)
