package exchart

import (
	"errors"
	"fmt"
)

// ErrEmptySeries indicates a dataset without any series.
var ErrEmptySeries = errors.New("series list is empty")

// ErrNoCategories indicates a dataset without any category.
var ErrNoCategories = errors.New("category list is empty")

// ErrSeriesLength indicates a series whose value count differs from the category count.
var ErrSeriesLength = errors.New("series length does not match categories")

// SyncError represents an error while synchronizing a chart with its sheet.
type SyncError struct {
	SheetName string
	Component string // "series", "cells", "table"
	Err       error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError.
func NewSyncError(sheetName, component string, err error) *SyncError {
	return &SyncError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
