package exchart

import (
	"fmt"

	"github.com/ukaji3/exchart-go/pkg/exchart/chart"
	"github.com/ukaji3/exchart-go/pkg/exchart/models"
)

// Validate checks that data has categories and at least one series, each with
// one value per category.
func Validate(data models.ChartRenderData) error {
	if len(data.Series) == 0 {
		return ErrEmptySeries
	}
	if len(data.Categories) == 0 {
		return ErrNoCategories
	}
	for i, series := range data.Series {
		if len(series.Values) != len(data.Categories) {
			return fmt.Errorf("%w: series %d (%q) has %d values, want %d",
				ErrSeriesLength, i, series.Name, len(series.Values), len(data.Categories))
		}
	}
	return nil
}

// Render replaces the chart's data with data: existing series are rebound in
// order, missing series are added, extra series are removed, the sheet grid
// is rewritten and the backing table is rebuilt.
func (s *Synchronizer) Render(c *chart.Chart, sheet Sheet, data models.ChartRenderData) error {
	if err := Validate(data); err != nil {
		return NewSyncError(sheet.Name(), "series", err)
	}
	if c.SheetName == "" {
		c.SheetName = sheet.Name()
	}

	numPoints := data.NumPoints()
	category, err := s.CreateCategoryDataSource(c, data.Categories)
	if err != nil {
		return NewSyncError(sheet.Name(), "series", err)
	}

	origCount := len(c.Series)
	for i, seriesData := range data.Series {
		values, err := s.CreateValueDataSource(c, seriesData.Values, i)
		if err != nil {
			return NewSyncError(sheet.Name(), "series", err)
		}
		nameRef, err := chart.FormatCell(c.SheetName, FirstRow-1, values.Col)
		if err != nil {
			return NewSyncError(sheet.Name(), "series", err)
		}

		var series *chart.Series
		if i < origCount {
			series = c.Series[i]
			series.Replace(category, values)
		} else {
			series = c.AddSeries(category, values)
		}
		series.SetName(seriesData.Name, nameRef)
	}

	if err := s.RemoveExtraSeries(c, sheet, numPoints, len(data.Series)); err != nil {
		return err
	}

	if err := s.writeGrid(sheet, data); err != nil {
		return NewSyncError(sheet.Name(), "cells", err)
	}
	c.Apply()

	if err := s.UpdateBackingTable(sheet, data.Series); err != nil {
		return err
	}

	if data.Title != "" {
		c.Title = data.Title
	}

	s.log.Info("rendered chart data",
		"sheet", sheet.Name(),
		"series", len(data.Series),
		"points", numPoints,
		"previous_series", origCount)
	return nil
}

// writeGrid writes series names, categories and values into the sheet.
func (s *Synchronizer) writeGrid(sheet Sheet, data models.ChartRenderData) error {
	header := FirstRow - 1
	if s.opts.CategoryHeader != nil {
		if err := sheet.SetCellValue(header, CategoryCol, *s.opts.CategoryHeader); err != nil {
			return err
		}
	}
	for j, series := range data.Series {
		if err := sheet.SetCellValue(header, ValueStartCol+j, series.Name); err != nil {
			return err
		}
	}
	for i, label := range data.Categories {
		row := FirstRow + i
		if err := sheet.SetCellValue(row, CategoryCol, label); err != nil {
			return err
		}
		for j, series := range data.Series {
			if err := sheet.SetCellValue(row, ValueStartCol+j, series.Values[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
