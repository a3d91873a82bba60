package exchart

import (
	"io"
	"log/slog"

	"github.com/ukaji3/exchart-go/pkg/exchart/chart"
	"github.com/ukaji3/exchart-go/pkg/exchart/models"
	"github.com/xuri/excelize/v2"
)

// Synchronizer keeps a chart's series bindings and its backing table in step
// with a dataset. It is not safe for concurrent use on the same chart or sheet.
type Synchronizer struct {
	opts Options
	log  *slog.Logger
}

// New returns a Synchronizer. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Synchronizer{opts: opts, log: logger}
}

// CreateValueDataSource returns a data source over rows [FirstRow, len(values)]
// of the series' value column, bound to values.
func (s *Synchronizer) CreateValueDataSource(c *chart.Chart, values []float64, index int) (*chart.NumericalDataSource, error) {
	col := index + ValueStartCol
	ref, err := chart.FormatRange(c.SheetName, FirstRow, len(values), col, col)
	if err != nil {
		return nil, err
	}
	return &chart.NumericalDataSource{
		Ref:        ref,
		Col:        col,
		Values:     values,
		FormatCode: s.opts.FormatCode,
	}, nil
}

// CreateCategoryDataSource returns a data source over rows [FirstRow, len(categories)]
// of the category column, bound to categories.
func (s *Synchronizer) CreateCategoryDataSource(c *chart.Chart, categories []string) (*chart.CategoricalDataSource, error) {
	ref, err := chart.FormatRange(c.SheetName, FirstRow, len(categories), CategoryCol, CategoryCol)
	if err != nil {
		return nil, err
	}
	return &chart.CategoricalDataSource{
		Ref:    ref,
		Col:    CategoryCol,
		Labels: categories,
	}, nil
}

// RemoveExtraSeries shrinks the chart's series to targetCount and clears the
// sheet columns of the removed series for rows 0 through numPoints.
// Growing or keeping the series count is a no-op.
//
// Only plots implementing chart.SeriesRemover (bar and line) have their
// series collection trimmed; other plots keep their entries.
func (s *Synchronizer) RemoveExtraSeries(c *chart.Chart, sheet Sheet, numPoints, targetCount int) error {
	currentCount := len(c.Series)
	if currentCount-targetCount <= 0 {
		return nil
	}

	remover, canTrim := c.Plot.(chart.SeriesRemover)
	if !canTrim {
		s.log.Debug("plot series collection not trimmed", "kind", c.Plot.Kind(), "sheet", sheet.Name())
	}
	for j := currentCount - 1; j >= targetCount; j-- {
		if err := c.RemoveSeries(j); err != nil {
			return NewSyncError(sheet.Name(), "series", err)
		}
		if canTrim {
			if err := remover.RemoveSeriesAt(j); err != nil {
				return NewSyncError(sheet.Name(), "series", err)
			}
		}
		s.log.Debug("removed series", "index", j, "sheet", sheet.Name())
	}

	// clear extra sheet columns
	for i := 0; i < numPoints+1; i++ {
		if !sheet.RowExists(i) {
			continue
		}
		for j := currentCount; j > targetCount; j-- {
			if !sheet.CellExists(i, j) {
				continue
			}
			if err := sheet.RemoveCell(i, j); err != nil {
				return NewSyncError(sheet.Name(), "cells", err)
			}
		}
	}
	return nil
}

// UpdateBackingTable rebuilds the sheet's table definition for seriesList:
// the range covers the header row through the last data row, and the columns
// are the category column followed by one column per series.
func (s *Synchronizer) UpdateBackingTable(sheet Sheet, seriesList []models.SeriesRenderData) error {
	if len(seriesList) == 0 {
		return NewSyncError(sheet.Name(), "table", ErrEmptySeries)
	}
	seriesCount := len(seriesList)
	numPoints := len(seriesList[0].Values)

	// header row through last data row, 1-based
	start, err := excelize.CoordinatesToCellName(CategoryCol+1, FirstRow)
	if err != nil {
		return NewSyncError(sheet.Name(), "table", err)
	}
	end, err := excelize.CoordinatesToCellName(CategoryCol+1+seriesCount, FirstRow+numPoints)
	if err != nil {
		return NewSyncError(sheet.Name(), "table", err)
	}

	table := s.GetOrCreateTable(sheet)
	table.Ref = start + ":" + end

	columns := make([]models.TableColumn, 0, seriesCount+1)
	// category
	columns = append(columns, models.TableColumn{ID: 1, Name: ""})
	// series
	for i, series := range seriesList {
		columns = append(columns, models.TableColumn{ID: i + 2, Name: series.Name})
	}
	table.Columns = columns

	s.log.Debug("rebuilt backing table", "sheet", sheet.Name(), "ref", table.Ref, "columns", len(columns))
	return nil
}

// GetOrCreateTable returns the sheet's first table, creating and registering
// an empty one when the sheet has none.
func (s *Synchronizer) GetOrCreateTable(sheet Sheet) *models.TableDefinition {
	if len(sheet.Tables()) == 0 {
		sheet.AddTable(&models.TableDefinition{
			Name:      s.opts.tableName(),
			StyleName: s.opts.TableStyle,
			Columns:   []models.TableColumn{},
		})
		s.log.Debug("created backing table", "sheet", sheet.Name())
	}
	return sheet.Tables()[0]
}
