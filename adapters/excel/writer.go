package excel

import (
	"context"
	"fmt"
	"math"
	"sort"

	"gwinfer/domain/run"
	"gwinfer/domain/sample"
	"gwinfer/internal/errors"
	"gwinfer/ports"

	"github.com/xuri/excelize/v2"
)

const (
	samplesSheet = "Samples"
	summarySheet = "Summary"
)

// ResultWriter exports a completed run to an .xlsx workbook: one row per
// weighted sample plus a summary sheet with evidence, ESS, and marginals.
type ResultWriter struct {
	filePath string
}

var _ ports.ResultSink = (*ResultWriter)(nil)

// NewResultWriter creates a writer targeting filePath.
func NewResultWriter(filePath string) *ResultWriter {
	return &ResultWriter{filePath: filePath}
}

// WriteResult writes the sample table and summary sheets.
func (w *ResultWriter) WriteResult(ctx context.Context, manifest *run.Manifest, result *sample.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSamples(f, result); err != nil {
		return errors.ExportError("failed to write samples sheet", err)
	}
	if err := w.writeSummary(f, manifest, result); err != nil {
		return errors.ExportError("failed to write summary sheet", err)
	}

	// Drop the default sheet excelize creates.
	if idx, err := f.GetSheetIndex(samplesSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.ExportError("failed to remove default sheet", err)
	}

	if err := f.SaveAs(w.filePath); err != nil {
		return errors.ExportError(fmt.Sprintf("failed to save %s", w.filePath), err)
	}
	return nil
}

func (w *ResultWriter) writeSamples(f *excelize.File, result *sample.Result) error {
	if _, err := f.NewSheet(samplesSheet); err != nil {
		return err
	}
	names := parameterColumns(result)
	header := make([]interface{}, 0, len(names)+2)
	for _, name := range names {
		header = append(header, name)
	}
	header = append(header, "log_posterior", "weight")
	if err := f.SetSheetRow(samplesSheet, "A1", &header); err != nil {
		return err
	}

	for i, s := range result.Samples {
		row := make([]interface{}, 0, len(names)+2)
		for _, name := range names {
			if v, ok := s.Params[name]; ok {
				row = append(row, v)
			} else {
				row = append(row, nil)
			}
		}
		row = append(row, cellValue(s.LogPosterior), s.Weight)
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(samplesSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func (w *ResultWriter) writeSummary(f *excelize.File, manifest *run.Manifest, result *sample.Result) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"run_id", manifest.RunID.String()},
		{"event_id", manifest.EventID.String()},
		{"seed", manifest.Seed},
		{"samples", manifest.SampleCount},
		{"log_evidence", result.LogEvidence},
		{"ess", result.ESS},
		{},
		{"parameter", "mean", "std_dev", "median", "q05", "q95"},
	}
	names := make([]string, 0, len(result.Summaries))
	for name := range result.Summaries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s := result.Summaries[name]
		rows = append(rows, []interface{}{name, s.Mean, s.StdDev, s.Median, s.Q05, s.Q95})
	}
	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}

// cellValue renders non-finite floats as text; xlsx numeric cells cannot
// hold infinities.
func cellValue(x float64) interface{} {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return fmt.Sprint(x)
	}
	return x
}

// parameterColumns returns the sorted standard parameter names present in
// the result's samples.
func parameterColumns(result *sample.Result) []string {
	seen := make(map[string]bool)
	for _, s := range result.Samples {
		for name := range s.Params {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
