package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/quantlab/optionsynth/internal/model"
)

// labelColumn is the fixed name of the label column in persisted datasets.
const labelColumn = "underlying"

// WriteCSV persists a dataset as delimited text: a header row of
// "underlying" plus one column per grid spec, then one row per sample.
// Floats use strconv 'g'/-1 formatting, so ReadCSV reproduces
// bit-identical float64 values.
func WriteCSV(w io.Writer, ds *model.Dataset) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(ds.Grid)+1)
	header = append(header, labelColumn)
	for _, spec := range ds.Grid {
		header = append(header, spec.ColumnName())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(header))
	for i, sample := range ds.Samples {
		if len(sample.Quotes) != len(ds.Grid) {
			return fmt.Errorf("sample %d: %d quotes, grid has %d specs", i, len(sample.Quotes), len(ds.Grid))
		}
		row[0] = formatFloat(sample.Underlying)
		for j, q := range sample.Quotes {
			row[j+1] = formatFloat(q.Value)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write sample %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV loads a dataset persisted by WriteCSV, reconstructing the full
// option grid from the column names.
func ReadCSV(r io.Reader) (*model.Dataset, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 2 || header[0] != labelColumn {
		return nil, fmt.Errorf("malformed header: want %q plus quote columns, got %v", labelColumn, header)
	}

	grid := make([]model.OptionSpec, len(header)-1)
	for i, name := range header[1:] {
		spec, err := model.ParseColumnName(name)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		grid[i] = spec
	}

	ds := &model.Dataset{Grid: grid}
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		underlying, err := strconv.ParseFloat(row[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d label: %w", line, err)
		}
		quotes := make([]model.OptionQuote, len(grid))
		for j, field := range row[1:] {
			value, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", line, j+1, err)
			}
			quotes[j] = model.OptionQuote{Spec: grid[j], Underlying: underlying, Value: value}
		}
		ds.Samples = append(ds.Samples, model.TrainingSample{Underlying: underlying, Quotes: quotes})
	}
	return ds, nil
}

// WritePathCSV dumps a simulated path as "time,price" rows for plotting.
// Diagnostic only; not part of the dataset contract.
func WritePathCSV(w io.Writer, path model.PricePath) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "price"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, pt := range path {
		if err := cw.Write([]string{formatFloat(pt.Time), formatFloat(pt.Price)}); err != nil {
			return fmt.Errorf("write point %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
