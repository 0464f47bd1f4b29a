package dataset

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/quantlab/optionsynth/internal/model"
)

func TestCSV_RoundTrip(t *testing.T) {
	cfg := testConfig()
	cfg.Samples = 25
	ds, err := New(cfg, nil).Build(context.Background())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	loaded, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	if len(loaded.Grid) != len(ds.Grid) {
		t.Fatalf("loaded grid has %d specs, want %d", len(loaded.Grid), len(ds.Grid))
	}
	for i := range ds.Grid {
		if loaded.Grid[i] != ds.Grid[i] {
			t.Errorf("grid[%d] = %+v, want %+v", i, loaded.Grid[i], ds.Grid[i])
		}
	}
	assertDatasetsEqual(t, ds, loaded)
}

func TestWriteCSV_EmptyDataset(t *testing.T) {
	ds := &model.Dataset{Grid: testGrid()}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ds); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}
	loaded, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}
	if len(loaded.Samples) != 0 {
		t.Errorf("len(Samples) = %d, want 0", len(loaded.Samples))
	}
	if len(loaded.Grid) != len(ds.Grid) {
		t.Errorf("len(Grid) = %d, want %d", len(loaded.Grid), len(ds.Grid))
	}
}

func TestWriteCSV_RejectsShapeMismatch(t *testing.T) {
	ds := &model.Dataset{
		Grid:    testGrid(),
		Samples: []model.TrainingSample{{Underlying: 10, Quotes: make([]model.OptionQuote, 2)}},
	}
	if err := WriteCSV(&bytes.Buffer{}, ds); err == nil {
		t.Error("WriteCSV() = nil error for quote/grid mismatch")
	}
}

func TestReadCSV_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"wrong label column", "stock,call_k10_t1_r0.02_v0.2\n10,1.5\n"},
		{"bad column name", "underlying,call_k10\n10,1.5\n"},
		{"non-numeric value", "underlying,call_k10_t1_r0.02_v0.2\n10,abc\n"},
		{"non-numeric label", "underlying,call_k10_t1_r0.02_v0.2\nxyz,1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.input)); err == nil {
				t.Error("ReadCSV() = nil error, want malformed input error")
			}
		})
	}
}

func TestWritePathCSV(t *testing.T) {
	path := model.PricePath{
		{Time: 0, Price: 10},
		{Time: 0.5, Price: 10.25},
		{Time: 1, Price: 9.875},
	}
	var buf bytes.Buffer
	if err := WritePathCSV(&buf, path); err != nil {
		t.Fatalf("WritePathCSV() error: %v", err)
	}
	want := "time,price\n0,10\n0.5,10.25\n1,9.875\n"
	if buf.String() != want {
		t.Errorf("WritePathCSV() output:\n%q\nwant:\n%q", buf.String(), want)
	}
}
