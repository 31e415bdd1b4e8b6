package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arowdev/bgmcts/pkg/engine"
)

func TestWriteCSVRowCount(t *testing.T) {
	pos := engine.NewPosition()
	samples := []Sample{
		SampleFromPosition(pos, 0.5),
		SampleFromPosition(pos, 0.75),
	}

	path := filepath.Join(t.TempDir(), "train.csv")
	if err := WriteCSV(path, samples); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back dataset file: %v", err)
	}

	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	if lines != len(samples) {
		t.Errorf("expected %d rows, got %d", len(samples), lines)
	}
}

func TestWriteCSVColumnCount(t *testing.T) {
	pos := engine.NewPosition()
	samples := []Sample{SampleFromPosition(pos, 0.5)}

	path := filepath.Join(t.TempDir(), "train.csv")
	if err := WriteCSV(path, samples); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back dataset file: %v", err)
	}

	commas := 0
	for _, b := range data {
		if b == ',' {
			commas++
		}
	}
	if commas != 26 {
		t.Errorf("expected 26 commas (27 columns), got %d", commas)
	}
}
