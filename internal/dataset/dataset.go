// Package dataset emits training data for a supervised value
// approximator: a CSV of feature vectors and their MCTS-estimated
// value, matching the training dataset format named in §6. The
// fitting pipeline that consumes this CSV is out of scope; only the
// act of sampling and writing it belongs here, grounded in
// original_source/function_approximation.py's state_to_vector and
// create_dataset.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/arowdev/bgmcts/internal/feature"
	"github.com/arowdev/bgmcts/pkg/engine"
)

// Sample is one training row: a position's feature vector and its
// MCTS-estimated value (WHITE's win probability).
type Sample struct {
	Features [feature.NumFeatures]float64
	Value    float64
}

// SampleFromPosition builds a Sample from pos and a precomputed value
// (the second return of search.ChooseMove).
func SampleFromPosition(pos *engine.Position, value float64) Sample {
	return Sample{Features: feature.Vector(pos), Value: value}
}

// WriteCSV writes samples to path, one row per sample: the 26 feature
// columns followed by the value column, matching create_dataset's
// row layout (itertools.chain(position, [value])).
func WriteCSV(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, s := range samples {
		row := make([]string, 0, feature.NumFeatures+1)
		for _, v := range s.Features {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		row = append(row, strconv.FormatFloat(s.Value, 'g', -1, 64))

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing dataset row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset file: %w", err)
	}
	return nil
}
