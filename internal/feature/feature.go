// Package feature provides the 26-dimensional position feature
// vector (§6) and a linear value approximator over it, usable as the
// search engine's pluggable default policy (§4.2, §9).
package feature

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"gonum.org/v1/gonum/floats"

	"github.com/arowdev/bgmcts/pkg/engine"
)

// NumFeatures is the dimensionality of the feature vector: one
// differential per point (WHITE count minus BLACK count), plus a bar
// differential and a borne-off differential.
const NumFeatures = 26

// Vector returns the 26-dimensional feature vector for pos, always
// from WHITE's perspective, matching the teacher's convention of
// evaluating positions from a fixed side and the prototype's
// state_to_vector layout.
func Vector(pos *engine.Position) [NumFeatures]float64 {
	var v [NumFeatures]float64
	board := pos.Board()
	bar := pos.Bar()
	borneOff := pos.BorneOff()

	for i := 0; i < engine.NumPoints; i++ {
		v[i] = float64(board[engine.White][i]) - float64(board[engine.Black][i])
	}
	v[24] = float64(bar[engine.White]) - float64(bar[engine.Black])
	v[25] = float64(borneOff[engine.White]) - float64(borneOff[engine.Black])
	return v
}

// LinearModel evaluates a position's feature vector as
// weights·features + bias, the "linear value approximator" default
// policy named in §9, in place of the teacher's neural net.
type LinearModel struct {
	Weights [NumFeatures]float64
	Bias    float64
}

// Value returns the model's estimate of WHITE's win probability for
// pos. Output is not clamped to [0, 1]: callers needing a probability
// should train weights that keep it in range, same as the teacher
// leaves raw evaluation scaling to the trained weights.
func (m LinearModel) Value(pos *engine.Position) float64 {
	v := Vector(pos)
	return floats.Dot(m.Weights[:], v[:]) + m.Bias
}

const (
	weightsMagic   = 728.2637
	weightsVersion = 1.0
)

// LoadLinearModel reads a LinearModel from a binary file, following
// the teacher's magic-number-then-version header convention
// (internal/neuralnet's weights.go) adapted to this model's flat
// weights+bias layout.
func LoadLinearModel(path string) (LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return LinearModel{}, fmt.Errorf("opening linear model file: %w", err)
	}
	defer f.Close()
	return loadLinearModelFromReader(f)
}

func loadLinearModelFromReader(r io.Reader) (LinearModel, error) {
	var magic, version float32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return LinearModel{}, fmt.Errorf("reading magic number: %w", err)
	}
	if math.Abs(float64(magic)-weightsMagic) > 0.001 {
		return LinearModel{}, fmt.Errorf("invalid magic number: %f (expected %f)", magic, weightsMagic)
	}
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return LinearModel{}, fmt.Errorf("reading version: %w", err)
	}
	if version < 1.0 || version > 2.0 {
		return LinearModel{}, fmt.Errorf("unsupported model version: %f", version)
	}

	var m LinearModel
	var w64 [NumFeatures]float64
	if err := binary.Read(r, binary.LittleEndian, &w64); err != nil {
		return LinearModel{}, fmt.Errorf("reading weights: %w", err)
	}
	m.Weights = w64

	var bias float64
	if err := binary.Read(r, binary.LittleEndian, &bias); err != nil {
		return LinearModel{}, fmt.Errorf("reading bias: %w", err)
	}
	m.Bias = bias

	return m, nil
}

// SaveLinearModel writes m to path in the same format LoadLinearModel
// reads.
func SaveLinearModel(path string, m LinearModel) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating linear model file: %w", err)
	}
	defer f.Close()

	if err := binary.Write(f, binary.LittleEndian, float32(weightsMagic)); err != nil {
		return fmt.Errorf("writing magic number: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, float32(weightsVersion)); err != nil {
		return fmt.Errorf("writing version: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, m.Weights); err != nil {
		return fmt.Errorf("writing weights: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, m.Bias); err != nil {
		return fmt.Errorf("writing bias: %w", err)
	}
	return nil
}
