package feature

import (
	"math"
	"testing"

	"github.com/arowdev/bgmcts/pkg/engine"
)

func TestVectorOpeningPositionIsSymmetric(t *testing.T) {
	pos := engine.NewPosition()
	v := Vector(pos)

	// BLACK's opening layout mirrors WHITE's (point i <-> point 23-i), so
	// each point's differential is the negation of its mirror point's.
	for i := 0; i < engine.NumPoints; i++ {
		if v[i] != -v[engine.NumPoints-1-i] {
			t.Errorf("expected point %d differential %v to negate point %d's %v in the mirrored opening layout", i, v[i], engine.NumPoints-1-i, v[engine.NumPoints-1-i])
		}
	}
	if v[23] != 2 {
		t.Errorf("expected point 23 differential 2 (WHITE's two back checkers), got %v", v[23])
	}
	if v[24] != 0 {
		t.Errorf("expected bar differential 0, got %v", v[24])
	}
	if v[25] != 0 {
		t.Errorf("expected borne-off differential 0, got %v", v[25])
	}
}

func TestLinearModelValue(t *testing.T) {
	var m LinearModel
	m.Weights[25] = 1.0 // borne-off differential only
	m.Bias = 0.5

	pos := engine.NewPosition()
	got := m.Value(pos)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("expected value 0.5 from bias alone at the opening position, got %v", got)
	}
}
