package service

import (
	"testing"

	"homeboard/internal/services/api/hue/domain"
)

func TestXYToHex_Deterministic(t *testing.T) {
	xy := domain.XY{X: 0.3127, Y: 0.329} // D65 white point
	a := xyToHex(xy, 80)
	b := xyToHex(xy, 80)
	if a != b {
		t.Fatalf("hex output not stable: %s vs %s", a, b)
	}
	if len(a) != 7 || a[0] != '#' {
		t.Fatalf("bad hex format: %s", a)
	}
}

func TestXYToHex_ZeroChromaticityIsBlack(t *testing.T) {
	if got := xyToHex(domain.XY{}, 50); got != "#000000" {
		t.Fatalf("got %s", got)
	}
}

func TestAverageXY_WeightsByBrightness(t *testing.T) {
	lights := []domain.LightView{
		{On: true, Brightness: 75, ColorXY: &domain.XY{X: 0.2, Y: 0.2}},
		{On: true, Brightness: 25, ColorXY: &domain.XY{X: 0.6, Y: 0.6}},
		{On: true, Brightness: 100},         // no color, ignored
		{On: false, Brightness: 100, ColorXY: &domain.XY{X: 0.9, Y: 0.9}}, // off, ignored
	}
	got := averageXY(lights)
	if got == nil {
		t.Fatal("expected an average")
	}
	if got.X != 0.3 || got.Y != 0.3 {
		t.Fatalf("average %+v want {0.3 0.3}", got)
	}
}

func TestAverageXY_NoColoredLights(t *testing.T) {
	if got := averageXY([]domain.LightView{{On: true, Brightness: 50}}); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAggregate_GroupedColorIsAuthoritative(t *testing.T) {
	lights := []domain.LightView{
		{On: true, Brightness: 50, ColorXY: &domain.XY{X: 0.2, Y: 0.2}},
	}
	grouped := &resource{ID: "gl-1"}
	grouped.Color = &struct {
		XY domain.XY `json:"xy"`
	}{XY: domain.XY{X: 0.7, Y: 0.25}}

	st := aggregate(lights, grouped)
	if st.ColorXY == nil || st.ColorXY.X != 0.7 || st.ColorXY.Y != 0.25 {
		t.Fatalf("grouped color must win: %+v", st.ColorXY)
	}
}

func TestAggregate_FallsBackToWeightedAverage(t *testing.T) {
	lights := []domain.LightView{
		{On: true, Brightness: 50, ColorXY: &domain.XY{X: 0.2, Y: 0.4}},
	}
	st := aggregate(lights, &resource{ID: "gl-1"}) // grouped light without color

	if st.ColorXY == nil || st.ColorXY.X != 0.2 || st.ColorXY.Y != 0.4 {
		t.Fatalf("expected per-light average: %+v", st.ColorXY)
	}
	if st.Brightness != 50 || !st.AnyOn || !st.AllOn || st.AllOff {
		t.Fatalf("bad aggregate: %+v", st)
	}
}
