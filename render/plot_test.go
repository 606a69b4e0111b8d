package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/swdee/go-objtrack/postprocess"
	"github.com/swdee/go-objtrack/tracker"
)

func TestPlotTrails(t *testing.T) {

	trail := tracker.NewTrail(100)

	for i := 0; i < 20; i++ {
		trail.Add(0, tracker.Point{X: 10 + i*5, Y: 20 + i*3})
		trail.Add(4, tracker.Point{X: 600 - i*10, Y: 400})
	}

	path := filepath.Join(t.TempDir(), "trails.png")

	if err := PlotTrails(trail, nil, 640, 480, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(path)

	if err != nil {
		t.Fatalf("plot not written: %v", err)
	}

	if info.Size() == 0 {
		t.Errorf("expected non-empty plot file")
	}
}

func TestPlotTrailsKeepsCallerIDs(t *testing.T) {

	trail := tracker.NewTrail(10)
	trail.Add(3, tracker.Point{X: 10, Y: 10})
	trail.Add(1, tracker.Point{X: 50, Y: 50})

	ids := []int{3, 1}
	path := filepath.Join(t.TempDir(), "trails.png")

	if err := PlotTrails(trail, ids, 640, 480, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ids[0] != 3 || ids[1] != 1 {
		t.Errorf("expected ids left as [3 1], got %v", ids)
	}
}

func TestPlotTrailsInvalidSize(t *testing.T) {

	path := filepath.Join(t.TempDir(), "trails.png")

	if err := PlotTrails(tracker.NewTrail(10), nil, 0, 480, path); err == nil {
		t.Errorf("expected error for zero width")
	}
}

func TestDetectionLabel(t *testing.T) {

	labels := []string{"background", "person"}

	tests := []struct {
		name     string
		class    int
		expected string
	}{
		{"known class", 1, "person 0.75"},
		{"motion region", -1, "det 9"},
		{"class outside labels", 5, "det 9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			det := postprocess.DetectResult{Class: tc.class, Probability: 0.75, ID: 9}

			if got := DetectionLabel(det, labels); got != tc.expected {
				t.Errorf("expected label %q, got %q", tc.expected, got)
			}
		})
	}
}
