package tracker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/swdee/go-objtrack/postprocess"
)

func TestDetectionsToRects(t *testing.T) {

	dets := []postprocess.DetectResult{
		{Class: 15, Box: postprocess.BoxRect{Left: 10, Top: 20, Right: 50, Bottom: 100}, ID: 1},
		{Class: -1, Box: postprocess.BoxRect{Left: 200, Top: 0, Right: 210, Bottom: 8}, ID: 2},
	}

	expected := []Rect{
		NewRect(10, 20, 40, 80),
		NewRect(200, 0, 10, 8),
	}

	if diff := cmp.Diff(expected, DetectionsToRects(dets)); diff != "" {
		t.Errorf("rects mismatch (-want +got):\n%s", diff)
	}

	if rects := DetectionsToRects(nil); len(rects) != 0 {
		t.Errorf("expected no rects, got %v", rects)
	}
}
