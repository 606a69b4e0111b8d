package tracker

import "testing"

func TestNewVisualTrackerFactory(t *testing.T) {

	for _, kind := range []VisualKind{VisualNone, ""} {
		f, err := NewVisualTrackerFactory(kind)

		if err != nil || f != nil {
			t.Errorf("kind %q: expected nil factory and no error, got %v", kind, err)
		}
	}

	for _, kind := range []VisualKind{VisualKCF, VisualCSRT, VisualMIL} {
		f, err := NewVisualTrackerFactory(kind)

		if err != nil || f == nil {
			t.Errorf("kind %q: expected factory, got error %v", kind, err)
		}
	}

	if _, err := NewVisualTrackerFactory("goturn"); err == nil {
		t.Errorf("expected error for unknown kind")
	}
}
