package objtrack

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadLabels(t *testing.T) {

	dir := t.TempDir()
	file := filepath.Join(dir, "labels.txt")

	err := os.WriteFile(file, []byte("background\n person \ncar\n"), 0644)

	if err != nil {
		t.Fatalf("error writing labels file: %v", err)
	}

	labels, err := LoadLabels(file)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"background", "person", "car"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLabelsErrors(t *testing.T) {

	dir := t.TempDir()

	if _, err := LoadLabels(filepath.Join(dir, "missing.txt")); err == nil {
		t.Errorf("expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.txt")

	if err := os.WriteFile(empty, nil, 0644); err != nil {
		t.Fatalf("error writing labels file: %v", err)
	}

	if _, err := LoadLabels(empty); err == nil {
		t.Errorf("expected error for empty labels file")
	}
}

func TestReadLabels(t *testing.T) {

	in := "# MobileNet-SSD VOC classes\nbackground\n\nbicycle\n  person  \n\n\n"

	labels, err := ReadLabels(strings.NewReader(in))

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"background", "", "bicycle", "person"}, labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}

	if _, err := ReadLabels(strings.NewReader("# only a comment\n\n")); err == nil {
		t.Errorf("expected error when no labels are given")
	}
}
