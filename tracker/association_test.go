package tracker

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"
)

func TestDistanceMatrix(t *testing.T) {

	objects := []Point{{10, 10}, {100, 100}, {-5, 3}}
	inputs := []Point{{12, 11}, {0, 0}}

	dist := DistanceMatrix(objects, inputs)

	expected := mat.NewDense(3, 2, []float64{
		5, 200,
		15665, 20000,
		353, 34,
	})

	if !mat.Equal(dist, expected) {
		t.Errorf("expected distances %v, got %v",
			mat.Formatted(expected), mat.Formatted(dist))
	}

	// swapping the inputs transposes the matrix
	swapped := DistanceMatrix(inputs, objects)

	if !mat.Equal(swapped, dist.T()) {
		t.Errorf("expected transposed distances %v, got %v",
			mat.Formatted(dist.T()), mat.Formatted(swapped))
	}

	r, c := dist.Dims()

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if dist.At(i, j) < 0 {
				t.Errorf("negative distance at (%d, %d): %v", i, j, dist.At(i, j))
			}
		}
	}
}

// assignment is the result of GreedyAssign used for comparisons
type assignment struct {
	Matches    [][2]int
	UnusedRows []int
	UnusedCols []int
}

func runAssign(objects, inputs []Point, maxDistance float64) assignment {
	m, r, c := GreedyAssign(DistanceMatrix(objects, inputs), maxDistance)
	return assignment{Matches: m, UnusedRows: r, UnusedCols: c}
}

func TestGreedyAssign(t *testing.T) {

	tests := []struct {
		name        string
		objects     []Point
		inputs      []Point
		maxDistance float64
		expected    assignment
	}{
		{
			name:        "nearest object claims the observation",
			objects:     []Point{{10, 10}, {100, 100}},
			inputs:      []Point{{12, 11}},
			maxDistance: 100,
			expected: assignment{
				Matches:    [][2]int{{0, 0}},
				UnusedRows: []int{1},
			},
		},
		{
			name:        "rows visited by ascending nearest distance",
			objects:     []Point{{0, 0}, {50, 0}},
			inputs:      []Point{{48, 0}, {9, 0}},
			maxDistance: 100,
			expected: assignment{
				Matches: [][2]int{{1, 0}, {0, 1}},
			},
		},
		{
			name:        "contested column goes to the closer row",
			objects:     []Point{{0, 0}, {10, 0}},
			inputs:      []Point{{4, 0}, {90, 0}},
			maxDistance: 100,
			// row 1 also proposes column 0 and is left unmatched even
			// though column 1 is within the gate
			expected: assignment{
				Matches:    [][2]int{{0, 0}},
				UnusedRows: []int{1},
				UnusedCols: []int{1},
			},
		},
		{
			name:        "equal row minimums resolved by lowest row",
			objects:     []Point{{10, 0}, {0, 0}},
			inputs:      []Point{{5, 0}},
			maxDistance: 100,
			expected: assignment{
				Matches:    [][2]int{{0, 0}},
				UnusedRows: []int{1},
			},
		},
		{
			name:        "equal column distances resolved by lowest column",
			objects:     []Point{{5, 0}},
			inputs:      []Point{{10, 0}, {0, 0}},
			maxDistance: 100,
			expected: assignment{
				Matches:    [][2]int{{0, 0}},
				UnusedCols: []int{1},
			},
		},
		{
			name:        "distance equal to the gate is rejected",
			objects:     []Point{{0, 0}},
			inputs:      []Point{{100, 0}},
			maxDistance: 100,
			expected: assignment{
				UnusedRows: []int{0},
				UnusedCols: []int{0},
			},
		},
		{
			name:        "distance just inside the gate is accepted",
			objects:     []Point{{0, 0}},
			inputs:      []Point{{99, 0}},
			maxDistance: 100,
			expected: assignment{
				Matches: [][2]int{{0, 0}},
			},
		},
		{
			name:        "gated pair leaves row and column unused",
			objects:     []Point{{0, 0}, {1000, 0}},
			inputs:      []Point{{3, 4}, {1500, 0}},
			maxDistance: 100,
			expected: assignment{
				Matches:    [][2]int{{0, 0}},
				UnusedRows: []int{1},
				UnusedCols: []int{1},
			},
		},
		{
			name:        "more observations than objects",
			objects:     []Point{{0, 0}},
			inputs:      []Point{{200, 0}, {1, 1}, {50, 50}},
			maxDistance: 100,
			expected: assignment{
				Matches:    [][2]int{{0, 1}},
				UnusedCols: []int{0, 2},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := runAssign(tc.objects, tc.inputs, tc.maxDistance)

			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("assignment mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGreedyAssignDeterministic(t *testing.T) {

	objects := []Point{{10, 10}, {40, 12}, {40, 12}, {300, 200}, {75, 80}}
	inputs := []Point{{41, 12}, {11, 9}, {70, 85}, {40, 13}, {500, 500}}

	first := runAssign(objects, inputs, 100)

	for i := 0; i < 10; i++ {
		if diff := cmp.Diff(first, runAssign(objects, inputs, 100)); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestGreedyAssignGateMonotonic(t *testing.T) {

	objects := []Point{{10, 10}, {40, 12}, {300, 200}, {75, 80}, {600, 20}}
	inputs := []Point{{41, 30}, {11, 60}, {70, 185}, {400, 13}, {500, 500}, {620, 90}}

	prev := -1

	for _, maxDistance := range []float64{1, 10, 30, 50, 75, 100, 150, 250, 500, 1000} {

		got := len(runAssign(objects, inputs, maxDistance).Matches)

		if got < prev {
			t.Errorf("max distance %v gave %d matches, fewer than %d at a lower gate",
				maxDistance, got, prev)
		}

		prev = got
	}
}
