package tracker

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix returns a len(objects) x len(inputs) matrix of the squared
// euclidean distance between every object centroid and input centroid.  Both
// slices must be non-empty.
func DistanceMatrix(objects, inputs []Point) *mat.Dense {

	dist := mat.NewDense(len(objects), len(inputs), nil)

	for r, a := range objects {
		for c, b := range inputs {
			dx := float64(a.X - b.X)
			dy := float64(a.Y - b.Y)
			dist.Set(r, c, dx*dx+dy*dy)
		}
	}

	return dist
}

// GreedyAssign pairs rows (tracked objects) with columns (observations) of the
// squared distance matrix.  Every row proposes its nearest column, lowest
// column index winning ties, and rows are visited in ascending order of that
// nearest distance, lowest row index winning ties.  A proposal is skipped when
// its row or column has already been taken and is only accepted when its
// distance is below maxDistance squared.  A rejected proposal consumes
// neither index.
//
// This is not an optimal assignment, two rows proposing the same column are
// resolved in favour of the row visited first and the loser is left unmatched
// even if its second nearest column is free.
func GreedyAssign(dist *mat.Dense, maxDistance float64) (matchesIdx [][2]int,
	unmatchRowIdx, unmatchColIdx []int) {

	nRows, nCols := dist.Dims()
	gate := maxDistance * maxDistance

	// nearest distance and column for every row
	rowMin := make([]float64, nRows)
	colOfMin := make([]int, nRows)

	for r := 0; r < nRows; r++ {
		row := dist.RawRowView(r)
		colOfMin[r] = floats.MinIdx(row)
		rowMin[r] = row[colOfMin[r]]
	}

	// visit rows by ascending nearest distance
	rowOrder := make([]int, nRows)
	floats.ArgsortStable(rowMin, rowOrder)

	logf("row order %v, col order %v", rowOrder, proposedCols(rowOrder, colOfMin))

	usedRows := make([]bool, nRows)
	usedCols := make([]bool, nCols)

	for _, row := range rowOrder {

		col := colOfMin[row]

		if usedRows[row] || usedCols[col] {
			continue
		}

		if dist.At(row, col) < gate {
			matchesIdx = append(matchesIdx, [2]int{row, col})
			usedRows[row] = true
			usedCols[col] = true
		}
	}

	for r, used := range usedRows {
		if !used {
			unmatchRowIdx = append(unmatchRowIdx, r)
		}
	}

	for c, used := range usedCols {
		if !used {
			unmatchColIdx = append(unmatchColIdx, c)
		}
	}

	logf("matches %v, unused rows %v, unused cols %v", matchesIdx,
		unmatchRowIdx, unmatchColIdx)

	return matchesIdx, unmatchRowIdx, unmatchColIdx
}

// proposedCols returns the column proposed by each row in visiting order
func proposedCols(rowOrder, colOfMin []int) []int {

	cols := make([]int, len(rowOrder))

	for i, row := range rowOrder {
		cols[i] = colOfMin[row]
	}

	return cols
}
