package tracker

import "sync"

// Point represents the x,y coordinates of the centroid of a tracked object
type Point struct {
	X, Y int
}

// Track represents a track history
type Track struct {
	points []Point
}

// Trail is the struct to keep a history of centroids per object ID used for
// drawing a trail
type Trail struct {
	// size is the maximum number of most recent points to keep in history
	size int
	// history of tracked points
	history map[int]*Track
	sync.Mutex
}

// NewTrail returns a new trail history track instance.  Size is the number
// of most recent points to keep and specifies the maximum length of the trail
// to maintain
func NewTrail(size int) *Trail {
	return &Trail{
		size:    size,
		history: make(map[int]*Track),
	}
}

// Reset clears all history
func (t *Trail) Reset() {
	t.Lock()
	defer t.Unlock()

	t.history = make(map[int]*Track)
}

// Add a centroid to the history of the given object ID
func (t *Trail) Add(id int, p Point) {
	t.Lock()
	defer t.Unlock()

	track, exists := t.history[id]

	if !exists {
		track = &Track{}
		t.history[id] = track
	}

	// skip if the object has not moved since the last frame
	if n := len(track.points); n > 0 && track.points[n-1] == p {
		return
	}

	track.points = append(track.points, p)

	// check if history is exceeded and drop oldest point
	if len(track.points) > t.size {
		track.points = track.points[1:]
	}
}

// AddObjects adds the centroids of all given objects to the history
func (t *Trail) AddObjects(objs []TrackedObject) {
	for _, obj := range objs {
		t.Add(obj.ID, obj.Centroid)
	}
}

// Prune removes the history of any object ID not in the live set
func (t *Trail) Prune(live map[int]Point) {
	t.Lock()
	defer t.Unlock()

	for id := range t.history {
		if _, ok := live[id]; !ok {
			delete(t.history, id)
		}
	}
}

// GetPoints gets a copy of the point history for a specific object id
func (t *Trail) GetPoints(id int) []Point {
	t.Lock()
	defer t.Unlock()

	if track, exists := t.history[id]; exists {
		points := make([]Point, len(track.points))
		copy(points, track.points)
		return points
	}

	// no history yet
	return nil
}

// IDs returns the object IDs that have history
func (t *Trail) IDs() []int {
	t.Lock()
	defer t.Unlock()

	ids := make([]int, 0, len(t.history))

	for id := range t.history {
		ids = append(ids, id)
	}

	return ids
}
