package tracker

import (
	"image"
	"sync"
)

const (
	// DefaultMaxDisappeared is the number of consecutive unmatched frames
	// allowed before an object is deregistered
	DefaultMaxDisappeared = 30
	// DefaultMaxDistance is the maximum centroid distance in pixels for an
	// observation to be matched to an existing object
	DefaultMaxDistance = 100
)

// CentroidTracker assigns persistent IDs to bounding boxes across frames by
// matching box centroids to the last known centroid of each tracked object
type CentroidTracker struct {
	// registry holds the live objects
	registry *Registry
	// maxDisappeared is the number of consecutive frames an object can be
	// unmatched before it is deregistered
	maxDisappeared int
	// maxDistance is the association gate, matches must be strictly closer
	maxDistance float64
	// estimateWorkers is the number of goroutines used to poll visual
	// trackers in Estimate
	estimateWorkers int
}

// Stats holds counts of the tracker's current state
type Stats struct {
	// Objects is the number of registered objects
	Objects int
	// VisualTrackers is the number of objects with a live visual tracker
	VisualTrackers int
	// NextID is the ID the next registered object will receive
	NextID int
}

// NewCentroidTracker returns a tracker that deregisters objects after being
// unmatched for more than maxDisappeared frames and only matches observations
// closer than maxDistance pixels.  Visual tracking is disabled until
// UseVisualTracker is called.
func NewCentroidTracker(maxDisappeared int, maxDistance float64) *CentroidTracker {
	return &CentroidTracker{
		registry:        NewRegistry(nil),
		maxDisappeared:  maxDisappeared,
		maxDistance:     maxDistance,
		estimateWorkers: 1,
	}
}

// NewCentroidTrackerDefault returns a tracker using DefaultMaxDisappeared and
// DefaultMaxDistance
func NewCentroidTrackerDefault() *CentroidTracker {
	return NewCentroidTracker(DefaultMaxDisappeared, DefaultMaxDistance)
}

// UseVisualTracker enables per object visual tracking, every object
// registered from now on gets its own tracker created by factory.  This is
// required for Estimate to produce boxes.
func (ct *CentroidTracker) UseVisualTracker(factory VisualTrackerFactory) {
	ct.registry.factory = factory
}

// SetEstimateWorkers sets the number of goroutines used to poll the visual
// trackers in Estimate.  Values below 1 are treated as 1.
func (ct *CentroidTracker) SetEstimateWorkers(n int) {
	if n < 1 {
		n = 1
	}
	ct.estimateWorkers = n
}

// MaxDisappeared returns the deregistration threshold
func (ct *CentroidTracker) MaxDisappeared() int {
	return ct.maxDisappeared
}

// MaxDistance returns the association distance gate
func (ct *CentroidTracker) MaxDistance() float64 {
	return ct.maxDistance
}

// Update matches the detected boxes in frame to the tracked objects.  Matched
// objects have their visual tracker reinitialized on the detected box and
// unmatched boxes are registered as new objects.  Read the result with
// Centroids or Objects.
func (ct *CentroidTracker) Update(frame Frame, boxes []Rect) {
	logf("detector boxes: %d", len(boxes))
	ct.updateCentroids(frame, boxes, false)
}

// Estimate polls the visual tracker of every object in ascending ID order
// and matches the resulting boxes to the tracked objects.  Objects whose
// visual tracker fails or is missing produce no box.  No new objects are
// registered.  The boxes used are returned.
func (ct *CentroidTracker) Estimate(frame Frame) []Rect {

	boxes := ct.pollVisual(frame)

	logf("estimated boxes: %d", len(boxes))

	ct.updateCentroids(frame, boxes, true)

	return boxes
}

// pollVisual runs every object's visual tracker on frame and returns the
// successful estimates ordered by object ID
func (ct *CentroidTracker) pollVisual(frame Frame) []Rect {

	var objs []*TrackedObject

	for _, id := range ct.registry.IDs() {
		if obj := ct.registry.get(id); obj.HasVisual() {
			objs = append(objs, obj)
		}
	}

	type estimate struct {
		rect image.Rectangle
		ok   bool
	}

	results := make([]estimate, len(objs))

	if ct.estimateWorkers <= 1 || len(objs) <= 1 {
		for i, obj := range objs {
			results[i].rect, results[i].ok = obj.visual.Update(frame)
		}

	} else {
		// each visual tracker is owned by a single object so they can be
		// updated concurrently, results are kept in ID order
		var wg sync.WaitGroup
		next := make(chan int)

		for w := 0; w < ct.estimateWorkers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range next {
					results[i].rect, results[i].ok = objs[i].visual.Update(frame)
				}
			}()
		}

		for i := range objs {
			next <- i
		}

		close(next)
		wg.Wait()
	}

	var boxes []Rect

	for i, res := range results {
		if !res.ok {
			logf("visual tracker update failed for object %d", objs[i].ID)
			continue
		}
		boxes = append(boxes, RectFromImage(res.rect))
	}

	return boxes
}

// updateCentroids applies one frame of observations to the registry
func (ct *CentroidTracker) updateCentroids(frame Frame, boxes []Rect, useEstimate bool) {

	// nothing observed, age every object
	if len(boxes) == 0 {
		for _, id := range ct.registry.IDs() {
			ct.markDisappeared(id)
		}
		return
	}

	// nothing tracked yet, register every box in input order
	if ct.registry.Len() == 0 {
		if useEstimate {
			return
		}
		for _, box := range boxes {
			ct.registry.Register(frame, box, false)
		}
		return
	}

	// snapshot of IDs and centroids in ascending ID order, these are the
	// matrix rows
	objectIDs := ct.registry.IDs()
	objectCentroids := make([]Point, len(objectIDs))

	for i, id := range objectIDs {
		objectCentroids[i] = ct.registry.get(id).Centroid
	}

	inputCentroids := make([]Point, len(boxes))

	for i, box := range boxes {
		inputCentroids[i] = box.Centroid()
	}

	logf("object centroids %v, input centroids %v", objectCentroids, inputCentroids)

	matchesIdx, unmatchRowIdx, unmatchColIdx := GreedyAssign(
		DistanceMatrix(objectCentroids, inputCentroids), ct.maxDistance,
	)

	for _, m := range matchesIdx {

		obj := ct.registry.get(objectIDs[m[0]])
		box := boxes[m[1]]

		obj.Centroid = inputCentroids[m[1]]
		obj.Box = box
		obj.Disappeared = 0

		// estimated boxes came from this object's own visual tracker so it
		// is already positioned on the box
		if !useEstimate && ct.registry.factory != nil {
			if !obj.initVisual(ct.registry.factory, frame, box) {
				logf("visual tracker init failed for object %d", obj.ID)
			}
		}
	}

	for _, row := range unmatchRowIdx {
		ct.markDisappeared(objectIDs[row])
	}

	// only detections create identities
	if useEstimate {
		return
	}

	for _, col := range unmatchColIdx {
		ct.registry.Register(frame, boxes[col], false)
	}
}

// markDisappeared increments the disappeared count of the object and
// deregisters it once the count exceeds maxDisappeared
func (ct *CentroidTracker) markDisappeared(id int) {

	obj := ct.registry.get(id)
	obj.Disappeared++

	if obj.Disappeared > ct.maxDisappeared {
		ct.registry.deregister(id)
	}
}

// Centroids returns a copy of the centroid of every tracked object keyed by ID
func (ct *CentroidTracker) Centroids() map[int]Point {
	return ct.registry.Centroids()
}

// Flags returns a copy of the flag of every tracked object keyed by ID
func (ct *CentroidTracker) Flags() map[int]bool {
	return ct.registry.Flags()
}

// SetFlag sets the flag of a tracked object.  ErrUnknownID is returned if no
// object has the ID.
func (ct *CentroidTracker) SetFlag(id int, value bool) error {
	return ct.registry.SetFlag(id, value)
}

// Objects returns a snapshot of all tracked objects sorted by ID
func (ct *CentroidTracker) Objects() []TrackedObject {
	return ct.registry.Objects()
}

// Stats returns counts of the tracker's current state
func (ct *CentroidTracker) Stats() Stats {
	return Stats{
		Objects:        ct.registry.Len(),
		VisualTrackers: ct.registry.VisualCount(),
		NextID:         ct.registry.NextID(),
	}
}

// Close frees the visual trackers of all objects
func (ct *CentroidTracker) Close() {
	ct.registry.Close()
}
