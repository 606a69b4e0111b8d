package tracker

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownID is returned when an operation references an object ID that is
// not registered
var ErrUnknownID = errors.New("unknown object id")

// Registry holds the live tracked objects keyed by ID along with the counter
// used to assign the next ID
type Registry struct {
	// objects maps object ID to its state
	objects map[int]*TrackedObject
	// nextID is the ID assigned to the next registered object
	nextID int
	// factory creates visual trackers for new objects, nil disables them
	factory VisualTrackerFactory
}

// NewRegistry returns an empty registry.  Factory may be nil.
func NewRegistry(factory VisualTrackerFactory) *Registry {
	return &Registry{
		objects: make(map[int]*TrackedObject),
		factory: factory,
	}
}

// Register adds a new object for the given box and returns its ID.  If visual
// tracking is enabled a visual tracker is initialized against the frame and
// box, failure to initialize still registers the object.
func (r *Registry) Register(frame Frame, box Rect, flag bool) int {

	id := r.nextID
	r.nextID++

	obj := &TrackedObject{
		ID:       id,
		Centroid: box.Centroid(),
		Box:      box,
		Flag:     flag,
	}

	if r.factory != nil && !obj.initVisual(r.factory, frame, box) {
		logf("visual tracker init failed for object %d", id)
	}

	r.objects[id] = obj

	logf("registered object %d at %v", id, obj.Centroid)

	return id
}

// deregister releases the visual tracker of the object and removes it.  The
// ID must be registered, an unknown ID is a bookkeeping fault.
func (r *Registry) deregister(id int) {

	obj, ok := r.objects[id]

	if !ok {
		panic(fmt.Sprintf("tracker: deregister of unregistered object %d", id))
	}

	obj.releaseVisual()
	delete(r.objects, id)

	logf("deregistered object %d", id)
}

// get returns the live object for the ID
func (r *Registry) get(id int) *TrackedObject {
	return r.objects[id]
}

// Len returns the number of registered objects
func (r *Registry) Len() int {
	return len(r.objects)
}

// NextID returns the ID that will be assigned to the next registered object
func (r *Registry) NextID() int {
	return r.nextID
}

// IDs returns the registered object IDs in ascending order
func (r *Registry) IDs() []int {

	ids := make([]int, 0, len(r.objects))

	for id := range r.objects {
		ids = append(ids, id)
	}

	sort.Ints(ids)

	return ids
}

// Centroids returns a copy of the centroid of every registered object
func (r *Registry) Centroids() map[int]Point {

	res := make(map[int]Point, len(r.objects))

	for id, obj := range r.objects {
		res[id] = obj.Centroid
	}

	return res
}

// Flags returns a copy of the flag of every registered object
func (r *Registry) Flags() map[int]bool {

	res := make(map[int]bool, len(r.objects))

	for id, obj := range r.objects {
		res[id] = obj.Flag
	}

	return res
}

// SetFlag sets the flag of a registered object
func (r *Registry) SetFlag(id int, value bool) error {

	obj, ok := r.objects[id]

	if !ok {
		return fmt.Errorf("set flag on object %d: %w", id, ErrUnknownID)
	}

	obj.Flag = value

	return nil
}

// Objects returns a snapshot of all registered objects sorted by ID
func (r *Registry) Objects() []TrackedObject {

	ids := r.IDs()
	res := make([]TrackedObject, 0, len(ids))

	for _, id := range ids {
		res = append(res, r.objects[id].snapshot())
	}

	return res
}

// VisualCount returns the number of objects holding a live visual tracker
func (r *Registry) VisualCount() int {

	cnt := 0

	for _, obj := range r.objects {
		if obj.HasVisual() {
			cnt++
		}
	}

	return cnt
}

// Close releases the visual trackers of all registered objects.  The objects
// stay registered.
func (r *Registry) Close() {
	for _, obj := range r.objects {
		obj.releaseVisual()
	}
}
