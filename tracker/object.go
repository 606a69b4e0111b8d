package tracker

// TrackedObject represents a single identity being followed across frames
type TrackedObject struct {
	// ID is the unique ID assigned at registration, IDs are never reused
	ID int
	// Centroid is the last known center point of the object
	Centroid Point
	// Box is the last bounding box matched to the object
	Box Rect
	// Disappeared is the number of consecutive frames the object has not
	// been matched to an observation
	Disappeared int
	// Flag is a caller owned state bit, the tracker only sets it at
	// registration time
	Flag bool
	// visual is the optional visual tracker owned by this object
	visual VisualTracker
}

// HasVisual returns true if the object owns a visual tracker instance
func (o *TrackedObject) HasVisual() bool {
	return o.visual != nil
}

// snapshot returns a copy of the object without its visual tracker handle
func (o *TrackedObject) snapshot() TrackedObject {
	c := *o
	c.visual = nil

	if len(o.Box.Tlwh) == 4 {
		c.Box = NewRect(o.Box.X(), o.Box.Y(), o.Box.Width(), o.Box.Height())
	}

	return c
}

// initVisual (re)initializes the visual tracker against the given frame and
// box.  Any previous instance is released first.  If initialization fails the
// object keeps no live handle and the next successful match tries again.
func (o *TrackedObject) initVisual(factory VisualTrackerFactory, frame Frame, box Rect) bool {

	o.releaseVisual()

	if factory == nil {
		return false
	}

	vt := factory()

	if vt == nil {
		return false
	}

	if !vt.Init(frame, box.ImageRect()) {
		vt.Close()
		return false
	}

	o.visual = vt
	return true
}

// releaseVisual frees the visual tracker held by the object
func (o *TrackedObject) releaseVisual() {
	if o.visual == nil {
		return
	}

	o.visual.Close()
	o.visual = nil
}
