package tracker

import (
	"image"

	"gocv.io/x/gocv"
)

// fakeVisual is a VisualTracker that returns the box it was initialized with
// moved by shift
type fakeVisual struct {
	factory *fakeFactory
	box     image.Rectangle
	inits   int
	updates int
	closed  bool
}

func (f *fakeVisual) Init(frame gocv.Mat, box image.Rectangle) bool {
	f.inits++
	f.box = box
	return !f.factory.failInit
}

func (f *fakeVisual) Update(frame gocv.Mat) (image.Rectangle, bool) {
	f.updates++

	if f.factory.failUpdate[f] {
		return image.Rectangle{}, false
	}

	f.box = f.box.Add(f.factory.shift)
	return f.box, true
}

func (f *fakeVisual) Close() error {
	f.closed = true
	return nil
}

// fakeFactory creates fakeVisual instances and records them in creation order
type fakeFactory struct {
	created    []*fakeVisual
	failInit   bool
	failUpdate map[*fakeVisual]bool
	shift      image.Point
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		failUpdate: make(map[*fakeVisual]bool),
	}
}

func (ff *fakeFactory) New() VisualTracker {
	fv := &fakeVisual{factory: ff}
	ff.created = append(ff.created, fv)
	return fv
}

// live returns the instances that have not been closed
func (ff *fakeFactory) live() []*fakeVisual {

	var res []*fakeVisual

	for _, fv := range ff.created {
		if !fv.closed {
			res = append(res, fv)
		}
	}

	return res
}
