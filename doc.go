/*
go-objtrack provides multi object identity tracking for video in Go.  Boxes
from an object detector are associated across frames by nearest centroid,
each object receiving a persistent integer ID that is aged out when the
object is no longer seen.

Between detections the boxes can be estimated by OpenCV single object
trackers (KCF, CSRT, MIL) held per object, so an expensive detector only
needs to run every few frames.

The tracker package holds the association and object lifecycle logic,
detect provides motion and DNN based detectors, render draws results with
GoCV and config loads settings for the example program.

See example code and usage in the example subdirectory.
*/
package objtrack
