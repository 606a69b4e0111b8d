package detect

import (
	"fmt"
	"image"

	objtrack "github.com/swdee/go-objtrack"
	"github.com/swdee/go-objtrack/postprocess"
	"gocv.io/x/gocv"
)

// NetParams defines the parameters used to run an SSD style network
type NetParams struct {
	// Model is the network weights file, eg: a Caffe .caffemodel or
	// TensorFlow .pb file
	Model string
	// Config is the network description file, may be empty for formats that
	// embed it
	Config string
	// Labels is a text file containing one class label per line
	Labels string
	// Classes restricts results to these labels, empty keeps all classes
	Classes []string
	// InputSize is the network input tensor width and height
	InputSize image.Point
	// Scale is the pixel value scale factor applied when building the blob
	Scale float64
	// Mean is subtracted from every pixel when building the blob
	Mean gocv.Scalar
	// SwapRB converts the BGR frame to RGB
	SwapRB bool
	// SSD are the post processing parameters
	SSD postprocess.SSDParams
}

// NetDefaultParams returns parameters for a MobileNet-SSD Caffe model
// - Input Size: 300x300
// - Scale: 1/127.5
// - Mean: 127.5
func NetDefaultParams() NetParams {
	return NetParams{
		InputSize: image.Pt(300, 300),
		Scale:     1.0 / 127.5,
		Mean:      gocv.NewScalar(127.5, 127.5, 127.5, 0),
		SSD:       postprocess.SSDDefaultParams(),
	}
}

// Net detects objects by running an OpenCV DNN network
type Net struct {
	params  NetParams
	net     gocv.Net
	process *postprocess.SSD
	labels  []string
}

// NewNet loads the network and labels
func NewNet(p NetParams) (*Net, error) {

	if p.Model == "" {
		return nil, fmt.Errorf("no model file given")
	}

	n := &Net{
		params: p,
	}

	if p.Labels != "" {
		labels, err := objtrack.LoadLabels(p.Labels)

		if err != nil {
			return nil, fmt.Errorf("error loading model labels: %w", err)
		}

		n.labels = labels
	}

	if len(p.Classes) > 0 && len(n.labels) == 0 {
		return nil, fmt.Errorf("class filter requires a labels file")
	}

	// filter classes before suppression and the object cap
	ssdParams := p.SSD
	ssdParams.Classes = postprocess.ClassFilter(n.labels, p.Classes)
	n.process = postprocess.NewSSD(ssdParams)

	n.net = gocv.ReadNet(p.Model, p.Config)

	if n.net.Empty() {
		return nil, fmt.Errorf("error reading network model: %s", p.Model)
	}

	return n, nil
}

// Labels returns the class labels of the network
func (n *Net) Labels() []string {
	return n.labels
}

// Detect runs the network on the frame and returns the detected objects
func (n *Net) Detect(frame gocv.Mat) ([]postprocess.DetectResult, error) {

	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	blob := gocv.BlobFromImage(frame, n.params.Scale, n.params.InputSize,
		n.params.Mean, n.params.SwapRB, false)
	defer blob.Close()

	n.net.SetInput(blob, "")

	output := n.net.Forward("")
	defer output.Close()

	if output.Empty() {
		return nil, fmt.Errorf("network forward pass returned no output")
	}

	return n.process.DetectObjects(output, frame.Cols(), frame.Rows()).GetDetectResults(), nil
}

// Close frees the network
func (n *Net) Close() error {
	return n.net.Close()
}
