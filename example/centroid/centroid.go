package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/swdee/go-objtrack/config"
	"github.com/swdee/go-objtrack/detect"
	"github.com/swdee/go-objtrack/postprocess"
	"github.com/swdee/go-objtrack/render"
	"github.com/swdee/go-objtrack/tracker"
	"gocv.io/x/gocv"
)

// Timing holds timers used for finding execution time of the parts of
// processing a frame
type Timing struct {
	ProcessStart time.Time
	DetectStart  time.Time
	DetectEnd    time.Time
	TrackerStart time.Time
	TrackerEnd   time.Time
	ProcessEnd   time.Time
}

// Demo runs the centroid tracker over a video source
type Demo struct {
	cfg *config.Config
	// detector finds object boxes on detection frames
	detector detect.Detector
	// labels are the class names of the net detector
	labels []string
	// dets are the detections of the current frame, empty on estimate frames
	dets []postprocess.DetectResult
	// ct is the centroid tracker, guarded by mu as the HTTP handlers read it
	// while frames are processed
	ct *tracker.CentroidTracker
	mu sync.Mutex
	// trail is the recent centroid history of live objects for drawing
	trail *tracker.Trail
	// history is the full centroid history of all objects for plotting, nil
	// unless RecordHistory is called
	history *tracker.Trail
	// frameWidth and frameHeight are the video source dimensions
	frameWidth, frameHeight int
	// hub fans out encoded frames to stream clients
	hub *frameHub

	font     render.Font
	infoFont render.Font
	style    render.TrailStyle
}

// NewDemo creates the detector and tracker from the configuration
func NewDemo(cfg *config.Config) (*Demo, error) {

	d := &Demo{
		cfg:      cfg,
		ct:       tracker.NewCentroidTracker(cfg.Tracker.MaxDisappeared, cfg.Tracker.MaxDistance),
		trail:    tracker.NewTrail(cfg.Tracker.TrailSize),
		hub:      newFrameHub(),
		font:     render.DefaultFont(),
		infoFont: render.InfoFont(),
		style:    render.DefaultTrailStyle(),
	}

	factory, err := tracker.NewVisualTrackerFactory(tracker.VisualKind(cfg.Tracker.Visual))

	if err != nil {
		return nil, err
	}

	if factory != nil {
		d.ct.UseVisualTracker(factory)
	}

	d.ct.SetEstimateWorkers(cfg.Tracker.EstimateWorkers)

	switch cfg.Detect.Kind {
	case config.DetectNet:
		p := detect.NetDefaultParams()
		p.Model = cfg.Detect.Model
		p.Config = cfg.Detect.ModelConfig
		p.Labels = cfg.Detect.Labels
		p.Classes = cfg.Detect.Classes
		p.SSD.BoxThreshold = cfg.Detect.BoxThreshold
		p.SSD.NMSThreshold = cfg.Detect.NMSThreshold

		net, err := detect.NewNet(p)

		if err != nil {
			return nil, fmt.Errorf("error creating net detector: %w", err)
		}

		d.detector = net
		d.labels = net.Labels()

	default:
		p := detect.MotionDefaultParams()
		p.MinArea = cfg.Detect.MinArea
		p.ScaleWidth = cfg.Detect.ScaleWidth

		d.detector = detect.NewMotion(p)
	}

	return d, nil
}

// Close frees the detector and visual trackers
func (d *Demo) Close() {
	d.mu.Lock()
	d.ct.Close()
	d.mu.Unlock()

	d.detector.Close()
}

// Run reads frames from the video source until it ends or ctx is cancelled.
// Each annotated frame is written to writer if given and published to stream
// clients.
func (d *Demo) Run(ctx context.Context, video *gocv.VideoCapture,
	writer *gocv.VideoWriter) error {

	img := gocv.NewMat()
	defer img.Close()

	resImg := gocv.NewMat()
	defer resImg.Close()

	frameNum := -1

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if ok := video.Read(&img); !ok {
			log.Printf("End of video source after %d frames", frameNum+1)
			return nil
		}

		if img.Empty() {
			continue
		}

		frameNum++

		if frameNum == 0 {
			d.frameWidth = img.Cols()
			d.frameHeight = img.Rows()
		}

		timing := &Timing{ProcessStart: time.Now()}

		objs, stats, err := d.ProcessFrame(img, frameNum, timing)

		if err != nil {
			log.Printf("Error processing frame %d: %v", frameNum, err)
			continue
		}

		img.CopyTo(&resImg)
		d.AnnotateImg(&resImg, objs, stats, frameNum, timing)

		if writer != nil {
			if err := writer.Write(resImg); err != nil {
				return fmt.Errorf("error writing frame %d: %w", frameNum, err)
			}
		}

		if d.hub.clients() > 0 {
			buf, err := gocv.IMEncode(gocv.JPEGFileExt, resImg)

			if err != nil {
				log.Printf("Error encoding frame %d: %v", frameNum, err)
				continue
			}

			d.hub.publish(buf.GetBytes())
			buf.Close()
		}
	}
}

// ProcessFrame runs the detector on every detect.interval frame and the
// visual tracker estimate on the frames in between, then updates the trails
func (d *Demo) ProcessFrame(img gocv.Mat, frameNum int,
	timing *Timing) ([]tracker.TrackedObject, tracker.Stats, error) {

	detectFrame := frameNum%d.cfg.Detect.Interval == 0

	var boxes []tracker.Rect
	d.dets = nil

	if detectFrame {
		timing.DetectStart = time.Now()
		dets, err := d.detector.Detect(img)
		timing.DetectEnd = time.Now()

		if err != nil {
			return nil, tracker.Stats{}, fmt.Errorf("error detecting objects: %w", err)
		}

		d.dets = dets
		boxes = tracker.DetectionsToRects(dets)
	}

	d.mu.Lock()
	timing.TrackerStart = time.Now()

	if detectFrame {
		d.ct.Update(img, boxes)
	} else {
		boxes = d.ct.Estimate(img)
	}

	timing.TrackerEnd = time.Now()

	objs := d.ct.Objects()
	centroids := d.ct.Centroids()
	stats := d.ct.Stats()
	d.mu.Unlock()

	d.trail.AddObjects(objs)
	d.trail.Prune(centroids)
	if d.history != nil {
		d.history.AddObjects(objs)
	}

	if frameNum%100 == 0 {
		log.Printf("Frame %d: boxes=%d objects=%d trackers=%d next id=%d",
			frameNum, len(boxes), stats.Objects, stats.VisualTrackers, stats.NextID)
	}

	return objs, stats, nil
}

// AnnotateImg draws the tracked objects, trails and processing statistics on
// the image
func (d *Demo) AnnotateImg(img *gocv.Mat, objs []tracker.TrackedObject,
	stats tracker.Stats, frameNum int, timing *Timing) {

	if len(d.dets) > 0 {
		render.DetectionBoxes(img, d.dets, d.labels, d.font, 1)
	}

	render.Trail(img, objs, d.trail, d.style)
	render.TrackerBoxes(img, objs, d.font, 2)

	timing.ProcessEnd = time.Now()

	mode := "estimate"

	if !timing.DetectStart.IsZero() {
		mode = fmt.Sprintf("detect %.2fms",
			float32(timing.DetectEnd.Sub(timing.DetectStart))/float32(time.Millisecond))
	}

	render.Info(img, stats, d.infoFont)

	text := fmt.Sprintf("Frame: %d, %s, Tracking: %.2fms, Total: %.2fms, Next ID: %d",
		frameNum, mode,
		float32(timing.TrackerEnd.Sub(timing.TrackerStart))/float32(time.Millisecond),
		float32(timing.ProcessEnd.Sub(timing.ProcessStart))/float32(time.Millisecond),
		stats.NextID,
	)

	d.infoFont.PutText(img, text, image.Pt(d.infoFont.LeftPad,
		img.Rows()-d.infoFont.BottomPad))
}

// RecordHistory keeps the centroid history of every object seen, up to
// maxPoints per object, so it can be plotted with PlotTrails
func (d *Demo) RecordHistory(maxPoints int) {
	d.history = tracker.NewTrail(maxPoints)
}

// PlotTrails saves the centroid history of every object seen to path
func (d *Demo) PlotTrails(path string) error {

	if d.history == nil {
		return fmt.Errorf("centroid history not recorded")
	}

	return render.PlotTrails(d.history, nil, d.frameWidth, d.frameHeight, path)
}

// historySize is the maximum number of centroids kept per object for the
// trajectory plot
const historySize = 100000

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	cfgFile := flag.String("c", "", "Config file (yaml, json or toml), defaults are used if not given")
	vidSrc := flag.String("v", "0", "Video file or camera index to track objects in")
	httpAddr := flag.String("a", "", "HTTP Address to run server on, format address:port, overrides server.addr")
	outFile := flag.String("o", "", "Write annotated video to this file instead of serving it")
	plotFile := flag.String("p", "", "Save a plot of all object trajectories to this PNG file on exit")
	debug := flag.Bool("d", false, "Log tracker diagnostics for every frame")

	flag.Parse()

	cfg, err := config.Load(*cfgFile)

	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if *httpAddr != "" {
		cfg.Server.Addr = *httpAddr
	}

	if *debug {
		tracker.SetLogger(log.Printf)
	}

	demo, err := NewDemo(cfg)

	if err != nil {
		log.Fatalf("Error creating demo: %v", err)
	}

	defer demo.Close()

	if *plotFile != "" {
		demo.RecordHistory(historySize)
	}

	video, err := gocv.OpenVideoCapture(*vidSrc)

	if err != nil {
		log.Fatalf("Error opening video source %s: %v", *vidSrc, err)
	}

	defer video.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var writer *gocv.VideoWriter

	if *outFile != "" {
		fps := video.Get(gocv.VideoCaptureFPS)

		if fps <= 0 {
			fps = 30
		}

		writer, err = gocv.VideoWriterFile(*outFile, "MJPG", fps,
			int(video.Get(gocv.VideoCaptureFrameWidth)),
			int(video.Get(gocv.VideoCaptureFrameHeight)), true)

		if err != nil {
			log.Fatalf("Error creating video writer: %v", err)
		}

		defer writer.Close()

	} else {
		srv := demo.NewServer(cfg.Server.Addr)

		go func() {
			log.Printf("Open browser and view video at http://%s/stream", cfg.Server.Addr)

			if err := srv.ListenAndServe(); err != nil {
				log.Printf("HTTP server stopped: %v", err)
			}
		}()

		defer srv.Shutdown(context.Background())
	}

	if err := demo.Run(ctx, video, writer); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Error running tracker: %v", err)
	}

	if *plotFile != "" {
		if err := demo.PlotTrails(*plotFile); err != nil {
			log.Printf("Error saving trail plot: %v", err)
		} else {
			log.Printf("Saved trail plot to %s", *plotFile)
		}
	}

	// keep serving the last frames until interrupted
	if *outFile == "" && ctx.Err() == nil {
		<-ctx.Done()
	}
}
