package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/swdee/go-objtrack/tracker"
)

// frameHub fans out encoded JPEG frames to the connected stream clients.
// Slow clients miss frames rather than blocking processing.
type frameHub struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func newFrameHub() *frameHub {
	return &frameHub{
		subs: make(map[chan []byte]struct{}),
	}
}

// subscribe registers a new client channel
func (h *frameHub) subscribe() chan []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan []byte, 1)
	h.subs[ch] = struct{}{}

	return ch
}

// unsubscribe removes the client channel
func (h *frameHub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.subs, ch)
}

// clients returns the number of connected clients
func (h *frameHub) clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.subs)
}

// publish sends a copy of the frame to every client that is ready for one
func (h *frameHub) publish(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs {
		buf := make([]byte, len(frame))
		copy(buf, frame)

		select {
		case ch <- buf:
		default:
		}
	}
}

// ObjectView is the JSON representation of a tracked object
type ObjectView struct {
	ID          int        `json:"id"`
	X           int        `json:"x"`
	Y           int        `json:"y"`
	Box         [4]float32 `json:"box"`
	Disappeared int        `json:"disappeared"`
	Flag        bool       `json:"flag"`
}

// ObjectsResponse is returned by GET /api/objects
type ObjectsResponse struct {
	Objects        []ObjectView `json:"objects"`
	VisualTrackers int          `json:"visual_trackers"`
	NextID         int          `json:"next_id"`
}

// FlagRequest is the body of PUT /api/objects/:id/flag
type FlagRequest struct {
	Flag *bool `json:"flag" binding:"required"`
}

// NewServer returns the HTTP server streaming annotated frames and exposing
// the tracked objects
func (d *Demo) NewServer(addr string) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: d.SetRouter(),
	}
}

// SetRouter creates the gin routes
func (d *Demo) SetRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/stream", d.stream)

	apiRoutes := r.Group("/api")
	apiRoutes.GET("/objects", d.listObjects)
	apiRoutes.PUT("/objects/:id/flag", d.setFlag)

	return r
}

// stream writes frames to the client as a multipart MJPEG stream
func (d *Demo) stream(ctx *gin.Context) {

	log.Printf("New client connection established")

	ch := d.hub.subscribe()
	defer d.hub.unsubscribe(ch)

	ctx.Header("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			log.Printf("Client disconnected")
			return false

		case frame := <-ch:
			w.Write([]byte("--frame\r\n"))
			w.Write([]byte("Content-Type: image/jpeg\r\n\r\n"))
			w.Write(frame)
			w.Write([]byte("\r\n"))
			return true
		}
	})
}

// listObjects returns a snapshot of the tracked objects
func (d *Demo) listObjects(ctx *gin.Context) {

	d.mu.Lock()
	objs := d.ct.Objects()
	stats := d.ct.Stats()
	d.mu.Unlock()

	res := ObjectsResponse{
		Objects:        make([]ObjectView, 0, len(objs)),
		VisualTrackers: stats.VisualTrackers,
		NextID:         stats.NextID,
	}

	for _, obj := range objs {
		view := ObjectView{
			ID:          obj.ID,
			X:           obj.Centroid.X,
			Y:           obj.Centroid.Y,
			Disappeared: obj.Disappeared,
			Flag:        obj.Flag,
		}

		if !obj.Box.Empty() {
			copy(view.Box[:], obj.Box.Tlwh)
		}

		res.Objects = append(res.Objects, view)
	}

	ctx.JSON(http.StatusOK, res)
}

// setFlag sets the flag of a tracked object
func (d *Demo) setFlag(ctx *gin.Context) {

	id, err := strconv.Atoi(ctx.Param("id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid object id"})
		return
	}

	var req FlagRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d.mu.Lock()
	err = d.ct.SetFlag(id, *req.Flag)
	d.mu.Unlock()

	if errors.Is(err, tracker.ErrUnknownID) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id, "flag": *req.Flag})
}
