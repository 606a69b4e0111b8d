package render

import (
	"fmt"
	"sort"

	"github.com/swdee/go-objtrack/tracker"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotTrails saves a PNG (or any format gonum/plot supports by extension)
// plotting the centroid history of the given object IDs.  Width and height
// are the frame dimensions, the image Y axis is flipped so the plot reads
// the same way as the video.  If ids is nil every ID in the trail is plotted.
func PlotTrails(trail *tracker.Trail, ids []int, width, height int, path string) error {

	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	if ids == nil {
		ids = trail.IDs()
	} else {
		ids = append([]int(nil), ids...)
	}

	sort.Ints(ids)

	p := plot.New()
	p.Title.Text = "Object Trajectories"
	p.X.Label.Text = "X (px)"
	p.Y.Label.Text = "Y (px)"
	p.X.Min, p.X.Max = 0, float64(width)
	p.Y.Min, p.Y.Max = 0, float64(height)
	p.Add(plotter.NewGrid())

	for _, id := range ids {

		points := trail.GetPoints(id)

		if len(points) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(points))

		for i, pt := range points {
			xys[i] = plotter.XY{X: float64(pt.X), Y: float64(height - pt.Y)}
		}

		line, err := plotter.NewLine(xys)

		if err != nil {
			return fmt.Errorf("error plotting object %d: %w", id, err)
		}

		line.Color = ObjectColor(id)
		line.Width = vg.Points(1.5)

		p.Add(line)
		p.Legend.Add(fmt.Sprintf("ID %d", id), line)
	}

	p.Legend.Top = true
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	// keep the frame aspect ratio
	plotW := 10 * vg.Inch
	plotH := plotW * vg.Length(height) / vg.Length(width)

	if err := p.Save(plotW, plotH, path); err != nil {
		return fmt.Errorf("error saving trail plot %s: %w", path, err)
	}

	return nil
}
