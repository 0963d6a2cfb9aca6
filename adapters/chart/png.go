package chart

import (
	"context"
	"image/color"
	"os"
	"slices"

	"mealtoys/domain/collection"
	"mealtoys/internal/errors"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// Image size in pixels. The canvas is drawn at 72 dpi, where one point
	// is one pixel; plot.Save would use vgimg's 96 dpi default instead.
	imageWidth  = 640
	imageHeight = 480
	imageDPI    = 72
)

// PNGRenderer implements ports.ChartPort by drawing a bar chart of bucket
// counts to a fixed-size PNG
type PNGRenderer struct {
	path   string
	logger *log.Logger
}

// NewPNGRenderer creates a renderer writing to path
func NewPNGRenderer(path string, logger *log.Logger) *PNGRenderer {
	return &PNGRenderer{
		path:   path,
		logger: logger.With("component", "chart"),
	}
}

// RenderHistogram draws one bar per bucket and saves the image
func (r *PNGRenderer) RenderHistogram(ctx context.Context, h *collection.Histogram) error {
	if h == nil || len(h.Counts) == 0 {
		return errors.InvalidInput("histogram has no buckets to render")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := buildPlot(h)
	if err != nil {
		return errors.RenderFailed(r.path, err)
	}

	if err := r.save(p); err != nil {
		return errors.RenderFailed(r.path, err)
	}

	r.logger.Info("histogram saved", "path", r.path, "buckets", h.Buckets())
	return nil
}

func (r *PNGRenderer) save(p *plot.Plot) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Points(imageWidth), vg.Points(imageHeight)),
		vgimg.UseDPI(imageDPI),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(r.path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func buildPlot(h *collection.Histogram) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Histogram"
	p.X.Label.Text = "Bucket"
	p.Y.Label.Text = "Count"
	p.Y.Min = 0
	p.Y.Max = float64(max(slices.Max(h.Counts), 1))

	values := make(plotter.Values, len(h.Counts))
	for i, c := range h.Counts {
		values[i] = float64(c)
	}

	width := vg.Points(float64(imageWidth-80) / float64(h.Buckets()))
	bars, err := plotter.NewBarChart(values, width)
	if err != nil {
		return nil, err
	}
	bars.Color = color.NRGBA{R: 255, A: 128}
	bars.LineStyle.Width = vg.Length(0)

	// horizontal mesh only
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{Y: 220}

	p.Add(grid, bars)
	return p, nil
}
