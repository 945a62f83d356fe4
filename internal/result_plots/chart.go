package plots

import (
	"fmt"
	"math"
	"time"

	"github.com/fogleman/gg"
)

const (
	DefaultWidth  = 1100
	DefaultHeight = 400

	marginLeft   = 70.0
	marginRight  = 20.0
	marginTop    = 36.0
	marginBottom = 44.0
	yTicks       = 5
)

// Chart is one line plot of a series over time.
type Chart struct {
	Title  string
	YLabel string
	Times  []time.Time
	Values []float64
	Width  int
	Height int
}

// Render draws the chart. NaN values leave a gap in the line.
func (c Chart) Render() (*gg.Context, error) {
	if len(c.Times) != len(c.Values) {
		return nil, fmt.Errorf("chart %q: %d timestamps for %d values", c.Title, len(c.Times), len(c.Values))
	}
	lo, hi, ok := valueRange(c.Values)
	if !ok {
		return nil, fmt.Errorf("chart %q: no numeric values", c.Title)
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	t0, t1 := c.Times[0], c.Times[len(c.Times)-1]
	span := t1.Sub(t0).Seconds()
	if span <= 0 {
		span = 1
	}

	w, h := c.Width, c.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	plotW := float64(w) - marginLeft - marginRight
	plotH := float64(h) - marginTop - marginBottom

	x := func(t time.Time) float64 { return marginLeft + t.Sub(t0).Seconds()/span*plotW }
	y := func(v float64) float64 { return marginTop + (hi-v)/(hi-lo)*plotH }

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// grid and y ticks
	dc.SetLineWidth(1)
	for i := 0; i <= yTicks; i++ {
		v := lo + (hi-lo)*float64(i)/yTicks
		py := y(v)
		dc.SetRGB(0.9, 0.9, 0.9)
		dc.DrawLine(marginLeft, py, marginLeft+plotW, py)
		dc.Stroke()
		dc.SetRGB(0.2, 0.2, 0.2)
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", v), marginLeft-6, py, 1, 0.5)
	}

	// axes
	dc.SetRGB(0.2, 0.2, 0.2)
	dc.DrawLine(marginLeft, marginTop, marginLeft, marginTop+plotH)
	dc.DrawLine(marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH)
	dc.Stroke()

	dc.DrawStringAnchored(t0.Format("02.01. 15:04"), marginLeft, marginTop+plotH+14, 0, 0.5)
	dc.DrawStringAnchored(t1.Format("02.01. 15:04"), marginLeft+plotW, marginTop+plotH+14, 1, 0.5)
	dc.DrawStringAnchored("Zeit", marginLeft+plotW/2, float64(h)-10, 0.5, 0.5)
	dc.DrawStringAnchored(c.Title, float64(w)/2, marginTop/2, 0.5, 0.5)

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 14, marginTop+plotH/2)
	dc.DrawStringAnchored(c.YLabel, 14, marginTop+plotH/2, 0.5, 0.5)
	dc.Pop()

	// series
	dc.SetRGB(0.12, 0.47, 0.71)
	dc.SetLineWidth(1.2)
	pen := false
	for i, v := range c.Values {
		if math.IsNaN(v) {
			pen = false
			continue
		}
		px, py := x(c.Times[i]), y(v)
		if pen {
			dc.LineTo(px, py)
		} else {
			dc.NewSubPath()
			dc.MoveTo(px, py)
			pen = true
		}
	}
	dc.Stroke()

	return dc, nil
}

// Save renders the chart into a PNG file.
func (c Chart) Save(path string) error {
	dc, err := c.Render()
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

func valueRange(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	return lo, hi, ok
}
