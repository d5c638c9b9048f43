package analysis

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// reportMetrics lists the per-hull metrics the report charts, in
// display order.
var reportMetrics = []struct {
	Block string
	Key   string
	Title string
}{
	{CirclePropertyKey, "polsby_popper", "Polsby-Popper Compactness"},
	{CirclePropertyKey, "schwartzberg", "Schwartzberg Index"},
	{CirclePropertyKey, "reock_compactness", "Reock Compactness"},
	{RectangularityPropertyKey, "mrr_rectangularity", "Rectangularity"},
	{TriangularityPropertyKey, "triangularity", "Triangularity"},
	{TriangularityPropertyKey, "triangle_regularity", "Triangle Regularity"},
}

// histogramBins is the bucket count for both the HTML and PNG
// histograms.
const histogramBins = 20

// CollectMetricSamples pulls the charted metric values out of an
// analyzed collection, keyed "block.key". It accepts both the structs
// AnnotateShapeMetrics attaches in-process and the generic maps that
// come back from a re-read GeoJSON file.
func CollectMetricSamples(fc *geojson.FeatureCollection) map[string][]float64 {
	samples := make(map[string][]float64, len(reportMetrics))
	for _, m := range reportMetrics {
		key := m.Block + "." + m.Key
		for _, f := range fc.Features {
			block, ok := f.Properties[m.Block]
			if !ok || block == nil {
				continue
			}
			if v, ok := metricValue(block, m.Key); ok {
				samples[key] = append(samples[key], v)
			}
		}
	}
	return samples
}

// metricValue digs a named float out of an analysis block regardless
// of its concrete representation.
func metricValue(block interface{}, key string) (float64, bool) {
	switch b := block.(type) {
	case map[string]interface{}:
		v, ok := b[key].(float64)
		return v, ok
	case CircleAnalysis:
		switch key {
		case "polsby_popper":
			return deref(b.PolsbyPopper)
		case "schwartzberg":
			return deref(b.Schwartzberg)
		case "reock_compactness":
			return deref(b.ReockCompactness)
		}
	case RectangularityAnalysis:
		if key == "mrr_rectangularity" {
			return deref(b.MrrRectangularity)
		}
	case TriangularityAnalysis:
		switch key {
		case "triangularity":
			return deref(b.Triangularity)
		case "triangle_regularity":
			return deref(b.TriangleRegularity)
		}
	}
	return 0, false
}

func deref(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

// histogram buckets vs into n equal-width bins over [min, max].
func histogram(vs []float64, n int) (labels []string, counts []int) {
	if len(vs) == 0 || n <= 0 {
		return nil, nil
	}
	lo, hi := vs[0], vs[0]
	for _, v := range vs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	width := (hi - lo) / float64(n)
	if width == 0 {
		return []string{fmt.Sprintf("%.3g", lo)}, []int{len(vs)}
	}

	counts = make([]int, n)
	for _, v := range vs {
		bin := int((v - lo) / width)
		if bin >= n {
			bin = n - 1
		}
		counts[bin]++
	}
	labels = make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.3g", lo+(float64(i)+0.5)*width)
	}
	return labels, counts
}

// LogMetricSummaries prints one summary line per charted metric.
func LogMetricSummaries(samples map[string][]float64) {
	for _, m := range reportMetrics {
		vs := samples[m.Block+"."+m.Key]
		if len(vs) == 0 {
			continue
		}
		sorted := append([]float64(nil), vs...)
		sort.Float64s(sorted)
		log.Printf("%s: n=%d mean=%.4f median=%.4f p90=%.4f",
			m.Key, len(vs),
			stat.Mean(vs, nil),
			stat.Quantile(0.5, stat.Empirical, sorted, nil),
			stat.Quantile(0.9, stat.Empirical, sorted, nil))
	}
}

// RenderHTMLReport writes a single-page ECharts report with one
// histogram per shape metric.
func RenderHTMLReport(w io.Writer, samples map[string][]float64) error {
	page := components.NewPage()

	for _, m := range reportMetrics {
		vs := samples[m.Block+"."+m.Key]
		if len(vs) == 0 {
			continue
		}
		sorted := append([]float64(nil), vs...)
		sort.Float64s(sorted)
		median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

		labels, counts := histogram(vs, histogramBins)
		data := make([]opts.BarData, 0, len(counts))
		for _, c := range counts {
			data = append(data, opts.BarData{Value: c})
		}

		bar := charts.NewBar()
		bar.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: "Park Hull Shape Metrics", Width: "900px", Height: "420px"}),
			charts.WithTitleOpts(opts.Title{
				Title:    m.Title,
				Subtitle: fmt.Sprintf("n=%d median=%.3f mean=%.3f", len(vs), median, stat.Mean(vs, nil)),
			}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
			charts.WithXAxisOpts(opts.XAxis{Name: m.Key}),
			charts.WithYAxisOpts(opts.YAxis{Name: "parks"}),
		)
		bar.SetXAxis(labels).AddSeries("count", data)
		page.AddCharts(bar)
	}

	return page.Render(w)
}

// SaveHistogramPNGs writes one gonum/plot histogram per metric into
// dir and returns the number of files written.
func SaveHistogramPNGs(dir string, samples map[string][]float64) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create output dir: %w", err)
	}

	written := 0
	for _, m := range reportMetrics {
		vs := samples[m.Block+"."+m.Key]
		if len(vs) == 0 {
			continue
		}

		p := plot.New()
		p.Title.Text = m.Title
		p.X.Label.Text = m.Key
		p.Y.Label.Text = "parks"

		h, err := plotter.NewHist(plotter.Values(vs), histogramBins)
		if err != nil {
			return written, fmt.Errorf("%s: %w", m.Key, err)
		}
		p.Add(h)

		file := filepath.Join(dir, m.Key+".png")
		if err := p.Save(8*vg.Inch, 4*vg.Inch, file); err != nil {
			return written, fmt.Errorf("save %s: %w", file, err)
		}
		written++
	}
	return written, nil
}
