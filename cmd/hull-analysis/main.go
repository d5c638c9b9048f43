package main

import (
	"bytes"
	"flag"
	"log"
	"path/filepath"

	"github.com/yz3440/nyc-park-study/internal/analysis"
	"github.com/yz3440/nyc-park-study/internal/fsutil"
	"github.com/yz3440/nyc-park-study/internal/geo"
	"github.com/yz3440/nyc-park-study/internal/geosengine"
)

func main() {
	var input string
	var output string
	var reportPath string
	var plotsDir string
	flag.StringVar(&input, "input", "output_data/1a_parks_with_concave_hulls.geojson", "path to annotated parks GeoJSON")
	flag.StringVar(&output, "output", "output_data/2a_parks_concave_hull_analysis.geojson", "output path for analyzed parks")
	flag.StringVar(&reportPath, "report", "", "optional path for the HTML metrics report")
	flag.StringVar(&plotsDir, "plots", "", "optional directory for histogram PNGs")
	flag.Parse()

	fsys := fsutil.OSFileSystem{}
	fc, err := geo.ReadFeatureCollection(fsys, input)
	if err != nil {
		log.Fatalf("load annotated parks: %v", err)
	}
	log.Printf("loaded %d parks", len(fc.Features))

	if err := analysis.AnnotateShapeMetrics(geosengine.New(), fc); err != nil {
		log.Fatalf("shape metrics: %v", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(output), 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := geo.WriteFeatureCollection(fsys, output, fc); err != nil {
		log.Fatalf("write analyzed parks: %v", err)
	}
	log.Printf("saved %s", output)

	samples := analysis.CollectMetricSamples(fc)
	analysis.LogMetricSummaries(samples)

	if reportPath != "" {
		var buf bytes.Buffer
		if err := analysis.RenderHTMLReport(&buf, samples); err != nil {
			log.Fatalf("render report: %v", err)
		}
		if err := fsys.MkdirAll(filepath.Dir(reportPath), 0755); err != nil {
			log.Fatalf("create report dir: %v", err)
		}
		if err := fsys.WriteFile(reportPath, buf.Bytes(), 0644); err != nil {
			log.Fatalf("write report: %v", err)
		}
		log.Printf("wrote report to %s", reportPath)
	}

	if plotsDir != "" {
		n, err := analysis.SaveHistogramPNGs(plotsDir, samples)
		if err != nil {
			log.Fatalf("save histograms: %v", err)
		}
		log.Printf("wrote %d histograms to %s", n, plotsDir)
	}
}
