package main

import (
	"flag"
	"log"
	"os"

	"github.com/yz3440/nyc-park-study/internal/analysis"
	"github.com/yz3440/nyc-park-study/internal/fsutil"
	"github.com/yz3440/nyc-park-study/internal/geo"
)

func main() {
	var input string
	flag.StringVar(&input, "input", "source_data/Parks_Properties_20251021_modified.geojson", "path to source parks GeoJSON")
	flag.Parse()

	fsys := fsutil.OSFileSystem{}
	fc, err := geo.ReadFeatureCollection(fsys, input)
	if err != nil {
		log.Fatalf("load parks: %v", err)
	}
	log.Printf("loaded %d parks from %s", len(fc.Features), input)

	stats := analysis.ComputeDatasetStats(fc)
	if err := stats.Render(os.Stdout); err != nil {
		log.Fatalf("render stats: %v", err)
	}
}
