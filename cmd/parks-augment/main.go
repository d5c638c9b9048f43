package main

import (
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
	flag.StringVar(&input, "input", "output_data/0b_parks_filtered.geojson", "path to filtered parks GeoJSON")
	flag.StringVar(&output, "output", "output_data/0c_parks_filtered_augmented.geojson", "output path for augmented parks")
	flag.Parse()

	fsys := fsutil.OSFileSystem{}
	fc, err := geo.ReadFeatureCollection(fsys, input)
	if err != nil {
		log.Fatalf("load parks: %v", err)
	}
	log.Printf("loaded %d parks", len(fc.Features))

	if err := analysis.Augment(geosengine.New(), fc); err != nil {
		log.Fatalf("augment: %v", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(output), 0755); err != nil {
		log.Fatalf("create output dir: %v", err)
	}
	if err := geo.WriteFeatureCollection(fsys, output, fc); err != nil {
		log.Fatalf("write augmented parks: %v", err)
	}
	log.Printf("saved %s", output)
}
