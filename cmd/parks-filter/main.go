package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/yz3440/nyc-park-study/internal/filter"
	"github.com/yz3440/nyc-park-study/internal/fsutil"
	"github.com/yz3440/nyc-park-study/internal/geo"
)

func main() {
	var input string
	var keptPath string
	var removedPath string
	flag.StringVar(&input, "input", "source_data/Parks_Properties_20251021_modified.geojson", "path to source parks GeoJSON")
	flag.StringVar(&keptPath, "kept", "output_data/0b_parks_filtered.geojson", "output path for kept parks")
	flag.StringVar(&removedPath, "removed", "output_data/0b_parks_filtered_removed.geojson", "output path for removed parks")
	flag.Parse()

	fsys := fsutil.OSFileSystem{}
	fc, err := geo.ReadFeatureCollection(fsys, input)
	if err != nil {
		log.Fatalf("load parks: %v", err)
	}
	log.Printf("total parks before filtering: %d", len(fc.Features))

	kept, removed := filter.Filter(fc, filter.DefaultWhitelist())
	log.Printf("kept: %d, removed: %d", len(kept.Features), len(removed.Features))

	for _, out := range []string{keptPath, removedPath} {
		if err := fsys.MkdirAll(filepath.Dir(out), 0755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
	}
	if err := geo.WriteFeatureCollection(fsys, keptPath, kept); err != nil {
		log.Fatalf("write kept parks: %v", err)
	}
	if err := geo.WriteFeatureCollection(fsys, removedPath, removed); err != nil {
		log.Fatalf("write removed parks: %v", err)
	}
	log.Printf("saved %s and %s", keptPath, removedPath)
}
