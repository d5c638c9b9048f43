// Command parks-hull runs the adaptive concave-hull pipeline over the
// filtered NYC parks dataset: every multi-part park geometry is merged
// into a single simplified boundary, with residual fragments exported
// for inspection.
package main

import (
	"flag"
	"log"
	"path/filepath"
	"time"

	"github.com/yz3440/nyc-park-study/internal/fsutil"
	"github.com/yz3440/nyc-park-study/internal/geo"
	"github.com/yz3440/nyc-park-study/internal/geosengine"
	"github.com/yz3440/nyc-park-study/internal/hull"
	"github.com/yz3440/nyc-park-study/internal/rundb"
)

func main() {
	var input string
	var hullsPath string
	var annotatedPath string
	var issuesDir string
	var tuningPath string
	var dbPath string
	flag.StringVar(&input, "input", "output_data/0b_parks_filtered.geojson", "path to filtered parks GeoJSON")
	flag.StringVar(&hullsPath, "hulls", "output_data/1a_parks_concave_hulls.geojson", "output path for hull-only collection")
	flag.StringVar(&annotatedPath, "annotated", "output_data/1a_parks_with_concave_hulls.geojson", "output path for annotated collection")
	flag.StringVar(&issuesDir, "issues", "temp/issue_geojson", "directory for residual multi-part exports")
	flag.StringVar(&tuningPath, "tuning", "", "optional JSON tuning file (partial overrides)")
	flag.StringVar(&dbPath, "db", "", "optional sqlite run database")
	flag.Parse()

	fsys := fsutil.OSFileSystem{}

	tuning := hull.DefaultTuning()
	if tuningPath != "" {
		var err error
		tuning, err = hull.LoadTuning(fsys, tuningPath)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
	}

	fc, err := geo.ReadFeatureCollection(fsys, input)
	if err != nil {
		log.Fatalf("load parks: %v", err)
	}
	log.Printf("loaded %d features from %s", len(fc.Features), input)

	pipeline, err := hull.NewPipeline(geosengine.New(), tuning)
	if err != nil {
		log.Fatalf("configure pipeline: %v", err)
	}

	started := time.Now()
	res, err := pipeline.Run(fc)
	if err != nil {
		log.Fatalf("pipeline: %v", err)
	}

	for _, out := range []string{hullsPath, annotatedPath} {
		if err := fsys.MkdirAll(filepath.Dir(out), 0755); err != nil {
			log.Fatalf("create output dir: %v", err)
		}
	}
	if err := geo.WriteFeatureCollection(fsys, hullsPath, res.Hulls); err != nil {
		log.Fatalf("write hulls: %v", err)
	}
	if err := geo.WriteFeatureCollection(fsys, annotatedPath, res.Annotated); err != nil {
		log.Fatalf("write annotated: %v", err)
	}
	if err := hull.WriteIssues(fsys, issuesDir, res.Issues); err != nil {
		log.Fatalf("write issues: %v", err)
	}

	res.LogSummary()

	if dbPath != "" {
		if err := recordRun(dbPath, input, hullsPath, annotatedPath, started, res); err != nil {
			log.Fatalf("record run: %v", err)
		}
	}
}

// recordRun persists the run summary and its residual issues so
// threshold tuning sessions can be compared later.
func recordRun(dbPath, input, hullsPath, annotatedPath string, started time.Time, res *hull.Result) error {
	db, err := rundb.NewDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	run := &rundb.Run{
		StartedAt:     started,
		FinishedAt:    time.Now(),
		InputPath:     input,
		HullsPath:     hullsPath,
		AnnotatedPath: annotatedPath,
		Processed:     res.Processed,
		Skipped:       res.Skipped,
		TinyRemoved:   res.TinyRemoved,
		IssueCount:    len(res.Issues),
	}
	issues := make([]rundb.IssueRow, 0, len(res.Issues))
	for _, issue := range res.Issues {
		issues = append(issues, rundb.IssueRow{
			Name:  issue.Name,
			Parts: geo.PartCount(issue.Feature.Geometry),
		})
	}

	if err := db.RecordRun(run, issues); err != nil {
		return err
	}
	log.Printf("recorded run %s in %s", run.ID, dbPath)
	return nil
}
