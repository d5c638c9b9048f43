package hull

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/yz3440/nyc-park-study/internal/geo"
)

// HullProperty is the property key under which the annotated output
// carries the serialized hull geometry.
const HullProperty = "concave_hull_polygon"

// SearchRecord pairs a searched feature's display name with its
// search outcome, for the run summary and the run database.
type SearchRecord struct {
	Name    string
	Outcome Outcome
}

// Result holds everything one pipeline run produces: the two parallel
// output collections, the residual issues, and counters.
type Result struct {
	// Hulls is the collection with each processed feature's geometry
	// replaced by its hull.
	Hulls *geojson.FeatureCollection

	// Annotated is the collection with original geometries plus the
	// serialized hull stored as a property.
	Annotated *geojson.FeatureCollection

	// Issues lists features still multi-part after the sieve, in
	// collection order.
	Issues []Issue

	// Searches records the outcome of every adaptive search performed.
	Searches []SearchRecord

	Processed   int
	Skipped     int
	TinyRemoved int
}

// Pipeline wires the selector, searcher, sieve and classifier into the
// sequential per-feature run. Features are handled one at a time in
// input order; both output collections preserve that order exactly.
type Pipeline struct {
	tuning   Tuning
	selector *Selector
	searcher *Searcher
}

// NewPipeline builds a pipeline around the given engine and tuning.
func NewPipeline(engine Engine, tuning Tuning) (*Pipeline, error) {
	if err := tuning.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		tuning:   tuning,
		selector: NewSelector(tuning.Whitelist, tuning.NameProperty),
		searcher: NewSearcher(engine, tuning),
	}, nil
}

// Run processes the collection and assembles both outputs. Per-feature
// engine failures never abort the run; the only errors returned are
// serialization failures while building the annotated properties.
func (p *Pipeline) Run(fc *geojson.FeatureCollection) (*Result, error) {
	res := &Result{
		Hulls:     geojson.NewFeatureCollection(),
		Annotated: geojson.NewFeatureCollection(),
	}

	for _, f := range fc.Features {
		if !p.selector.ShouldProcess(f) {
			res.Hulls.Append(geo.CloneFeature(f))
			res.Annotated.Append(geo.CloneFeature(f))
			res.Skipped++
			continue
		}

		mp, multiPart := f.Geometry.(orb.MultiPolygon)
		if !multiPart || len(mp) <= 1 {
			// Single-part and non-polygonal geometries bypass the
			// search and pass through unchanged.
			res.Hulls.Append(geo.CloneFeature(f))
			res.Annotated.Append(geo.CloneFeature(f))
			res.Processed++
			continue
		}

		name := p.selector.DisplayName(f)
		if n, ok := geo.StringProperty(f, "name311"); ok {
			log.Printf("Name: %s", n)
		}
		outcome := p.searcher.Search(name, mp)
		res.Searches = append(res.Searches, SearchRecord{Name: name, Outcome: outcome})

		hullFeature := geo.CloneFeature(f)
		annotated := geo.CloneFeature(f)

		if outcome.Geometry != nil {
			hullFeature.Geometry = orb.Clone(outcome.Geometry)

			serialized, err := geo.SerializeGeometry(outcome.Geometry)
			if err != nil {
				return nil, fmt.Errorf("failed to serialize hull for %s: %w", name, err)
			}
			annotated.Properties[HullProperty] = serialized
		}

		res.Hulls.Append(hullFeature)
		res.Annotated.Append(annotated)

		res.Processed++
		if res.Processed%100 == 0 {
			log.Printf("  processed %d features...", res.Processed)
		}
	}

	p.sieve(res)
	res.Issues = Classify(res.Hulls, p.tuning.NameProperty)
	return res, nil
}

// sieve runs the tiny-fragment pass over the assembled hull-only
// collection, replacing two-part hulls that carry one negligible
// sliver with their large part alone.
func (p *Pipeline) sieve(res *Result) {
	for _, f := range res.Hulls.Features {
		replaced, elidedSqM, ok := SieveTinyFragment(f.Geometry, p.tuning.TinyFragmentSqMeters)
		if !ok {
			continue
		}
		f.Geometry = replaced
		res.TinyRemoved++
		log.Printf("  ✓ %s: removed tiny polygon (%d sq m)",
			p.selector.DisplayName(f), int(elidedSqM))
	}
}

// LogSummary prints the end-of-run report: counts always, issue names
// when any remain. Issues are warnings, not failures.
func (res *Result) LogSummary() {
	log.Printf("Processed %d features", res.Processed)
	if res.Skipped > 0 {
		log.Printf("Skipped %d features (not in whitelist)", res.Skipped)
	}
	if res.TinyRemoved > 0 {
		log.Printf("Removed %d tiny polygon(s) from MultiPolygons", res.TinyRemoved)
	}

	if len(res.Issues) == 0 {
		if res.Processed > 0 {
			log.Printf("All processed features have single-polygon geometries")
		}
		return
	}

	log.Printf("WARNING: %d feature(s) still have MultiPolygons with multiple polygons:", len(res.Issues))
	for _, issue := range res.Issues {
		log.Printf("  - %s", issue.Name)
	}
	log.Printf("Consider increasing the base threshold to merge these polygons")
}
