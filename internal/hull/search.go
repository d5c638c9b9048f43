package hull

import (
	"log"

	"github.com/paulmach/orb"

	"github.com/yz3440/nyc-park-study/internal/geo"
	"github.com/yz3440/nyc-park-study/internal/units"
)

// OutcomeKind classifies the result of an adaptive hull search.
type OutcomeKind int

const (
	// OutcomeResolved means the hull collapsed to a single polygonal part.
	OutcomeResolved OutcomeKind = iota

	// OutcomeFragmented means the attempt budget ran out with the best
	// available hull still split into multiple parts.
	OutcomeFragmented

	// OutcomeEngineFailure means every attempt was rejected by the
	// engine, so there is no hull at all.
	OutcomeEngineFailure
)

// Outcome is the result of one feature's hull search.
type Outcome struct {
	Kind OutcomeKind

	// Geometry is the computed hull: a single polygon for
	// OutcomeResolved, the last multi-part hull for OutcomeFragmented,
	// nil for OutcomeEngineFailure.
	Geometry orb.Geometry

	// Parts is the part count of Geometry.
	Parts int

	// Attempts is the number of engine invocations made.
	Attempts int

	// FinalThresholdMeters is the edge-length threshold of the final
	// attempt, in meters.
	FinalThresholdMeters float64
}

// Searcher runs the bounded threshold-escalation search. The threshold
// starts at the tuned base and grows by the tuned increment after every
// engine failure or still-fragmented result, so the k-th retry uses
// base + k*increment. The loop always terminates within MaxAttempts
// invocations regardless of engine behaviour.
type Searcher struct {
	engine Engine
	tuning Tuning
}

// NewSearcher creates a searcher with the given engine and tuning.
func NewSearcher(engine Engine, tuning Tuning) *Searcher {
	return &Searcher{engine: engine, tuning: tuning}
}

// Search computes a concave hull for a multi-part geometry, escalating
// the threshold until the result is a single part or the attempt budget
// is exhausted. name is only used for diagnostics.
func (s *Searcher) Search(name string, g orb.MultiPolygon) Outcome {
	baseDeg := units.MetersToDegrees(s.tuning.BaseThresholdMeters)
	incDeg := units.MetersToDegrees(s.tuning.ThresholdIncrementMeters)

	var lastHull orb.Geometry
	var thresholdDeg float64

	for attempt := 0; attempt < s.tuning.MaxAttempts; attempt++ {
		thresholdDeg = baseDeg + float64(attempt)*incDeg

		hull, err := s.engine.ConcaveHullOfPolygons(g, thresholdDeg, true, false)
		if err != nil {
			// Engine rejections are recoverable: a larger edge length
			// often succeeds where a tight one does not.
			log.Printf("concave hull failed for %s at %.0fm, increasing threshold: %v",
				name, units.DegreesToMeters(thresholdDeg), err)
			continue
		}

		lastHull = hull
		if geo.PartCount(hull) == 1 {
			if attempt > 0 {
				log.Printf("  ⚡ %s required %d attempts (threshold: %dm)",
					name, attempt+1, int(units.DegreesToMeters(thresholdDeg)))
			}
			return Outcome{
				Kind:                 OutcomeResolved,
				Geometry:             hull,
				Parts:                1,
				Attempts:             attempt + 1,
				FinalThresholdMeters: units.DegreesToMeters(thresholdDeg),
			}
		}
	}

	if lastHull == nil {
		log.Printf("  ✗ %s: every hull attempt failed", name)
		return Outcome{
			Kind:                 OutcomeEngineFailure,
			Attempts:             s.tuning.MaxAttempts,
			FinalThresholdMeters: units.DegreesToMeters(thresholdDeg),
		}
	}

	parts := geo.PartCount(lastHull)
	log.Printf("  ⚠ %s still has %d parts after %d attempts (threshold: %dm)",
		name, parts, s.tuning.MaxAttempts, int(units.DegreesToMeters(thresholdDeg)))
	return Outcome{
		Kind:                 OutcomeFragmented,
		Geometry:             lastHull,
		Parts:                parts,
		Attempts:             s.tuning.MaxAttempts,
		FinalThresholdMeters: units.DegreesToMeters(thresholdDeg),
	}
}
