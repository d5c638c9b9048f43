package hull

import (
	"github.com/paulmach/orb/geojson"

	"github.com/yz3440/nyc-park-study/internal/geo"
)

// Selector decides which features are subject to hull processing based
// on the display-name whitelist. An empty whitelist selects everything.
type Selector struct {
	whitelist    map[string]struct{}
	nameProperty string
}

// NewSelector builds a selector from the tuned whitelist and name
// property key.
func NewSelector(whitelist []string, nameProperty string) *Selector {
	s := &Selector{nameProperty: nameProperty}
	if len(whitelist) > 0 {
		s.whitelist = make(map[string]struct{}, len(whitelist))
		for _, name := range whitelist {
			s.whitelist[name] = struct{}{}
		}
	}
	return s
}

// ShouldProcess reports whether the feature is subject to hull
// processing. With a non-empty whitelist, the name property must be
// present, a string, and listed.
func (s *Selector) ShouldProcess(f *geojson.Feature) bool {
	if s.whitelist == nil {
		return true
	}
	name, ok := geo.StringProperty(f, s.nameProperty)
	if !ok {
		return false
	}
	_, listed := s.whitelist[name]
	return listed
}

// DisplayName returns the feature's display name, or the sentinel when
// the property is missing or not a string.
func (s *Selector) DisplayName(f *geojson.Feature) string {
	return geo.DisplayName(f, s.nameProperty)
}
