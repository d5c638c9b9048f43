package analysis

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/paulmach/orb/geojson"
	"gonum.org/v1/gonum/stat"

	"github.com/yz3440/nyc-park-study/internal/geo"
)

// CountRow is a value and how many features carry it.
type CountRow struct {
	Value string
	Count int
}

// BoroughRow pairs a borough's park count with its total acreage.
type BoroughRow struct {
	Borough    string
	Count      int
	TotalAcres float64
}

// AcresSummary holds the distribution summary of the acres column.
type AcresSummary struct {
	N      int
	Mean   float64
	Median float64
	P90    float64
	Max    float64
}

// DatasetStats describes the source parks dataset before any
// filtering: how the categorical columns and geometry types are
// distributed, and a summary of park sizes.
type DatasetStats struct {
	Total               int
	TypeCategories      []CountRow
	MissingTypeCategory int
	Subcategories       []CountRow
	MissingSubcategory  int
	Boroughs            []BoroughRow
	GeometryTypes       []CountRow
	Acres               *AcresSummary
}

// subcategoryTableLimit caps the subcategory table, the column has a
// long tail of one-off values.
const subcategoryTableLimit = 20

// ComputeDatasetStats walks fc once and builds the distribution
// tables.
func ComputeDatasetStats(fc *geojson.FeatureCollection) DatasetStats {
	ds := DatasetStats{Total: len(fc.Features)}

	typeCounts := map[string]int{}
	subCounts := map[string]int{}
	boroughCounts := map[string]int{}
	boroughAcres := map[string]float64{}
	geomCounts := map[string]int{}
	var acres []float64

	for _, f := range fc.Features {
		if v, ok := geo.StringProperty(f, "typecategory"); ok && v != "" {
			typeCounts[v]++
		} else {
			ds.MissingTypeCategory++
		}
		if v, ok := geo.StringProperty(f, "subcategory"); ok && v != "" {
			subCounts[v]++
		} else {
			ds.MissingSubcategory++
		}

		borough, _ := geo.StringProperty(f, "borough")
		if borough != "" {
			boroughCounts[borough]++
		}
		if a, ok := numericProperty(f, "acres"); ok {
			acres = append(acres, a)
			if borough != "" {
				boroughAcres[borough] += a
			}
		}

		if f.Geometry != nil {
			geomCounts[f.Geometry.GeoJSONType()]++
		}
	}

	ds.TypeCategories = sortedCounts(typeCounts)
	ds.Subcategories = sortedCounts(subCounts)
	if len(ds.Subcategories) > subcategoryTableLimit {
		ds.Subcategories = ds.Subcategories[:subcategoryTableLimit]
	}
	ds.GeometryTypes = sortedCounts(geomCounts)

	for b, total := range boroughAcres {
		ds.Boroughs = append(ds.Boroughs, BoroughRow{Borough: b, Count: boroughCounts[b], TotalAcres: total})
	}
	for b, n := range boroughCounts {
		if _, ok := boroughAcres[b]; !ok {
			ds.Boroughs = append(ds.Boroughs, BoroughRow{Borough: b, Count: n})
		}
	}
	sort.Slice(ds.Boroughs, func(i, j int) bool {
		if ds.Boroughs[i].TotalAcres != ds.Boroughs[j].TotalAcres {
			return ds.Boroughs[i].TotalAcres > ds.Boroughs[j].TotalAcres
		}
		return ds.Boroughs[i].Borough < ds.Boroughs[j].Borough
	})

	if len(acres) > 0 {
		sort.Float64s(acres)
		ds.Acres = &AcresSummary{
			N:      len(acres),
			Mean:   stat.Mean(acres, nil),
			Median: stat.Quantile(0.5, stat.Empirical, acres, nil),
			P90:    stat.Quantile(0.9, stat.Empirical, acres, nil),
			Max:    acres[len(acres)-1],
		}
	}

	return ds
}

// Render writes the stats as aligned plain-text tables.
func (ds DatasetStats) Render(w io.Writer) error {
	fmt.Fprintf(w, "Total parks: %d\n", ds.Total)

	fmt.Fprintf(w, "\nTYPECATEGORY DISTRIBUTION (missing: %d)\n", ds.MissingTypeCategory)
	writeCountTable(w, "Type Category", ds.TypeCategories)

	fmt.Fprintf(w, "\nSUBCATEGORY DISTRIBUTION, TOP %d (missing: %d)\n", subcategoryTableLimit, ds.MissingSubcategory)
	writeCountTable(w, "Subcategory", ds.Subcategories)

	fmt.Fprintf(w, "\nBOROUGH DISTRIBUTION\n")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Borough\tPark Count\tTotal Acres\n")
	for _, row := range ds.Boroughs {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\n", row.Borough, row.Count, row.TotalAcres)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nGEOMETRY TYPE DISTRIBUTION\n")
	writeCountTable(w, "Geometry Type", ds.GeometryTypes)

	if ds.Acres != nil {
		fmt.Fprintf(w, "\nACRES SUMMARY (n=%d)\n", ds.Acres.N)
		fmt.Fprintf(w, "mean %.2f  median %.2f  p90 %.2f  max %.2f\n",
			ds.Acres.Mean, ds.Acres.Median, ds.Acres.P90, ds.Acres.Max)
	}
	return nil
}

func writeCountTable(w io.Writer, header string, rows []CountRow) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tCount\n", header)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\n", row.Value, row.Count)
	}
	tw.Flush()
}

// sortedCounts orders by count descending, then value for stable
// output.
func sortedCounts(m map[string]int) []CountRow {
	rows := make([]CountRow, 0, len(m))
	for v, n := range m {
		rows = append(rows, CountRow{Value: v, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Value < rows[j].Value
	})
	return rows
}

// numericProperty reads a property that may arrive as a JSON number or
// a numeric string.
func numericProperty(f *geojson.Feature, key string) (float64, bool) {
	switch v := f.Properties[key].(type) {
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(v, 64)
		return n, err == nil
	default:
		return 0, false
	}
}
