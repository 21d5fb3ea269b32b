package rank

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/amenity-labs/amenity-finder/internal/geo"
	"github.com/amenity-labs/amenity-finder/internal/model"
)

// parallelThreshold is the input size above which scoring fans out across
// goroutines. Each record is scored independently, so order is fixed by
// writing into a preallocated slice by index.
const parallelThreshold = 128

// Rank attaches distance and rank score to each record and returns a new
// slice sorted descending by score. Records without coordinates are excluded
// rather than given a fabricated distance. The input is never mutated, ties
// keep provider order, and re-ranking with the same origin is idempotent.
func Rank(records []model.PlaceRecord, origin model.Coordinates) []model.RankedResult {
	located := make([]model.PlaceRecord, 0, len(records))
	for _, r := range records {
		if r.Location != nil {
			located = append(located, r)
		}
	}

	ranked := make([]model.RankedResult, len(located))
	if len(located) > parallelThreshold {
		scoreParallel(located, origin, ranked)
	} else {
		for i, r := range located {
			ranked[i] = scoreOne(r, origin)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankScore > ranked[j].RankScore
	})
	return ranked
}

func scoreOne(r model.PlaceRecord, origin model.Coordinates) model.RankedResult {
	distance := geo.DistanceKm(origin, *r.Location)
	return model.RankedResult{
		PlaceRecord: r,
		DistanceKm:  distance,
		RankScore:   Score(r.RatingValue(), r.ReviewCountValue(), distance),
	}
}

func scoreParallel(records []model.PlaceRecord, origin model.Coordinates, out []model.RankedResult) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	chunk := (len(records) + runtime.GOMAXPROCS(0) - 1) / runtime.GOMAXPROCS(0)
	for start := 0; start < len(records); start += chunk {
		end := min(start+chunk, len(records))
		g.Go(func() error {
			for i := start; i < end; i++ {
				out[i] = scoreOne(records[i], origin)
			}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
}
