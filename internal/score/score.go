// Package score assigns a scalar priority score to each preprocessed
// AOI and orders them for the scheduler's batching pass.
package score

import (
	"math"
	"sort"

	"github.com/busoc/satscheduler/internal/preprocess"
)

// RegionMultiplier attaches a multiplicative weight to a named region
// (an arbitrary tag, not necessarily a country or continent), applied
// either when the region strictly contains the aoi's polygon or when
// it merely overlaps it.
type RegionMultiplier struct {
	Name     string
	Weight   float64
	Contains func(a *preprocess.PreprocessedAoi) bool
}

// Table holds the lookup tables the score function reads: per-country
// and per-continent multiplier maps plus an ordered list of region
// multipliers, each independently contributing a factor. A missing
// lookup in any table defaults to 1.
type Table struct {
	CountryMult   map[string]float64
	ContinentMult map[string]float64
	Regions       []RegionMultiplier
	Exponent      float64 // the "p" in priority(a)^p; 0 defaults to 1
}

// ScoredAoi pairs a computed score with the PreprocessedAoi it was
// computed from. The scoring order is (desc score, asc aoi id).
type ScoredAoi struct {
	Score float64
	Aoi   preprocess.PreprocessedAoi
}

// Score computes S(a) = priority(a)^p * country_mult(a) *
// continent_mult(a) * Π region_mult_k(a).
func Score(t Table, a preprocess.PreprocessedAoi) float64 {
	p := t.Exponent
	if p == 0 {
		p = 1
	}
	s := math.Pow(a.Aoi.Priority, p)
	s *= lookup(t.CountryMult, a.Aoi.Country)
	s *= lookup(t.ContinentMult, a.Aoi.Continent)
	for _, r := range t.Regions {
		applies := r.Contains == nil || r.Contains(&a)
		if applies {
			s *= r.Weight
		}
	}
	return s
}

func lookup(m map[string]float64, key string) float64 {
	if m == nil {
		return 1
	}
	if v, ok := m[key]; ok {
		return v
	}
	return 1
}

// Order computes scores for every aoi, drops non-positive scores, and
// returns the rest sorted descending by score, ties broken ascending
// by aoi id. The sort is stable, so equal (score, id) inputs preserve
// relative order across calls.
func Order(t Table, aois []preprocess.PreprocessedAoi) []ScoredAoi {
	out := make([]ScoredAoi, 0, len(aois))
	for _, a := range aois {
		s := Score(t, a)
		if s <= 0 {
			continue
		}
		out = append(out, ScoredAoi{Score: s, Aoi: a})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Aoi.Aoi.ID < out[j].Aoi.Aoi.ID
	})
	return out
}
