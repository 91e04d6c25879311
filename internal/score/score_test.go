package score

import (
	"testing"

	"github.com/busoc/satscheduler/internal/aoi"
	"github.com/busoc/satscheduler/internal/preprocess"
)

func aoiWith(id, country, continent string, priority float64) preprocess.PreprocessedAoi {
	a := aoi.New(id, nil, country, continent, "", priority)
	return preprocess.PreprocessedAoi{Aoi: a}
}

func TestScoreAppliesMultipliersAndExponent(t *testing.T) {
	tbl := Table{
		CountryMult:   map[string]float64{"FR": 2},
		ContinentMult: map[string]float64{"EU": 1.5},
		Exponent:      2,
	}
	a := aoiWith("a1", "FR", "EU", 3)
	got := Score(tbl, a)
	want := 9.0 * 2 * 1.5 // priority^2 * country * continent
	if got != want {
		t.Fatalf("Score() = %v, want %v", got, want)
	}
}

func TestScoreMissingLookupDefaultsToOne(t *testing.T) {
	tbl := Table{CountryMult: map[string]float64{"FR": 2}}
	a := aoiWith("a1", "DE", "EU", 4)
	if got := Score(tbl, a); got != 4 {
		t.Fatalf("Score() = %v, want 4 (missing country/continent default to 1)", got)
	}
}

func TestRegionMultiplierAppliesOnlyWhenPredicateTrue(t *testing.T) {
	tbl := Table{
		Regions: []RegionMultiplier{
			{Name: "restricted", Weight: 0, Contains: func(a *preprocess.PreprocessedAoi) bool {
				return a.Aoi.ID == "blocked"
			}},
		},
	}
	blocked := aoiWith("blocked", "", "", 5)
	open := aoiWith("open", "", "", 5)

	if got := Score(tbl, blocked); got != 0 {
		t.Fatalf("expected blocked aoi score 0, got %v", got)
	}
	if got := Score(tbl, open); got != 5 {
		t.Fatalf("expected open aoi score unaffected, got %v", got)
	}
}

func TestOrderDropsNonPositiveAndSortsDescThenByID(t *testing.T) {
	tbl := Table{}
	aois := []preprocess.PreprocessedAoi{
		aoiWith("b", "", "", 5),
		aoiWith("a", "", "", 5),
		aoiWith("z", "", "", 0),
		aoiWith("c", "", "", 10),
	}
	ordered := Order(tbl, aois)
	if len(ordered) != 3 {
		t.Fatalf("expected 3 aois after dropping non-positive score, got %d", len(ordered))
	}
	ids := []string{ordered[0].Aoi.Aoi.ID, ordered[1].Aoi.Aoi.ID, ordered[2].Aoi.Aoi.ID}
	want := []string{"c", "a", "b"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Order() ids = %v, want %v", ids, want)
		}
	}
}

func TestOrderIsStableAcrossRepeatedCalls(t *testing.T) {
	tbl := Table{}
	aois := []preprocess.PreprocessedAoi{
		aoiWith("x", "", "", 5),
		aoiWith("y", "", "", 5),
	}
	first := Order(tbl, aois)
	second := Order(tbl, aois)
	for i := range first {
		if first[i].Aoi.Aoi.ID != second[i].Aoi.Aoi.ID {
			t.Fatalf("Order() not order-stable: %v vs %v", first, second)
		}
	}
}
