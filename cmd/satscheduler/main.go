package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/busoc/satscheduler/internal/aoi"
	"github.com/busoc/satscheduler/internal/config"
	"github.com/busoc/satscheduler/internal/interval"
	"github.com/busoc/satscheduler/internal/preprocess"
	"github.com/busoc/satscheduler/internal/satellite"
	"github.com/busoc/satscheduler/internal/satio"
	"github.com/busoc/satscheduler/internal/schedule"
	"github.com/busoc/satscheduler/internal/score"
)

const (
	Program   = "satscheduler"
	Version   = "1.0.0"
	BuildTime = "2026-07-29"
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetPrefix(fmt.Sprintf("[%s-%s] ", Program, Version))

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s schedules satellite imaging access against a TOML mission config\n\n", Program)
		fmt.Fprintf(os.Stderr, "usage: %s [flags] config.toml\n", Program)
		flag.PrintDefaults()
	}
}

func main() {
	var (
		reportFile  = flag.String("report", "", "access report CSV path (default stdout)")
		scheduleDir = flag.String("schedule-dir", ".", "directory to write one schedule JSON per payload")
		version     = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *version {
		fmt.Fprintf(os.Stderr, "%s-%s (%s)\n", Program, Version, BuildTime)
		return
	}
	if flag.NArg() != 1 {
		Exit(badUsage("missing mission configuration file"))
	}

	Exit(run(flag.Arg(0), *reportFile, *scheduleDir))
}

func run(configFile, reportFile, scheduleDir string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return genericErr(err)
	}

	horizon := interval.New(cfg.Horizon.Start, cfg.Horizon.Stop)

	aois, err := loadAois(cfg)
	if err != nil {
		return genericErr(err)
	}
	log.Printf("loaded %d aois", len(aois))

	models := make([]*satellite.Model, 0, len(cfg.Satellites))
	for _, sc := range cfg.Satellites {
		m, err := sc.ToModel()
		if err != nil {
			return genericErr(err)
		}
		models = append(models, m)
	}

	step := cfg.Scheduler.Step.Duration
	if step <= 0 {
		step = 30 * time.Second
	}
	revBoundary := cfg.Scheduler.ResolveRevBoundary()

	uows := make([]preprocess.UnitOfWork, 0, len(models))
	for _, m := range models {
		uows = append(uows, preprocess.UnitOfWork{
			Horizon:  horizon,
			Sat:      m,
			Aois:     aois,
			Step:     step,
			RevBound: revBoundary,
		})
	}

	results, errs := preprocess.RunAll(uows, cfg.Workers)
	var preprocessed []preprocess.PreprocessedAoi
	revsByKey := map[schedule.Key]interval.List{}
	dutyCycleByKey := map[schedule.Key]float64{}
	for i, res := range results {
		if errs[i] != nil {
			log.Printf("preprocess: satellite %s failed: %v", uows[i].Sat.ID, errs[i])
			continue
		}
		preprocessed = append(preprocessed, res.Aois...)

		for _, sensor := range res.Sat.Sensors {
			key := schedule.Key{SatID: res.Sat.ID, PayloadID: sensor.ID}
			revs, err := res.Sat.Revs(horizon, revBoundary)
			if err != nil {
				log.Printf("schedule: satellite %s: revs: %v", res.Sat.ID, err)
				continue
			}
			revsByKey[key] = revs
			dutyCycleByKey[key] = sensor.DutyCycle
		}
	}

	table, err := cfg.Score.ToTable()
	if err != nil {
		return genericErr(err)
	}
	scored := score.Order(table, preprocessed)
	log.Printf("scored %d aoi/sensor access rows", len(scored))

	candidates := candidatesFromScored(scored)

	driver := schedule.NewDriver(revsByKey, dutyCycleByKey)
	batchSize := cfg.Scheduler.BatchSize
	if batchSize <= 0 {
		batchSize = 50
	}
	for start := 0; start < len(candidates); start += batchSize {
		end := start + batchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		if err := driver.RunBatch(candidates[start:end]); err != nil {
			return genericErr(err)
		}
	}
	driver.Bonus(candidates)

	rows := buildAccessRows(scored, driver)
	if err := writeReport(reportFile, rows); err != nil {
		return genericErr(err)
	}

	for key, sched := range driver.Schedules() {
		path := fmt.Sprintf("%s/%s-%s.json", scheduleDir, key.SatID, key.PayloadID)
		f, err := os.Create(path)
		if err != nil {
			return genericErr(err)
		}
		err = satio.WriteSchedule(f, sched)
		f.Close()
		if err != nil {
			return genericErr(err)
		}
		log.Printf("wrote schedule %s: %d activities", path, len(sched.Activities))
	}

	return nil
}

func loadAois(cfg *config.Config) ([]*aoi.Aoi, error) {
	var out []*aoi.Aoi
	for _, src := range cfg.Aois {
		loader := aoi.Loader{
			Source:  newFileSource(src.URL),
			BufferM: src.BufferM,
			Filter:  classFilter(src.Filter),
		}
		if len(src.BBox) == 4 {
			loader.Box = aoi.BBox{
				MinLon: src.BBox[0], MinLat: src.BBox[1],
				MaxLon: src.BBox[2], MaxLat: src.BBox[3],
			}
		}
		loaded, err := loader.Load()
		if err != nil {
			return nil, err
		}
		out = append(out, loaded...)
	}
	return out, nil
}

// classFilter builds an aoi Loader filter predicate that keeps only
// features whose "class" property is in allowed; a nil/empty allowed
// list means no filtering.
func classFilter(allowed []string) func(map[string]any) bool {
	if len(allowed) == 0 {
		return nil
	}
	want := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		want[a] = true
	}
	return func(props map[string]any) bool {
		class, _ := props["class"].(string)
		return want[class]
	}
}

// candidatesFromScored splits each ScoredAoi's access intervals into
// one Candidate per interval, carrying the same score and key.
func candidatesFromScored(scored []score.ScoredAoi) []schedule.Candidate {
	var out []schedule.Candidate
	for _, s := range scored {
		key := schedule.Key{SatID: s.Aoi.SatID, PayloadID: s.Aoi.SensorID}
		for _, iv := range s.Aoi.Intervals {
			out = append(out, schedule.Candidate{
				AoiID:    s.Aoi.Aoi.ID,
				Key:      key,
				Original: iv,
				Score:    s.Score,
			})
		}
	}
	return out
}

// buildAccessRows emits one report row per access interval of each
// scored aoi/sensor pair, plus a single NO_ACCESS row (zero-value
// start/stop) for any scored aoi whose preprocessing produced no
// access intervals at all — an aoi never appears in the report
// otherwise, contradicting the report's "every aoi carries a final
// disposition" contract.
func buildAccessRows(scored []score.ScoredAoi, driver *schedule.Driver) []satio.AccessRow {
	var rows []satio.AccessRow
	for _, sc := range scored {
		key := schedule.Key{SatID: sc.Aoi.SatID, PayloadID: sc.Aoi.SensorID}

		if len(sc.Aoi.Intervals) == 0 {
			rows = append(rows, satio.AccessRow{
				AoiID:       sc.Aoi.Aoi.ID,
				SatelliteID: key.SatID,
				SensorID:    key.PayloadID,
				Continent:   sc.Aoi.Aoi.Continent,
				Country:     sc.Aoi.Aoi.Country,
				Priority:    sc.Aoi.Aoi.Priority,
				Result:      schedule.NoAccess,
				Score:       sc.Score,
				OrderIndex:  len(rows),
			})
			continue
		}

		disposition, ok := driver.Disposition(schedule.RowID{AoiID: sc.Aoi.Aoi.ID, Key: key})
		if !ok {
			disposition = schedule.NoAccess
		}
		for _, iv := range sc.Aoi.Intervals {
			rows = append(rows, satio.AccessRow{
				AoiID:       sc.Aoi.Aoi.ID,
				SatelliteID: key.SatID,
				SensorID:    key.PayloadID,
				Continent:   sc.Aoi.Aoi.Continent,
				Country:     sc.Aoi.Aoi.Country,
				Priority:    sc.Aoi.Aoi.Priority,
				Start:       iv.Start,
				Stop:        iv.Stop,
				Result:      disposition,
				Score:       sc.Score,
				OrderIndex:  len(rows),
			})
		}
	}
	return rows
}

func writeReport(path string, rows []satio.AccessRow) error {
	if path == "" {
		return satio.WriteAccessReport(os.Stdout, rows)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return satio.WriteAccessReport(f, rows)
}
