package preprocess

import (
	"math"
	"time"

	gosat "github.com/joshuaferrara/go-satellite"
)

// sunElevationDeg returns the sun's elevation (degrees) above the
// local horizon at the given geodetic longitude/latitude (degrees)
// and instant, using the low-precision solar-position series (good to
// about 0.01 degrees through 2099) evaluated against the same Julian
// date convention go-satellite uses elsewhere in this package.
func sunElevationDeg(t time.Time, lonDeg, latDeg float64) float64 {
	jd := gosat.JDay(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	n := jd - 2451545.0 // days since J2000.0

	meanLongDeg := math.Mod(280.460+0.9856474*n, 360)
	meanAnomDeg := math.Mod(357.528+0.9856003*n, 360)
	meanAnomRad := meanAnomDeg * math.Pi / 180

	eclLongDeg := meanLongDeg + 1.915*math.Sin(meanAnomRad) + 0.020*math.Sin(2*meanAnomRad)
	eclLongRad := eclLongDeg * math.Pi / 180

	obliquityRad := (23.439 - 0.0000004*n) * math.Pi / 180

	sinDecl := math.Sin(obliquityRad) * math.Sin(eclLongRad)
	decl := math.Asin(sinDecl)
	ra := math.Atan2(math.Cos(obliquityRad)*math.Sin(eclLongRad), math.Cos(eclLongRad))

	gmstHours := math.Mod(6.697375+0.0657098242*n+float64(t.Hour())+float64(t.Minute())/60+float64(t.Second())/3600, 24)
	if gmstHours < 0 {
		gmstHours += 24
	}
	lstHours := math.Mod(gmstHours+lonDeg/15, 24)
	if lstHours < 0 {
		lstHours += 24
	}
	hourAngle := lstHours*15*math.Pi/180 - ra

	latRad := latDeg * math.Pi / 180
	sinAlt := math.Sin(latRad)*math.Sin(decl) + math.Cos(latRad)*math.Cos(decl)*math.Cos(hourAngle)
	return math.Asin(clampUnit(sinAlt)) * 180 / math.Pi
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
