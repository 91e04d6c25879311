package satellite

import "time"

// OrbitKind tags which orbit representation a Model was built from.
type OrbitKind int

const (
	// OrbitTLE is a two-line element set.
	OrbitTLE OrbitKind = iota
	// OrbitKeplerian is a classical element set.
	OrbitKeplerian
)

// AnomalyKind distinguishes true from mean anomaly in a Keplerian
// element set.
type AnomalyKind int

const (
	MeanAnomaly AnomalyKind = iota
	TrueAnomaly
)

// TLE is a two-line element set.
type TLE struct {
	Line1 string
	Line2 string
}

// Keplerian is a classical orbital element set, referenced to a
// frame and epoch; a, in kilometers, i/Ω/ω/anomaly in degrees.
type Keplerian struct {
	SemiMajorAxisKm float64
	Eccentricity    float64
	InclinationDeg  float64
	RAANDeg         float64
	ArgPerigeeDeg   float64
	Anomaly         float64
	AnomalyKind     AnomalyKind
	Epoch           time.Time
}

// Orbit is a tagged union of the two orbit definitions the model
// accepts, mirroring the source's inheritance-free configuration
// variants (decoded once at startup with strict validation, never a
// runtime-typed dict).
type Orbit struct {
	Kind      OrbitKind
	TLE       TLE
	Keplerian Keplerian
}
