package satellite

import (
	"math"
	"time"

	gosat "github.com/joshuaferrara/go-satellite"
)

// State is a spacecraft state at one instant: position/velocity in
// the Earth-centered inertial frame (km, km/s), plus the Greenwich
// Mean Sidereal Time used to rotate into the Earth-fixed frame.
type State struct {
	When    time.Time
	Pos     gosat.Vector3 // ECI, km
	Vel     gosat.Vector3 // ECI, km/s
	GmstRad float64
}

// SubSatellite returns the geodetic sub-satellite point (lon, lat, in
// degrees) for s.
func (s State) SubSatellite() (lon, lat float64) {
	_, _, latLong := gosat.ECIToLLA(s.Pos, s.GmstRad)
	ll := gosat.LatLongDeg(latLong)
	return math.Mod(ll.Longitude+360, 360), ll.Latitude
}

// earthRadiusKm is the mean spherical Earth radius used by altitude
// and footprint approximations throughout this package.
const earthRadiusKm = 6371.0088

// AltitudeKm returns s's height above the mean spherical Earth radius.
func (s State) AltitudeKm() float64 {
	return math.Sqrt(dot3(s.Pos, s.Pos)) - earthRadiusKm
}

// GroundTrackHeadingRad returns the instantaneous ground-track heading
// (radians, clockwise from local north) derived from Pos and Vel
// alone. The local east/north basis is built from Pos's own
// geocentric longitude/latitude rather than the Earth-fixed geodetic
// frame, which leaves the angle unaffected by the ECI-to-ECEF
// rotation: rotating about the polar axis carries Pos, east and north
// together, so the angle between Vel and north does not change.
func (s State) GroundTrackHeadingRad() float64 {
	r := math.Sqrt(dot3(s.Pos, s.Pos))
	if r == 0 {
		return 0
	}
	lon := math.Atan2(s.Pos.Y, s.Pos.X)
	lat := math.Asin(clampUnit(s.Pos.Z / r))

	east := gosat.Vector3{X: -math.Sin(lon), Y: math.Cos(lon)}
	north := gosat.Vector3{
		X: -math.Sin(lat) * math.Cos(lon),
		Y: -math.Sin(lat) * math.Sin(lon),
		Z: math.Cos(lat),
	}
	return math.Atan2(dot3(s.Vel, east), dot3(s.Vel, north))
}

func dot3(a, b gosat.Vector3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func degToRad(d float64) float64 { return d * math.Pi / 180 }

// propagator produces a State at an arbitrary instant, abstracting
// over the TLE/SGP4 and analytic-Keplerian code paths.
type propagator interface {
	stateAt(t time.Time) (State, error)
}

// tlePropagator delegates to go-satellite's SGP4 implementation, the
// concrete stand-in for the astrodynamics collaborator's propagator
// (§6): a fresh gosat.Satellite value per call site, so propagation
// state is never shared between preprocessing workers.
type tlePropagator struct {
	sat gosat.Satellite
}

func newTLEPropagator(tle TLE) tlePropagator {
	return tlePropagator{sat: gosat.TLEToSat(tle.Line1, tle.Line2, gosat.GravityWGS84)}
}

func (p tlePropagator) stateAt(t time.Time) (State, error) {
	u := t.UTC()
	pos, vel := gosat.Propagate(p.sat, u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
	jd := gosat.JDay(u.Year(), int(u.Month()), u.Day(), u.Hour(), u.Minute(), u.Second())
	gmst := gosat.ThetaG_JD(jd)
	return State{When: t, Pos: pos, Vel: vel, GmstRad: gmst}, nil
}

// keplerianPropagator propagates a classical element set analytically
// under two-body dynamics. The full force-model propagator (J2,
// drag, SRP, third-body) is an external collaborator; this path
// exists only so that Keplerian-defined satellites produce a usable
// ephemeris without going through a synthetic TLE.
type keplerianPropagator struct {
	el Keplerian
}

const earthMuKm3S2 = 398600.4418

func (p keplerianPropagator) stateAt(t time.Time) (State, error) {
	el := p.el
	dt := t.Sub(el.Epoch).Seconds()

	a := el.SemiMajorAxisKm
	e := el.Eccentricity
	n := math.Sqrt(earthMuKm3S2 / (a * a * a)) // mean motion, rad/s

	m0 := degToRad(el.Anomaly)
	if el.AnomalyKind == TrueAnomaly {
		m0 = trueToMean(m0, e)
	}
	m := m0 + n*dt

	eAnom := solveKepler(m, e)
	nu := 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(eAnom/2), math.Sqrt(1-e)*math.Cos(eAnom/2))

	r := a * (1 - e*math.Cos(eAnom))
	// perifocal frame position/velocity
	xp := r * math.Cos(nu)
	yp := r * math.Sin(nu)
	h := math.Sqrt(earthMuKm3S2 * a * (1 - e*e))
	vxp := -earthMuKm3S2 / h * math.Sin(nu)
	vyp := earthMuKm3S2 / h * (e + math.Cos(nu))

	i := degToRad(el.InclinationDeg)
	raan := degToRad(el.RAANDeg)
	argp := degToRad(el.ArgPerigeeDeg)

	pos := rotatePerifocalToECI(xp, yp, 0, raan, i, argp)
	vel := rotatePerifocalToECI(vxp, vyp, 0, raan, i, argp)

	jd := gosat.JDay(t.UTC().Year(), int(t.UTC().Month()), t.UTC().Day(), t.UTC().Hour(), t.UTC().Minute(), t.UTC().Second())
	gmst := gosat.ThetaG_JD(jd)

	return State{
		When:    t,
		Pos:     gosat.Vector3{X: pos[0], Y: pos[1], Z: pos[2]},
		Vel:     gosat.Vector3{X: vel[0], Y: vel[1], Z: vel[2]},
		GmstRad: gmst,
	}, nil
}

func trueToMean(nu, e float64) float64 {
	eAnom := 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(nu/2), math.Sqrt(1+e)*math.Cos(nu/2))
	return eAnom - e*math.Sin(eAnom)
}

func solveKepler(m, e float64) float64 {
	eAnom := m
	for i := 0; i < 50; i++ {
		delta := (eAnom - e*math.Sin(eAnom) - m) / (1 - e*math.Cos(eAnom))
		eAnom -= delta
		if math.Abs(delta) < 1e-12 {
			break
		}
	}
	return eAnom
}

func rotatePerifocalToECI(x, y, z, raan, incl, argp float64) [3]float64 {
	cosO, sinO := math.Cos(raan), math.Sin(raan)
	cosI, sinI := math.Cos(incl), math.Sin(incl)
	cosW, sinW := math.Cos(argp), math.Sin(argp)

	r11 := cosO*cosW - sinO*sinW*cosI
	r12 := -cosO*sinW - sinO*cosW*cosI
	r21 := sinO*cosW + cosO*sinW*cosI
	r22 := -sinO*sinW + cosO*cosW*cosI
	r31 := sinW * sinI
	r32 := cosW * sinI

	return [3]float64{
		r11*x + r12*y,
		r21*x + r22*y,
		r31*x + r32*y,
	}
}

func newPropagator(o Orbit) propagator {
	switch o.Kind {
	case OrbitKeplerian:
		return keplerianPropagator{el: o.Keplerian}
	default:
		return newTLEPropagator(o.TLE)
	}
}
