package services

import (
	"fmt"
	"math"
	"survey-transform-service/internal/domain"

	"github.com/golang/geo/s1"
)

// WGS84 transverse Mercator parameters for UTM.
const (
	utmScale         = 0.9996
	utmFalseEasting  = 500000.0
	utmFalseNorthing = 10000000.0
	utmMinLat        = -80.0
	utmMaxLat        = 84.0

	semiMajorAxis = 6378137.0
	eccSquared    = 0.00669438
)

var (
	ecc4      = eccSquared * eccSquared
	ecc6      = ecc4 * eccSquared
	eccPrime2 = eccSquared / (1 - eccSquared)

	// Meridional arc series coefficients.
	arcM1 = 1 - eccSquared/4 - 3*ecc4/64 - 5*ecc6/256
	arcM2 = 3*eccSquared/8 + 3*ecc4/32 + 45*ecc6/1024
	arcM3 = 15*ecc4/256 + 45*ecc6/1024
	arcM4 = 35 * ecc6 / 3072
)

// CentralMeridian returns the central longitude of a UTM zone.
func CentralMeridian(zone int) s1.Angle {
	return s1.Angle(float64((zone-1)*6-180+3)) * s1.Degree
}

// ProjectUTM projects a geodetic point onto the given UTM zone.
//
// The zone is taken as given even when the longitude lies outside it; the
// longitude difference to the central meridian is wrapped into [-pi, pi).
// Latitude must lie in [-80, 84]. The false northing follows the sign of the
// latitude; the zone's hemisphere letter is validated but does not move the
// origin, so a table straddling the equator converts in one run.
func ProjectUTM(c domain.Coordinates, zone domain.UtmZone) (domain.Projected, error) {
	if err := zone.Validate(); err != nil {
		return domain.Projected{}, err
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return domain.Projected{}, fmt.Errorf("project utm: lon=%v: %w", c.Lon, domain.ErrInvalidLongitude)
	}
	if math.IsNaN(c.Lat) || c.Lat < utmMinLat || c.Lat > utmMaxLat {
		return domain.Projected{}, fmt.Errorf("project utm: lat=%v outside [%v, %v]: %w", c.Lat, utmMinLat, utmMaxLat, domain.ErrInvalidLatitude)
	}

	ll := c.LatLng()
	lat := ll.Lat.Radians()
	sinLat, cosLat := math.Sincos(lat)
	tanLat := sinLat / cosLat
	t2 := tanLat * tanLat
	t4 := t2 * t2

	n := semiMajorAxis / math.Sqrt(1-eccSquared*sinLat*sinLat)
	cc := eccPrime2 * cosLat * cosLat
	a := cosLat * wrapAngle((ll.Lng - CentralMeridian(zone.Number)).Radians())
	m := semiMajorAxis * (arcM1*lat - arcM2*math.Sin(2*lat) + arcM3*math.Sin(4*lat) - arcM4*math.Sin(6*lat))

	a2 := a * a
	a3 := a2 * a
	a4 := a3 * a
	a5 := a4 * a
	a6 := a5 * a

	easting := utmScale*n*(a+
		a3/6*(1-t2+cc)+
		a5/120*(5-18*t2+t4+72*cc-58*eccPrime2)) + utmFalseEasting

	northing := utmScale * (m + n*tanLat*(a2/2+
		a4/24*(5-t2+9*cc+4*cc*cc)+
		a6/720*(61-58*t2+t4+600*cc-330*eccPrime2)))

	if c.Lat < 0 {
		northing += utmFalseNorthing
	}

	return domain.Projected{Easting: easting, Northing: northing}, nil
}

// wrapAngle maps an angle in radians into [-pi, pi).
func wrapAngle(rad float64) float64 {
	v := math.Mod(rad+math.Pi, 2*math.Pi)
	if v < 0 {
		v += 2 * math.Pi
	}
	return v - math.Pi
}
