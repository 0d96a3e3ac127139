package clouds

import "math"

// LightType identifies the kind of host light the cookie is assigned to.
type LightType int

const (
	// LightDirectional has only a direction, like the sun. It is the only
	// type that can project a world-space cookie.
	LightDirectional LightType = iota
	// LightPoint emits in every direction from a position.
	LightPoint
	// LightSpot emits in a cone.
	LightSpot
)

func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "directional"
	case LightPoint:
		return "point"
	case LightSpot:
		return "spot"
	}
	return "unknown"
}

// Light is the host light that receives the finished cookie. SetCookie with a
// nil target clears it.
type Light interface {
	Type() LightType
	Forward() Vec3
	SetCookie(cookie Target, size float64)
}

// DirectionalLight is a sun positioned by elevation and azimuth in degrees.
type DirectionalLight struct {
	elevation  float64
	azimuth    float64
	cookie     Target
	cookieSize float64
}

// NewDirectionalLight returns a sun at the given elevation above the horizon
// and azimuth around the up axis.
func NewDirectionalLight(elevationDeg, azimuthDeg float64) *DirectionalLight {
	l := &DirectionalLight{}
	l.SetElevation(elevationDeg)
	l.SetAzimuth(azimuthDeg)
	return l
}

// Type reports LightDirectional.
func (l *DirectionalLight) Type() LightType { return LightDirectional }

// Elevation returns the sun's height above the horizon in degrees.
func (l *DirectionalLight) Elevation() float64 { return l.elevation }

// Azimuth returns the sun's heading in degrees.
func (l *DirectionalLight) Azimuth() float64 { return l.azimuth }

// SetElevation clamps deg into [-90,90].
func (l *DirectionalLight) SetElevation(deg float64) {
	if math.IsNaN(deg) {
		return
	}
	l.elevation = math.Max(-90, math.Min(90, deg))
}

// SetAzimuth wraps deg into [0,360).
func (l *DirectionalLight) SetAzimuth(deg float64) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	l.azimuth = deg
}

// Forward is the direction light travels: downward for a sun above the horizon.
func (l *DirectionalLight) Forward() Vec3 {
	el := l.elevation * math.Pi / 180
	az := l.azimuth * math.Pi / 180
	horiz := math.Cos(el)
	return Vec3{X: horiz * math.Sin(az), Y: -math.Sin(el), Z: horiz * math.Cos(az)}
}

// SetCookie stores the cookie and its world-space projection size.
func (l *DirectionalLight) SetCookie(cookie Target, size float64) {
	l.cookie = cookie
	l.cookieSize = size
}

// Cookie returns the last assigned cookie and projection size.
func (l *DirectionalLight) Cookie() (Target, float64) { return l.cookie, l.cookieSize }
