package rep

import (
	"math"

	"github.com/thruflo/liftlogic/internal/pose"
)

// Angle returns the interior angle at b, in degrees within [0,180], formed by
// the rays b->a and b->c. The result does not depend on point order.
func Angle(a, b, c pose.Joint) float64 {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	deg := math.Abs(radians * 180.0 / math.Pi)
	if deg > 180.0 {
		deg = 360 - deg
	}
	return deg
}
