package route

import (
	"fmt"
	"math"
)

// Instructions derives turn-by-turn directions from a reconstructed path.
//
// A hop that changes floor emits a single up/down instruction and skips turn
// analysis. Same-floor hops past the first two nodes compare the incoming and
// outgoing segment headings; bends sharper than the turn threshold become a
// left/right instruction with the outgoing segment's length in meters, gentler
// bends read as straight-ahead and stay silent. A route that produces nothing
// (one straight hallway) gets a single generic instruction.
func Instructions(path []PathNode, p Params) []string {
	var out []string
	if len(path) < 2 {
		return out
	}

	for i := 1; i < len(path); i++ {
		prev, cur := path[i-1], path[i]

		if cur.Floor != prev.Floor {
			dir := "down"
			if cur.Floor > prev.Floor {
				dir = "up"
			}
			floors := int(math.Abs(float64(cur.Floor - prev.Floor)))
			plural := ""
			if floors > 1 {
				plural = "s"
			}
			out = append(out, fmt.Sprintf("Proceed %s %d floor%s via stairs or elevator", dir, floors, plural))
			continue
		}

		if i < 2 {
			continue
		}
		prevPrev := path[i-2]
		dx1 := prev.X - prevPrev.X
		dy1 := prev.Y - prevPrev.Y
		dx2 := cur.X - prev.X
		dy2 := cur.Y - prev.Y

		// Signed heading change: positive turns left, negative turns right.
		angle := math.Atan2(dy2, dx2) - math.Atan2(dy1, dx1)
		if math.Abs(angle) > p.TurnThreshold {
			dir := "right"
			if angle > 0 {
				dir = "left"
			}
			meters := math.Sqrt(dx2*dx2+dy2*dy2) * p.UnitsToMeters
			out = append(out, fmt.Sprintf("Turn %s, then proceed %dm", dir, int(math.Round(meters))))
		}
	}

	if len(out) == 0 {
		out = append(out, "Follow the highlighted path to your destination")
	}
	return out
}
