package scene

import "github.com/go-gl/mathgl/mgl64"

// Landmark is a named region worth visiting.
type Landmark struct {
	Name  string
	State ViewState
}

// Landmarks holds the classic regions, bound to keys 1..6.
var Landmarks = []Landmark{
	{"Full set", DefaultState()},
	{"Seahorse Valley", region(-0.8, -0.7, 0.05, 0.15)},
	{"Elephant Valley", region(-1.85, -1.75, -0.10, -0.02)},
	{"Spiral Minibrot", region(-0.7435, -0.7420, 0.1310, 0.1325)},
	{"Triple Spiral", region(-0.7480, -0.7450, 0.0950, 0.0980)},
	{"Valley of the Dragon", region(-0.7400, -0.7350, 0.1800, 0.1850)},
}

// region fits the rectangle into the view: center at its middle, scale
// covering its wider half-extent.
func region(xmin, xmax, ymin, ymax float64) ViewState {
	return ViewState{
		Center: mgl64.Vec2{(xmin + xmax) / 2, (ymin + ymax) / 2},
		Scale:  max(xmax-xmin, ymax-ymin) / 2,
	}
}
