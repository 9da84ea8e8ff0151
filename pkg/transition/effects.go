package transition

import "github.com/tanema/gween/ease"

// DefaultEffect is used when a Spec names an unknown effect.
const DefaultEffect = "fade"

// effect maps eased progress (0 = fully hidden, 1 = fully shown) to a
// visual frame.
type effect struct {
	ease  ease.TweenFunc
	frame func(progress float64) Frame
}

// slideDistance is the travel in host units for slide and directional
// fade effects.
const slideDistance = 10

var effects = map[string]effect{
	"fade": {
		ease: ease.OutQuad,
		frame: func(p float64) Frame {
			return Frame{Opacity: p, Scale: 1, Visible: p > 0}
		},
	},
	"scale": {
		ease: ease.OutQuad,
		frame: func(p float64) Frame {
			return Frame{Opacity: p, Scale: 0.8 + 0.2*p, Visible: p > 0}
		},
	},
	"zoom": {
		ease: ease.OutCubic,
		frame: func(p float64) Frame {
			return Frame{Opacity: p, Scale: p, Visible: p > 0}
		},
	},
	"fade up": {
		ease: ease.OutQuad,
		frame: func(p float64) Frame {
			return Frame{Opacity: p, Scale: 1, OffsetY: slideDistance * (1 - p), Visible: p > 0}
		},
	},
	"fade down": {
		ease: ease.OutQuad,
		frame: func(p float64) Frame {
			return Frame{Opacity: p, Scale: 1, OffsetY: -slideDistance * (1 - p), Visible: p > 0}
		},
	},
	"slide up": {
		ease: ease.InOutQuad,
		frame: func(p float64) Frame {
			return Frame{Opacity: 1, Scale: 1, OffsetY: slideDistance * (1 - p), Visible: p > 0}
		},
	},
	"slide down": {
		ease: ease.InOutQuad,
		frame: func(p float64) Frame {
			return Frame{Opacity: 1, Scale: 1, OffsetY: -slideDistance * (1 - p), Visible: p > 0}
		},
	},
}

// lookupEffect resolves an effect name, falling back to DefaultEffect.
func lookupEffect(name string) effect {
	if eff, ok := effects[name]; ok {
		return eff
	}
	return effects[DefaultEffect]
}

// Effects returns the names of all registered effects.
func Effects() []string {
	names := make([]string, 0, len(effects))
	for name := range effects {
		names = append(names, name)
	}
	return names
}

// Known reports whether name is a registered effect.
func Known(name string) bool {
	_, ok := effects[name]
	return ok
}
