package pkg

// enum of traffic light color. values follow the styx wire encoding so
// ground-truth feeds from the simulator stay byte-compatible.
type LightColor uint8

const (
	RED     LightColor = 0
	YELLOW  LightColor = 1
	GREEN   LightColor = 2
	UNKNOWN LightColor = 4
)

func (c LightColor) String() string {
	switch c {
	case RED:
		return "red"
	case YELLOW:
		return "yellow"
	case GREEN:
		return "green"
	default:
		return "unknown"
	}
}

func ParseLightColor(v uint8) LightColor {
	switch LightColor(v) {
	case RED, YELLOW, GREEN:
		return LightColor(v)
	default:
		return UNKNOWN
	}
}

const (
	// candidates farther than this from the reference are never matched,
	// even when they are the overall closest.
	SEARCH_RANGE_METERS float64 = 400.0

	// a raw color must repeat this many consecutive frames before the
	// stabilizer trusts it.
	STATE_COUNT_THRESHOLD = 3

	// published waypoint index meaning "no stop required".
	NO_STOP_WAYPOINT = -1

	// stop positions loaded from a map extract are dropped when an already
	// known stop line sits within this distance.
	STOP_LINE_MERGE_METERS float64 = 5.0
)

const (
	DEBUG = false
)
