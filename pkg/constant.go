package pkg

const (
	// display animation tunables. overridable via options / config keys.
	DEFAULT_SNAP_THRESHOLD_DEGREE = 0.3
	DEFAULT_EASE_FACTOR           = 0.18
	DEFAULT_FRAME_RATE            = 60.0

	COMPASS_SECTOR_DEGREE = 22.5
	COMPASS_SECTOR_COUNT  = 16
)

const (
	DEBUG = false
)
