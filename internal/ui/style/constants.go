package style

import "time"

// Design canvas. Every scene draws at this fixed resolution; the
// renderer letterboxes it onto whatever panel the device has.
const (
	DesignWidth  = 640
	DesignHeight = 480
)

// Fixed furniture heights
const (
	HeaderHeight = 50
	FooterHeight = 50
)

// Standard spacing and padding values
const (
	DefaultPadding = 16
	SmallSpacing   = 8
	TinySpacing    = 4
	ListRowHeight  = 28
)

// Exit menu panel
const (
	ExitMenuWidth     = 240
	ExitMenuBtnHeight = 48
)

// Toast notification
const (
	OverlayPadding = 12
	OverlayMargin  = 8
)

// Directional navigation timing: first repeat after the hold threshold,
// then accelerating toward the minimum interval.
const (
	NavInitialDelay  = 350 * time.Millisecond // Hold before auto-repeat starts
	NavStartInterval = 200 * time.Millisecond // Initial repeat interval
	NavAcceleration  = 20 * time.Millisecond  // Speed increase per repeat
	NavMinInterval   = 25 * time.Millisecond  // Fastest repeat (cap)
)
