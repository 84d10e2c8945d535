package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/sbugallo/muos-pokemon-randomizer-app/internal/ui/style"
)

// Event is an abstract navigation event. Physical bindings (keyboard
// keys, gamepad buttons) are mapped here so nothing else in the system
// depends on controller hardware.
type Event int

const (
	EventNone Event = iota
	EventUp
	EventDown
	EventLeft
	EventRight
	EventConfirm
	EventBack
	EventMenu
)

// String returns the event name
func (e Event) String() string {
	switch e {
	case EventUp:
		return "Up"
	case EventDown:
		return "Down"
	case EventLeft:
		return "Left"
	case EventRight:
		return "Right"
	case EventConfirm:
		return "Confirm"
	case EventBack:
		return "Back"
	case EventMenu:
		return "Menu"
	default:
		return "None"
	}
}

// InputManager polls the keyboard and the first standard-layout gamepad
// each frame, applies edge detection, and auto-repeats held directions
// after the hold threshold. Non-directional events never repeat.
type InputManager struct {
	direction   Event // held direction, EventNone when released
	startTime   time.Time
	lastMove    time.Time
	repeatDelay time.Duration
}

// NewInputManager creates a new input manager
func NewInputManager() *InputManager {
	return &InputManager{
		repeatDelay: style.NavStartInterval,
	}
}

// Poll reads the devices and returns the navigation events fired this
// frame, at most one directional plus any just-pressed buttons.
func (im *InputManager) Poll() []Event {
	var events []Event

	navUp := ebiten.IsKeyPressed(ebiten.KeyArrowUp)
	navDown := ebiten.IsKeyPressed(ebiten.KeyArrowDown)
	navLeft := ebiten.IsKeyPressed(ebiten.KeyArrowLeft)
	navRight := ebiten.IsKeyPressed(ebiten.KeyArrowRight)

	confirm := inpututil.IsKeyJustPressed(ebiten.KeyEnter)
	back := inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	menu := inpututil.IsKeyJustPressed(ebiten.KeyF1)

	gamepadIDs := ebiten.AppendGamepadIDs(nil)
	if len(gamepadIDs) > 0 {
		id := gamepadIDs[0]

		// D-pad
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
			navUp = true
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
			navDown = true
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			navLeft = true
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			navRight = true
		}

		// Left stick (0.5 threshold for menu navigation)
		axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if axisY < -0.5 {
			navUp = true
		}
		if axisY > 0.5 {
			navDown = true
		}
		if axisX < -0.5 {
			navLeft = true
		}
		if axisX > 0.5 {
			navRight = true
		}

		// A confirms, B goes back, Start opens the menu
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			confirm = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight) {
			back = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			menu = true
		}
	}

	// Vertical takes priority for menu-like behavior
	desired := EventNone
	if navUp {
		desired = EventUp
	} else if navDown {
		desired = EventDown
	} else if navLeft {
		desired = EventLeft
	} else if navRight {
		desired = EventRight
	}

	if dir := im.resolveDirection(desired, time.Now()); dir != EventNone {
		events = append(events, dir)
	}
	if confirm {
		events = append(events, EventConfirm)
	}
	if back {
		events = append(events, EventBack)
	}
	if menu {
		events = append(events, EventMenu)
	}

	return events
}

// resolveDirection applies edge detection and auto-repeat to the held
// direction. A direction fires once on the press transition, then
// repeats after the hold threshold at an accelerating interval.
func (im *InputManager) resolveDirection(desired Event, now time.Time) Event {
	switch {
	case desired == EventNone:
		// Released - reset state
		im.direction = EventNone
		im.repeatDelay = style.NavStartInterval
		return EventNone

	case desired != im.direction:
		// Press transition - fire immediately and start tracking
		im.direction = desired
		im.startTime = now
		im.lastMove = now
		im.repeatDelay = style.NavStartInterval
		return desired

	default:
		// Same direction held - repeat only past the hold threshold
		if now.Sub(im.startTime) < style.NavInitialDelay {
			return EventNone
		}
		if now.Sub(im.lastMove) < im.repeatDelay {
			return EventNone
		}
		im.lastMove = now
		im.repeatDelay -= style.NavAcceleration
		if im.repeatDelay < style.NavMinInterval {
			im.repeatDelay = style.NavMinInterval
		}
		return desired
	}
}
