// Package ui is the interactive core: the fixed-cadence app loop, the
// scene state machine, controller input, and the letterboxed renderer.
package ui

// AppState identifies the active scene.
type AppState int

const (
	// StateMainMenu is the initial screen
	StateMainMenu AppState = iota
	// StateRomBrowser lists the scanned ROM entries
	StateRomBrowser
	// StateConfirmStart shows the selected ROM and its settings profile
	StateConfirmStart
	// StateRunningJob shows progress while the engine runs
	StateRunningJob
	// StateJobResult shows the terminal outcome until acknowledged
	StateJobResult
)

// String returns the string representation of the state
func (s AppState) String() string {
	switch s {
	case StateMainMenu:
		return "MainMenu"
	case StateRomBrowser:
		return "RomBrowser"
	case StateConfirmStart:
		return "ConfirmStart"
	case StateRunningJob:
		return "RunningJob"
	case StateJobResult:
		return "JobResult"
	default:
		return "Unknown"
	}
}
