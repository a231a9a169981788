// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType identifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	// Wheel is the vertical wheel delta, positive when scrolling down the page.
	Wheel float64
}

// Action is what a key asks the viewer to do.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionScrollDown
	ActionScrollUp
	ActionPageDown
	ActionPageUp
	ActionHome
	ActionEnd
	ActionNextSection
	ActionPrevSection
	ActionScreenshot
	ActionToggleDebugLog
)

var keyActions = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE:   ActionQuit,
	sdl.SCANCODE_DOWN:     ActionScrollDown,
	sdl.SCANCODE_UP:       ActionScrollUp,
	sdl.SCANCODE_PAGEDOWN: ActionPageDown,
	sdl.SCANCODE_SPACE:    ActionPageDown,
	sdl.SCANCODE_PAGEUP:   ActionPageUp,
	sdl.SCANCODE_HOME:     ActionHome,
	sdl.SCANCODE_END:      ActionEnd,
	sdl.SCANCODE_RIGHT:    ActionNextSection,
	sdl.SCANCODE_LEFT:     ActionPrevSection,
	sdl.SCANCODE_F12:      ActionScreenshot,
	sdl.SCANCODE_F3:       ActionToggleDebugLog,
}

// ActionFor returns the action bound to a key.
func ActionFor(key sdl.Scancode) Action {
	return keyActions[key]
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseWheelEvent:
			dy := float64(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			// SDL reports positive Y for scrolling away from the user, which
			// moves a page up.
			i.events = append(i.events, Event{Type: EventMouseWheel, Wheel: -dy})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
