package models

// WindowGeometry is the persisted outer position and size of the main window.
type WindowGeometry struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width" validate:"gt=0"`
	Height int `json:"height" validate:"gt=0"`
}

// DefaultWindowGeometry is used for keys that were never saved.
var DefaultWindowGeometry = WindowGeometry{X: 100, Y: 100, Width: 1600, Height: 1440}

// FallbackWindowGeometry is used for keys whose stored value does not parse.
var FallbackWindowGeometry = WindowGeometry{X: 100, Y: 100, Width: 800, Height: 600}
