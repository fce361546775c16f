package gerkit

// Event is input delivered to modules on the UI goroutine. Handlers switch
// on the concrete type.
type Event interface {
	isEvent()
}

// Pointer coordinates are in viewport pixels, origin top-left.

type PointerDown struct {
	X, Y  float64
	Shift bool
}

type PointerMove struct {
	X, Y  float64
	Shift bool
}

type PointerUp struct{}

// Drop places a catalog part at a pointer position.
type Drop struct {
	PartID string
	X, Y   float64
}

type KeyCode int

const (
	KeyRune KeyCode = iota
	KeyDelete
	KeyEscape
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

type Key struct {
	Code  KeyCode
	Rune  rune
	Ctrl  bool
	Shift bool
}

// Button is a click on a named control.
type Button struct {
	ID string
}

// Orbit input, in radians and zoom factor.
type OrbitDrag struct {
	DX, DY float32
}

type Zoom struct {
	Factor float32
}

type Resize struct {
	Width, Height int
}

func (PointerDown) isEvent() {}
func (PointerMove) isEvent() {}
func (PointerUp) isEvent()   {}
func (Drop) isEvent()        {}
func (Key) isEvent()         {}
func (Button) isEvent()      {}
func (OrbitDrag) isEvent()   {}
func (Zoom) isEvent()        {}
func (Resize) isEvent()      {}

// PartButton is the button id of a per-part menu entry.
func PartButton(partID string) string { return partButtonPrefix + partID }

const partButtonPrefix = "part:"

// PartFromButton extracts the part id from a PartButton id.
func PartFromButton(id string) (string, bool) {
	if len(id) <= len(partButtonPrefix) || id[:len(partButtonPrefix)] != partButtonPrefix {
		return "", false
	}
	return id[len(partButtonPrefix):], true
}
