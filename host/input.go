package host

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/fizz"
)

const buttonCount = 3

// pointerFrame is one frame of pointer state, either polled from the device
// or injected.
type pointerFrame struct {
	screenX, screenY float64
	pressed          bool
	button           fizz.MouseButton
}

// Input tracks the mouse pointer for the particle system. Each Update either
// consumes one injected frame or polls the real device. Screen coordinates
// are viewport pixels, origin top-left.
type Input struct {
	x, y        float64
	havePointer bool
	held        [buttonCount]bool
	justPressed [buttonCount]bool

	injectQueue []pointerFrame
	device      func(in *Input)
}

// NewInput creates an Input that polls the Ebitengine mouse whenever no
// injected frame is queued.
func NewInput() *Input {
	return &Input{device: pollEbiten}
}

// newScriptedInput creates an Input that only sees injected frames and holds
// its last state once the queue is empty.
func newScriptedInput() *Input {
	return &Input{}
}

var ebitenButtons = [buttonCount]ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
}

func pollEbiten(in *Input) {
	cx, cy := ebiten.CursorPosition()
	in.x, in.y = float64(cx), float64(cy)
	in.havePointer = true
	for i, b := range ebitenButtons {
		in.setHeld(fizz.MouseButton(i), ebiten.IsMouseButtonPressed(b))
	}
}

// Update advances input by one frame.
func (in *Input) Update() {
	if in.popInjected() {
		return
	}
	if in.device != nil {
		in.device(in)
		return
	}
	in.justPressed = [buttonCount]bool{}
}

// popInjected applies the next injected frame. Returns true if one was
// consumed (the device is skipped for that frame).
func (in *Input) popInjected() bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	in.x, in.y = evt.screenX, evt.screenY
	in.havePointer = true
	for i := range in.held {
		b := fizz.MouseButton(i)
		in.setHeld(b, evt.pressed && b == evt.button)
	}
	return true
}

func (in *Input) setHeld(b fizz.MouseButton, pressed bool) {
	in.justPressed[b] = pressed && !in.held[b]
	in.held[b] = pressed
}

// PointerPosition implements fizz.Input.
func (in *Input) PointerPosition() (mgl64.Vec2, bool) {
	return mgl64.Vec2{in.x, in.y}, in.havePointer
}

// ButtonHeld implements fizz.Input.
func (in *Input) ButtonHeld(b fizz.MouseButton) bool {
	if int(b) >= buttonCount {
		return false
	}
	return in.held[b]
}

// JustPressed reports whether b went down on the last Update.
func (in *Input) JustPressed(b fizz.MouseButton) bool {
	if int(b) >= buttonCount {
		return false
	}
	return in.justPressed[b]
}

// Pending returns the number of queued injected frames.
func (in *Input) Pending() int {
	return len(in.injectQueue)
}

// InjectPress queues a press of button b at the given screen coordinates.
// The frame is consumed on the next Update.
func (in *Input) InjectPress(x, y float64, b fizz.MouseButton) {
	in.injectQueue = append(in.injectQueue, pointerFrame{
		screenX: x, screenY: y,
		pressed: true,
		button:  b,
	})
}

// InjectMove queues a pointer move with button b held down.
func (in *Input) InjectMove(x, y float64, b fizz.MouseButton) {
	in.InjectPress(x, y, b)
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (in *Input) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, pointerFrame{
		screenX: x, screenY: y,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (in *Input) InjectClick(x, y float64, b fizz.MouseButton) {
	in.InjectPress(x, y, b)
	in.InjectRelease(x, y)
}

// InjectHold queues frames pressed frames of button b at the same position.
// Minimum frames is 1.
func (in *Input) InjectHold(x, y float64, b fizz.MouseButton, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		in.InjectPress(x, y, b)
	}
}

// InjectDrag queues a held drag from (fromX, fromY) to (toX, toY) over
// frames frames, linearly interpolated, followed by a release at the end.
// Minimum frames is 2 (press + release).
func (in *Input) InjectDrag(fromX, fromY, toX, toY float64, b fizz.MouseButton, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY, b)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, b)
	}
	in.InjectRelease(toX, toY)
}
