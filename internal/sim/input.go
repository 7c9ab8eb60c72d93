package sim

import "github.com/go-gl/mathgl/mgl64"

// Key is a physical key the camera responds to.
type Key uint8

const (
	KeyW Key = iota
	KeyS
	KeyA
	KeyD
	KeySpace
	KeyShiftLeft
)

var keyNames = [...]string{"W", "S", "A", "D", "Space", "ShiftLeft"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Unknown"
}

// KeySet is a set of pressed keys.
type KeySet uint8

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// With returns the set with k added.
func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// Input is the input state for one frame: the keys held down and the pointer
// motion reported since the previous frame.
type Input struct {
	Keys   KeySet
	motion []mgl64.Vec2
}

// Press marks k as held for this frame.
func (in *Input) Press(k Key) {
	in.Keys = in.Keys.With(k)
}

// Pressed reports whether k is held.
func (in *Input) Pressed(k Key) bool {
	return in != nil && in.Keys.Has(k)
}

// PushMotion queues one raw pointer-motion event.
func (in *Input) PushMotion(dx, dy float64) {
	in.motion = append(in.motion, mgl64.Vec2{dx, dy})
}

// DrainMotion returns the summed pointer motion and empties the queue.
func (in *Input) DrainMotion() mgl64.Vec2 {
	if in == nil {
		return mgl64.Vec2{}
	}
	var sum mgl64.Vec2
	for _, m := range in.motion {
		sum = sum.Add(m)
	}
	in.motion = in.motion[:0]
	return sum
}
