package breakout

import "slices"

// KeyCode identifies a physical key. Values follow the browser keyCode
// numbering; frontends translate their own key events into it.
type KeyCode int

const (
	KeySpace KeyCode = 32
	KeyLeft  KeyCode = 37
	KeyRight KeyCode = 39
	KeyA     KeyCode = 65
	KeyD     KeyCode = 68
)

// Bindings maps key codes to the three game actions.
type Bindings struct {
	Left  map[KeyCode]bool
	Right map[KeyCode]bool
	Start map[KeyCode]bool
}

// DefaultBindings binds the arrows and A/D to movement and space to start.
func DefaultBindings() Bindings {
	return Bindings{
		Left:  map[KeyCode]bool{KeyLeft: true, KeyA: true},
		Right: map[KeyCode]bool{KeyRight: true, KeyD: true},
		Start: map[KeyCode]bool{KeySpace: true},
	}
}

// Codes returns every bound key code once, in ascending order, so that
// frontends polling keys deliver same-frame events in a stable order.
func (b Bindings) Codes() []KeyCode {
	var codes []KeyCode
	for _, m := range []map[KeyCode]bool{b.Left, b.Right, b.Start} {
		for c, on := range m {
			if on {
				codes = append(codes, c)
			}
		}
	}
	slices.Sort(codes)
	return slices.Compact(codes)
}

// KeyQueue remembers the keys pressed while playing, most recent first.
// Only the front entry steers the paddle.
type KeyQueue struct {
	keys []KeyCode
	max  int
}

// NewKeyQueue returns a queue holding at most max entries.
func NewKeyQueue(max int) *KeyQueue {
	if max < 1 {
		max = 1
	}
	return &KeyQueue{max: max}
}

// Front returns the most recent key, if any.
func (q *KeyQueue) Front() (KeyCode, bool) {
	if len(q.keys) == 0 {
		return 0, false
	}
	return q.keys[0], true
}

// Push puts code at the front unless it is already there.
func (q *KeyQueue) Push(code KeyCode) bool {
	if f, ok := q.Front(); ok && f == code {
		return false
	}
	q.keys = append([]KeyCode{code}, q.keys...)
	if len(q.keys) > q.max {
		q.keys = q.keys[:q.max]
	}
	return true
}

// Release clears the queue when code is the front key.
func (q *KeyQueue) Release(code KeyCode) bool {
	if f, ok := q.Front(); !ok || f != code {
		return false
	}
	q.Clear()
	return true
}

func (q *KeyQueue) Clear() { q.keys = q.keys[:0] }

func (q *KeyQueue) Len() int { return len(q.keys) }
