package clouds

// arena holds the two ping-pong targets. front indexes the slot currently
// holding the composite; the other slot is the next pass's destination.
type arena struct {
	slots      [2]Target
	front      int
	resolution int
}

// ensure allocates both targets at res, recreating them when the side length
// changed. It reports whether any allocation happened.
func (a *arena) ensure(b Blitter, res int) bool {
	if a.slots[0] != nil && a.resolution == res {
		return false
	}
	a.release(b)
	a.slots[0] = b.NewTarget(res)
	a.slots[1] = b.NewTarget(res)
	a.resolution = res
	return true
}

func (a *arena) input() Target  { return a.slots[a.front] }
func (a *arena) output() Target { return a.slots[1-a.front] }
func (a *arena) flip()          { a.front = 1 - a.front }

func (a *arena) release(b Blitter) {
	for i, t := range a.slots {
		if t != nil {
			b.Release(t)
			a.slots[i] = nil
		}
	}
	a.front = 0
	a.resolution = 0
}
