package clouds

import "fmt"

type fakeTarget struct {
	id  int
	res int
}

func (t *fakeTarget) Resolution() int { return t.res }

type blitCall struct {
	src, dst *fakeTarget
	pass     Pass
}

// recordingBlitter logs every call without touching pixels.
type recordingBlitter struct {
	nextID   int
	live     map[*fakeTarget]bool
	created  int
	released int
	clears   []*fakeTarget
	blits    []blitCall
}

func newRecordingBlitter() *recordingBlitter {
	return &recordingBlitter{live: make(map[*fakeTarget]bool)}
}

func (r *recordingBlitter) NewTarget(res int) Target {
	r.nextID++
	r.created++
	t := &fakeTarget{id: r.nextID, res: res}
	r.live[t] = true
	return t
}

func (r *recordingBlitter) Clear(dst Target, c Color) {
	t := r.mustLive(dst)
	if c != FullyLit {
		panic(fmt.Sprintf("unexpected clear color %+v", c))
	}
	r.clears = append(r.clears, t)
}

func (r *recordingBlitter) Blit(src, dst Target, pass Pass) {
	s, d := r.mustLive(src), r.mustLive(dst)
	if s == d {
		panic("blit aliases source and destination")
	}
	r.blits = append(r.blits, blitCall{src: s, dst: d, pass: pass})
}

func (r *recordingBlitter) Release(t Target) {
	ft := r.mustLive(t)
	delete(r.live, ft)
	r.released++
}

func (r *recordingBlitter) mustLive(t Target) *fakeTarget {
	ft, ok := t.(*fakeTarget)
	if !ok || !r.live[ft] {
		panic(fmt.Sprintf("target %v is not live", t))
	}
	return ft
}

type constTexture float64

func (c constTexture) Sample(u, v float64) float64 { return float64(c) }

// stubLight records cookie assignments.
type stubLight struct {
	kind    LightType
	forward Vec3
	cookie  Target
	size    float64
	sets    int
}

func (l *stubLight) Type() LightType { return l.kind }
func (l *stubLight) Forward() Vec3   { return l.forward }
func (l *stubLight) SetCookie(cookie Target, size float64) {
	l.cookie = cookie
	l.size = size
	l.sets++
}
