package physics

import (
	"math"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
)

func mustPanic(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q, got none", contains)
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, contains) {
			t.Fatalf("panic %v, want message containing %q", r, contains)
		}
	}()
	fn()
}

func newTestBody() Body {
	return WrapBody(cp.NewBody(1, math.Inf(1)))
}

func TestWrapNilPanics(t *testing.T) {
	mustPanic(t, "nil space", func() { WrapSpace(nil) })
	mustPanic(t, "nil body", func() { WrapBody(nil) })
	mustPanic(t, "nil shape", func() { WrapShape(nil) })
}

func TestMoveTransfersOwnership(t *testing.T) {
	src := newTestBody()
	raw := src.Raw()

	dst := src.Move()
	if !src.Empty() {
		t.Error("source still holds the engine pointer after move")
	}
	if dst.Empty() || dst.Raw() != raw {
		t.Error("destination did not receive the engine pointer")
	}

	// The moved-from body is inert: Raw panics, Free panics.
	mustPanic(t, "use of empty body handle", func() { src.Raw() })
	mustPanic(t, "double release", func() { src.Free() })

	dst.Free()
}

func TestDoubleFreePanics(t *testing.T) {
	b := newTestBody()
	b.Free()
	mustPanic(t, "double release of body handle", func() { b.Free() })
}

func TestFreeWhileInSpacePanics(t *testing.T) {
	b := newTestBody()
	b.join(cp.NewSpace())
	if !b.InSpace() {
		t.Fatal("join did not record membership")
	}
	mustPanic(t, "released while still in space", func() { b.Free() })

	b.leave()
	b.Free()
}

func TestMoveClearsMembership(t *testing.T) {
	b := newTestBody()
	b.join(cp.NewSpace())

	dst := b.Move()
	if b.InSpace() {
		t.Error("moved-from handle still reports space membership")
	}
	if !dst.InSpace() {
		t.Error("membership did not transfer with the move")
	}
}

func TestAdoptReleasesDestination(t *testing.T) {
	src := newTestBody()
	raw := src.Raw()

	dst := newTestBody()
	dst.Adopt(&src)

	if !src.Empty() {
		t.Error("source still live after adopt")
	}
	if dst.Raw() != raw {
		t.Error("destination does not hold the adopted pointer")
	}
	dst.Free()
}

func TestAdoptIntoEmptyDestination(t *testing.T) {
	src := newTestBody()
	var dst Body
	dst.Adopt(&src)
	if dst.Empty() {
		t.Fatal("adopt into zero-value handle left it empty")
	}
	dst.Free()
}

func TestAdoptSelfIsNoop(t *testing.T) {
	b := newTestBody()
	b.Adopt(&b)
	if b.Empty() {
		t.Fatal("self-adopt emptied the handle")
	}
	b.Free()
}

func TestAdoptOverSpaceMemberPanics(t *testing.T) {
	src := newTestBody()
	dst := newTestBody()
	dst.join(cp.NewSpace())

	mustPanic(t, "released while still in space", func() { dst.Adopt(&src) })
}

func TestShapeHandleLifecycle(t *testing.T) {
	body := cp.NewBody(1, math.Inf(1))
	s := WrapShape(cp.NewCircle(body, 0.5, cp.Vector{}))

	moved := s.Move()
	if !s.Empty() {
		t.Error("source shape still live after move")
	}
	moved.Free()
	mustPanic(t, "double release of shape handle", func() { moved.Free() })
}
