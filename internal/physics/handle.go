// Package physics bridges the ECS world to the chipmunk-derived cp
// rigid-body engine. cp links its objects together with raw pointers,
// so components never embed engine memory directly; they own move-only
// handles while the engine objects live wherever cp put them. The
// bridge keeps component lifecycle and space membership in lockstep:
// a handle must leave its space before it can be released.
package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// handle is the shared core of the wrapper types. raw is the engine
// pointer; member is non-nil while the bridge has inserted the object
// into a space. Exactly one handle refers to a given engine object at
// a time — Move empties the source, Free empties the survivor.
type handle[T any] struct {
	raw    *T
	member *cp.Space
}

func (h *handle[T]) empty() bool { return h.raw == nil }

func (h *handle[T]) get(kind string) *T {
	if h.raw == nil {
		panic("physics: use of empty " + kind + " handle")
	}
	return h.raw
}

func (h *handle[T]) move() handle[T] {
	out := *h
	h.raw = nil
	h.member = nil
	return out
}

func (h *handle[T]) free(kind string) {
	if h.raw == nil {
		panic("physics: double release of " + kind + " handle")
	}
	if h.member != nil {
		panic(fmt.Sprintf("physics: %s released while still in space %p", kind, h.member))
	}
	h.raw = nil
}

// adopt implements move-assignment. A destination still holding a live
// handle releases it first rather than leaking it; if that handle is
// still a space member, free panics, same as a direct Free would.
func (h *handle[T]) adopt(src *handle[T], kind string) {
	if h == src {
		return
	}
	if h.raw != nil {
		h.free(kind)
	}
	*h = src.move()
}

// Space owns one cp.Space. At most one per running simulation.
type Space struct {
	h handle[cp.Space]
}

// WrapSpace assumes ownership of a freshly allocated space. A nil
// pointer means the engine failed to allocate, which has no recovery.
func WrapSpace(raw *cp.Space) Space {
	if raw == nil {
		panic("physics: wrap of nil space")
	}
	return Space{handle[cp.Space]{raw: raw}}
}

func (s *Space) Raw() *cp.Space { return s.h.get("space") }
func (s *Space) Empty() bool    { return s.h.empty() }
func (s *Space) Move() Space    { return Space{s.h.move()} }
func (s *Space) Free()          { s.h.free("space") }

// Body owns one cp.Body. It may belong to at most one space at a time;
// membership is granted and revoked only by the bridge hooks.
type Body struct {
	h handle[cp.Body]
}

func WrapBody(raw *cp.Body) Body {
	if raw == nil {
		panic("physics: wrap of nil body")
	}
	return Body{handle[cp.Body]{raw: raw}}
}

func (b *Body) Raw() *cp.Body    { return b.h.get("body") }
func (b *Body) Empty() bool      { return b.h.empty() }
func (b *Body) InSpace() bool    { return b.h.member != nil }
func (b *Body) Move() Body       { return Body{b.h.move()} }
func (b *Body) Adopt(src *Body)  { b.h.adopt(&src.h, "body") }
func (b *Body) Free()            { b.h.free("body") }

func (b *Body) join(sp *cp.Space) { b.h.member = sp }
func (b *Body) leave()            { b.h.member = nil }

// Shape owns one cp.Shape (circle, box, segment, ...). It is attached
// to the body it was constructed against and, independently, to at
// most one space.
type Shape struct {
	h handle[cp.Shape]
}

func WrapShape(raw *cp.Shape) Shape {
	if raw == nil {
		panic("physics: wrap of nil shape")
	}
	return Shape{handle[cp.Shape]{raw: raw}}
}

func (s *Shape) Raw() *cp.Shape   { return s.h.get("shape") }
func (s *Shape) Empty() bool      { return s.h.empty() }
func (s *Shape) InSpace() bool    { return s.h.member != nil }
func (s *Shape) Move() Shape      { return Shape{s.h.move()} }
func (s *Shape) Adopt(src *Shape) { s.h.adopt(&src.h, "shape") }
func (s *Shape) Free()            { s.h.free("shape") }

func (s *Shape) join(sp *cp.Space) { s.h.member = sp }
func (s *Shape) leave()            { s.h.member = nil }
