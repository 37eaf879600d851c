// Package scenario loads Lua scripts that build the simulation world:
// scripts spawn entities, give them bodies and shapes, and set space
// parameters through a small registered API.
package scenario

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/jakecoffman/cp"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/mote2d/mote/internal/core/ecs"
	"github.com/mote2d/mote/internal/data"
	"github.com/mote2d/mote/internal/physics"
	"github.com/mote2d/mote/internal/sandbox"
)

// Engine wraps a single gopher-lua VM for scenario execution.
// Single-goroutine access only (setup and tick loop).
type Engine struct {
	vm       *lua.LState
	world    *ecs.World
	bridge   *physics.Bridge
	mats     *data.MaterialTable
	fragiles *ecs.ComponentStore[sandbox.Fragile]
	log      *zap.Logger
}

// NewEngine creates a Lua VM and registers the spawn API:
//
//	gravity(x, y)                     set space gravity
//	e = spawn()                       create an entity
//	body(e, mass, x, y, vx, vy)       attach a rigid body (mass <= 0: static)
//	circle(e, radius, tag[, mat])     attach a circle shape
//	box(e, w, h, tag[, mat])          attach a box shape
//	segment(e, x1, y1, x2, y2, tag)   attach a segment shape
//	fragile(e)                        destroy the entity on first contact
func NewEngine(world *ecs.World, bridge *physics.Bridge, mats *data.MaterialTable,
	fragiles *ecs.ComponentStore[sandbox.Fragile], log *zap.Logger) *Engine {

	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:       vm,
		world:    world,
		bridge:   bridge,
		mats:     mats,
		fragiles: fragiles,
		log:      log,
	}

	vm.SetGlobal("gravity", vm.NewFunction(e.luaGravity))
	vm.SetGlobal("spawn", vm.NewFunction(e.luaSpawn))
	vm.SetGlobal("body", vm.NewFunction(e.luaBody))
	vm.SetGlobal("circle", vm.NewFunction(e.luaCircle))
	vm.SetGlobal("box", vm.NewFunction(e.luaBox))
	vm.SetGlobal("segment", vm.NewFunction(e.luaSegment))
	vm.SetGlobal("fragile", vm.NewFunction(e.luaFragile))
	vm.SetGlobal("watch", vm.NewFunction(e.luaWatch))

	return e
}

// LoadDir runs all .lua files in a directory. A missing directory is
// not an error; an empty world is a valid scenario.
func (e *Engine) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded scenario script", zap.String("file", path))
	}
	return nil
}

// DoString runs an inline script. Used by tests and the REPL-less
// default scenario.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

func (e *Engine) Close() {
	e.vm.Close()
}

// ── Registered Lua functions ──────────────────────────────────────

func (e *Engine) luaGravity(L *lua.LState) int {
	x := float64(L.CheckNumber(1))
	y := float64(L.CheckNumber(2))
	e.bridge.Space().Raw().SetGravity(cp.Vector{X: x, Y: y})
	return 0
}

func (e *Engine) luaSpawn(L *lua.LState) int {
	id := e.world.CreateEntity()
	L.Push(lua.LNumber(float64(id)))
	return 1
}

func (e *Engine) luaBody(L *lua.LState) int {
	id := e.checkEntity(L, 1)
	mass := float64(L.CheckNumber(2))
	x := float64(L.CheckNumber(3))
	y := float64(L.CheckNumber(4))
	vx := float64(L.OptNumber(5, 0))
	vy := float64(L.OptNumber(6, 0))

	var raw *cp.Body
	if mass <= 0 {
		raw = cp.NewStaticBody()
	} else {
		raw = cp.NewBody(mass, math.Inf(1))
	}
	raw.SetPosition(cp.Vector{X: x, Y: y})
	if vx != 0 || vy != 0 {
		raw.SetVelocity(vx, vy)
	}

	body := physics.WrapBody(raw)
	e.bridge.Bodies.Set(id, &body)
	return 0
}

func (e *Engine) luaCircle(L *lua.LState) int {
	id := e.checkEntity(L, 1)
	radius := float64(L.CheckNumber(2))
	tag := cp.CollisionType(L.CheckInt(3))

	raw := cp.NewCircle(e.checkBody(L, id), radius, cp.Vector{})
	raw.SetCollisionType(tag)
	e.applyMaterial(L, raw, 4)

	shape := physics.WrapShape(raw)
	e.bridge.Shapes.Set(id, &shape)
	return 0
}

func (e *Engine) luaBox(L *lua.LState) int {
	id := e.checkEntity(L, 1)
	w := float64(L.CheckNumber(2))
	h := float64(L.CheckNumber(3))
	tag := cp.CollisionType(L.CheckInt(4))

	raw := cp.NewBox(e.checkBody(L, id), w, h, 0)
	raw.SetCollisionType(tag)
	e.applyMaterial(L, raw, 5)

	shape := physics.WrapShape(raw)
	e.bridge.Shapes.Set(id, &shape)
	return 0
}

func (e *Engine) luaSegment(L *lua.LState) int {
	id := e.checkEntity(L, 1)
	a := cp.Vector{X: float64(L.CheckNumber(2)), Y: float64(L.CheckNumber(3))}
	b := cp.Vector{X: float64(L.CheckNumber(4)), Y: float64(L.CheckNumber(5))}
	tag := cp.CollisionType(L.CheckInt(6))

	raw := cp.NewSegment(e.checkBody(L, id), a, b, 0)
	raw.SetCollisionType(tag)

	shape := physics.WrapShape(raw)
	e.bridge.Shapes.Set(id, &shape)
	return 0
}

func (e *Engine) luaFragile(L *lua.LState) int {
	id := e.checkEntity(L, 1)
	e.fragiles.Set(id, &sandbox.Fragile{})
	return 0
}

// watch(tag[, suppress]) registers the contact dispatcher for a
// collision tag. With suppress true the engine's physical response is
// suppressed and bodies pass through each other.
func (e *Engine) luaWatch(L *lua.LState) int {
	tag := cp.CollisionType(L.CheckInt(1))
	suppress := L.OptBool(2, false)
	e.bridge.OnContact(tag, func(_, _ ecs.EntityID) bool {
		return !suppress
	})
	return 0
}

func (e *Engine) checkEntity(L *lua.LState, arg int) ecs.EntityID {
	id := ecs.EntityID(uint64(L.CheckNumber(arg)))
	if !e.world.Alive(id) {
		L.RaiseError("entity %d is not alive", uint64(id))
	}
	return id
}

func (e *Engine) checkBody(L *lua.LState, id ecs.EntityID) *cp.Body {
	body, ok := e.bridge.Bodies.Get(id)
	if !ok {
		L.RaiseError("entity %d has no body", uint64(id))
	}
	return body.Raw()
}

func (e *Engine) applyMaterial(L *lua.LState, shape *cp.Shape, arg int) {
	name := L.OptString(arg, "")
	if name == "" {
		return
	}
	mat, ok := e.mats.Get(name)
	if !ok {
		L.RaiseError("unknown material %q", name)
	}
	shape.SetFriction(mat.Friction)
	shape.SetElasticity(mat.Elasticity)
}
