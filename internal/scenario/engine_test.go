package scenario_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mote2d/mote/internal/core/ecs"
	"github.com/mote2d/mote/internal/core/event"
	"github.com/mote2d/mote/internal/data"
	"github.com/mote2d/mote/internal/physics"
	"github.com/mote2d/mote/internal/sandbox"
	"github.com/mote2d/mote/internal/scenario"
)

func newEngine(t *testing.T, mats *data.MaterialTable) (*ecs.World, *physics.Bridge, *sandbox.ImpactHandler, *scenario.Engine) {
	t.Helper()
	log := zap.NewNop()
	world := ecs.NewWorld()
	bus := event.NewBus()
	bridge := physics.Install(world, bus, physics.Config{}, log)
	t.Cleanup(bridge.Teardown)
	impact := sandbox.NewImpactHandler(world, bus, log)
	eng := scenario.NewEngine(world, bridge, mats, impact.Fragiles(), log)
	t.Cleanup(eng.Close)
	return world, bridge, impact, eng
}

func TestScriptSpawnsBodyAndShape(t *testing.T) {
	world, bridge, _, eng := newEngine(t, data.EmptyMaterials())

	err := eng.DoString(`
		e = spawn()
		body(e, 1, 2, 3, 10, 0)
		circle(e, 0.5, 1)
	`)
	if err != nil {
		t.Fatal(err)
	}

	if world.Pool().Live() != 1 {
		t.Fatalf("%d live entities, want 1", world.Pool().Live())
	}
	if bridge.Bodies.Len() != 1 || bridge.Shapes.Len() != 1 {
		t.Fatalf("stores hold %d bodies / %d shapes, want 1/1",
			bridge.Bodies.Len(), bridge.Shapes.Len())
	}

	bridge.Bodies.Each(func(id ecs.EntityID, body *physics.Body) {
		p := body.Raw().Position()
		v := body.Raw().Velocity()
		if p.X != 2 || p.Y != 3 {
			t.Errorf("position (%g,%g), want (2,3)", p.X, p.Y)
		}
		if v.X != 10 || v.Y != 0 {
			t.Errorf("velocity (%g,%g), want (10,0)", v.X, v.Y)
		}
		if body.Raw().UserData.(ecs.EntityID) != id {
			t.Error("UserData does not round-trip the entity identity")
		}
	})
}

func TestScriptStaticBodyAndMaterial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	if err := os.WriteFile(path, []byte(`
materials:
  - name: rubber
    friction: 0.9
    elasticity: 0.85
    density: 1.1
`), 0o644); err != nil {
		t.Fatal(err)
	}
	mats, err := data.LoadMaterials(path)
	if err != nil {
		t.Fatal(err)
	}

	_, bridge, _, eng := newEngine(t, mats)

	err = eng.DoString(`
		floor = spawn()
		body(floor, 0, 0, 0)
		box(floor, 10, 1, 2, "rubber")
	`)
	if err != nil {
		t.Fatal(err)
	}

	bridge.Shapes.Each(func(_ ecs.EntityID, shape *physics.Shape) {
		raw := shape.Raw()
		if raw.Friction() != 0.9 {
			t.Errorf("friction = %g, want 0.9", raw.Friction())
		}
		if raw.Elasticity() != 0.85 {
			t.Errorf("elasticity = %g, want 0.85", raw.Elasticity())
		}
	})
}

func TestScriptUnknownMaterialFails(t *testing.T) {
	_, _, _, eng := newEngine(t, data.EmptyMaterials())

	err := eng.DoString(`
		e = spawn()
		body(e, 1, 0, 0)
		circle(e, 1, 1, "adamantium")
	`)
	if err == nil || !strings.Contains(err.Error(), "adamantium") {
		t.Fatalf("err = %v, want unknown material error", err)
	}
}

func TestScriptShapeWithoutBodyFails(t *testing.T) {
	_, _, _, eng := newEngine(t, data.EmptyMaterials())

	err := eng.DoString(`
		e = spawn()
		circle(e, 1, 1)
	`)
	if err == nil || !strings.Contains(err.Error(), "no body") {
		t.Fatalf("err = %v, want missing body error", err)
	}
}

func TestScriptDeadEntityFails(t *testing.T) {
	world, _, _, eng := newEngine(t, data.EmptyMaterials())

	id := world.CreateEntity()
	world.Destroy(id)

	err := eng.DoString(fmt.Sprintf("body(%d, 1, 0, 0)", uint64(id)))
	if err == nil || !strings.Contains(err.Error(), "not alive") {
		t.Fatalf("err = %v, want dead entity error", err)
	}
}

func TestScriptFragileMarker(t *testing.T) {
	_, _, impact, eng := newEngine(t, data.EmptyMaterials())

	err := eng.DoString(`
		e = spawn()
		body(e, 1, 0, 0)
		fragile(e)
	`)
	if err != nil {
		t.Fatal(err)
	}
	if impact.Fragiles().Len() != 1 {
		t.Errorf("%d fragile markers, want 1", impact.Fragiles().Len())
	}
}

func TestLoadDirMissingIsNotAnError(t *testing.T) {
	_, _, _, eng := newEngine(t, data.EmptyMaterials())
	if err := eng.LoadDir(filepath.Join(t.TempDir(), "absent")); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDirRunsScripts(t *testing.T) {
	world, _, _, eng := newEngine(t, data.EmptyMaterials())

	dir := t.TempDir()
	script := `
e = spawn()
body(e, 1, 0, 0)
`
	if err := os.WriteFile(filepath.Join(dir, "a.lua"), []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := eng.LoadDir(dir); err != nil {
		t.Fatal(err)
	}
	if world.Pool().Live() != 1 {
		t.Errorf("%d live entities after LoadDir, want 1", world.Pool().Live())
	}
}
