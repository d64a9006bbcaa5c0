package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/rcai/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			dead := ents[c.destroyIndex]
			if !DestroyEntity(w, dead) {
				t.Fatalf("DestroyEntity should return true for a live entity")
			}
			if IsAlive(w, dead) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, dead) {
				t.Fatalf("destroying twice should return false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestWorldReusesSlotsWithNewGeneration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]("int")

	old := CreateEntity(w)
	if err := Add(w, old, kind, intPtr(1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	DestroyEntity(w, old)

	reused := CreateEntity(w)
	if reused.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), reused.id())
	}
	if reused == old || IsAlive(w, old) {
		t.Fatalf("stale handle must not match the reused slot")
	}
	if Has(w, reused, kind) {
		t.Fatalf("reused slot inherited a component")
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]("ints")
	strs := component.NewComponent[string]("strs")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, ints.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, ints.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if Has(w, e2, ints.Kind()) {
					t.Fatalf("e2 should not have the int component")
				}
			},
			teardown: func() bool { return Remove(w, e1, ints.Kind()) },
		},
		{
			name: "add_str_to_both",
			setup: func() error {
				if err := Add(w, e1, strs.Kind(), stringPtr("a")); err != nil {
					return err
				}
				return Add(w, e2, strs.Kind(), stringPtr("b"))
			},
			check: func(t *testing.T) {
				first, ok := First(w, strs.Kind())
				if !ok || (first != e1 && first != e2) {
					t.Fatalf("expected First to find one of the entities, got %v", first)
				}
				v, _ := Get(w, e2, strs.Kind())
				if *v != "b" {
					t.Fatalf("expected b, got %q", *v)
				}
			},
			teardown: func() bool { return Remove(w, e1, strs.Kind()) && Remove(w, e2, strs.Kind()) },
		},
		{
			name:  "replace_value",
			setup: func() error { _ = Add(w, e1, ints.Kind(), intPtr(1)); return Add(w, e1, ints.Kind(), intPtr(2)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e1, ints.Kind())
				if *v != 2 {
					t.Fatalf("expected replaced value 2, got %d", *v)
				}
			},
			teardown: func() bool { return Remove(w, e1, ints.Kind()) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestAddErrors(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]("int")
	dead := CreateEntity(w)
	DestroyEntity(w, dead)

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"dead_entity", Add(w, dead, kind, intPtr(1)), component.ErrEntityNotAlive},
		{"nil_value", Add(w, CreateEntity(w), kind, nil), component.ErrNilComponent},
		{"zero_kind", Add(w, CreateEntity(w), component.ComponentKind[int]{}, intPtr(1)), component.ErrInvalidComponentKind},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !errors.Is(c.err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, c.err)
			}
		})
	}
}

func TestForEach(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]("int")

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, kind, intPtr(1))
	_ = Add(w, e3, kind, intPtr(3))

	var ents []Entity
	ForEach(w, kind, func(e Entity, _ *int) { ents = append(ents, e) })
	set := toSet(ents)

	if _, ok := set[e1]; !ok {
		t.Fatalf("expected e1 in ForEach result")
	}
	if _, ok := set[e3]; !ok {
		t.Fatalf("expected e3 in ForEach result")
	}
	if _, ok := set[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
}

func TestForEachDestroyDuringIteration(t *testing.T) {
	w := NewWorld()
	kind := component.NewComponentKind[int]("int")
	for i := 0; i < 4; i++ {
		_ = Add(w, CreateEntity(w), kind, intPtr(i))
	}

	visited := 0
	ForEach(w, kind, func(e Entity, v *int) {
		visited++
		DestroyEntity(w, e)
	})
	if visited != 4 {
		t.Fatalf("expected 4 visits, got %d", visited)
	}
	if len(Entities(w)) != 0 {
		t.Fatalf("expected every entity destroyed")
	}
}

func TestForEach3(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := CreateEntity(w)
				e2 := CreateEntity(w)
				e3 := CreateEntity(w)

				ka := component.NewComponentKind[int]("int")
				kb := component.NewComponentKind[int]("int")
				kc := component.NewComponentKind[int]("int")

				_ = Add(w, e1, ka, intPtr(1))
				_ = Add(w, e2, ka, intPtr(2))
				_ = Add(w, e2, kb, intPtr(3))
				_ = Add(w, e2, kc, intPtr(5))
				_ = Add(w, e3, kb, intPtr(4))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]("int")
				kb := component.NewComponentKind[int]("int")
				kc := component.NewComponentKind[int]("int")

				_ = Add(w, e, ka, intPtr(1))
				_ = Add(w, e, kb, intPtr(2))
				_ = Add(w, e, kc, intPtr(3))

				if !DestroyEntity(w, e) {
					t.Fatal("failed to destroy entity")
				}

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store",
			run: func(t *testing.T) {
				w := NewWorld()
				e := CreateEntity(w)

				ka := component.NewComponentKind[int]("int")
				kb := component.NewComponentKind[int]("int")
				kc := component.NewComponentKind[int]("int")

				_ = Add(w, e, ka, intPtr(1))

				var res []Entity
				ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
				if len(res) != 0 {
					t.Fatalf("expected empty when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestDestroyDeactivates(t *testing.T) {
	w := NewWorld()
	e := CreateEntity(w)
	w.Active().Activate(e)
	DestroyEntity(w, e)
	if w.Active().Contains(e) {
		t.Fatalf("destroyed entity left on the tick list")
	}
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}
