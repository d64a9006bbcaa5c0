package entity

import "github.com/milk9111/rcai/ecs"

// buildStep attaches one piece of an entity.
type buildStep func(e ecs.Entity) error

// assemble runs steps in order against e. The first failing step stops the
// build and destroys e, so no half-built entity stays alive.
func assemble(w *ecs.World, e ecs.Entity, steps ...buildStep) error {
	for _, step := range steps {
		if err := step(e); err != nil {
			ecs.DestroyEntity(w, e)
			return err
		}
	}
	return nil
}
