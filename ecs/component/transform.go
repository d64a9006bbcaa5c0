package component

import "github.com/milk9111/rcai/geom"

type Transform struct {
	Position geom.Vec3
}

var TransformComponent = NewComponent[Transform]("transform")
