package world

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/sneak/component"
	"github.com/milk9111/sneak/logger"
	"github.com/sirupsen/logrus"
)

// ObstacleWalls is the category given to obstacles that don't name one.
const ObstacleWalls component.ObstacleMask = 1 << 0

var allShapes = cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES)

// Obstacle is a static box that can block line of sight.
type Obstacle struct {
	Bounds   cp.BB
	Category component.ObstacleMask
}

// PhysicsWorld owns the Chipmunk spaces used for world queries. Obstacles
// and hiding spots live in separate spaces so a wide obstacle mask never
// treats a hiding spot as a wall.
type PhysicsWorld struct {
	space *cp.Space
	spots *cp.Space

	obstacles []Obstacle
	hiding    []cp.BB
	log       *logrus.Entry
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		space: cp.NewSpace(),
		spots: cp.NewSpace(),
		log:   logger.For("physics"),
	}
}

// Space returns the obstacle space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddObstacle adds a static box in the given category.
func (pw *PhysicsWorld) AddObstacle(bb cp.BB, category component.ObstacleMask) {
	if category == 0 {
		category = ObstacleWalls
	}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, uint(category), cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	pw.obstacles = append(pw.obstacles, Obstacle{Bounds: bb, Category: category})
}

func (pw *PhysicsWorld) AddHidingSpot(bb cp.BB) {
	shape := cp.NewBox2(pw.spots.StaticBody, bb, 0)
	pw.spots.AddShape(shape)
	pw.hiding = append(pw.hiding, bb)
}

// Occluded reports whether an obstacle whose category is in mask lies on
// the segment from one point to the other.
func (pw *PhysicsWorld) Occluded(from, to cp.Vector, mask component.ObstacleMask) bool {
	if pw == nil || mask == 0 {
		return false
	}
	filter := cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(mask))
	info := pw.space.SegmentQueryFirst(from, to, 0, filter)
	return info.Shape != nil
}

// InHidingSpot reports whether p lies inside any hiding spot.
func (pw *PhysicsWorld) InHidingSpot(p cp.Vector) bool {
	if pw == nil || len(pw.hiding) == 0 {
		return false
	}
	info := pw.spots.PointQueryNearest(p, 0, allShapes)
	return info != nil && info.Shape != nil
}

// Blocked reports whether a circle of radius r at p overlaps an obstacle.
func (pw *PhysicsWorld) Blocked(p cp.Vector, r float64) bool {
	if pw == nil || len(pw.obstacles) == 0 {
		return false
	}
	info := pw.space.PointQueryNearest(p, r, allShapes)
	return info != nil && info.Shape != nil
}

func (pw *PhysicsWorld) Obstacles() []Obstacle {
	return append([]Obstacle(nil), pw.obstacles...)
}

func (pw *PhysicsWorld) HidingSpots() []cp.BB {
	return append([]cp.BB(nil), pw.hiding...)
}
