// Package world stores scene entities in an arche ECS world and gives the
// simulation a small, typed API over it.
//
// Entities are created once at bootstrap and live for the whole run. The
// World is not safe for concurrent use; the frame loop owns it.
package world

import (
	"github.com/mlange-42/arche/ecs"
	"github.com/mlange-42/arche/generic"
)

// Entity identifies a scene entity.
type Entity = ecs.Entity

// World wraps the ECS storage together with the component mappers and
// filters used by the frame systems.
type World struct {
	ecs ecs.World

	lights  generic.Map2[Transform, PointLight]
	cameras generic.Map3[Transform, Camera, Player]
	stars   generic.Map4[Name, Transform, CelestialBody, Appearance]
	planets generic.Map6[Name, Transform, CelestialBody, Orbit, Velocity, Appearance]

	names      generic.Map[Name]
	transforms generic.Map[Transform]
	bodies     generic.Map[CelestialBody]
	orbits     generic.Map[Orbit]
	velocities generic.Map[Velocity]

	bodyFilter    *generic.Filter2[Transform, CelestialBody]
	orbitFilter   *generic.Filter4[Name, Transform, Orbit, CelestialBody]
	playerFilter  *generic.Filter2[Transform, Player]
	cameraFilter  *generic.Filter2[Transform, Camera]
	visibleFilter *generic.Filter4[Name, Transform, CelestialBody, Appearance]
	lightFilter   *generic.Filter2[Transform, PointLight]
}

// New creates an empty world.
func New() *World {
	w := &World{ecs: ecs.NewWorld()}

	w.lights = generic.NewMap2[Transform, PointLight](&w.ecs)
	w.cameras = generic.NewMap3[Transform, Camera, Player](&w.ecs)
	w.stars = generic.NewMap4[Name, Transform, CelestialBody, Appearance](&w.ecs)
	w.planets = generic.NewMap6[Name, Transform, CelestialBody, Orbit, Velocity, Appearance](&w.ecs)

	w.names = generic.NewMap[Name](&w.ecs)
	w.transforms = generic.NewMap[Transform](&w.ecs)
	w.bodies = generic.NewMap[CelestialBody](&w.ecs)
	w.orbits = generic.NewMap[Orbit](&w.ecs)
	w.velocities = generic.NewMap[Velocity](&w.ecs)

	w.bodyFilter = generic.NewFilter2[Transform, CelestialBody]()
	w.orbitFilter = generic.NewFilter4[Name, Transform, Orbit, CelestialBody]()
	w.playerFilter = generic.NewFilter2[Transform, Player]()
	w.cameraFilter = generic.NewFilter2[Transform, Camera]()
	w.visibleFilter = generic.NewFilter4[Name, Transform, CelestialBody, Appearance]()
	w.lightFilter = generic.NewFilter2[Transform, PointLight]()

	return w
}

// SpawnLight creates a point light.
func (w *World) SpawnLight(t Transform, l PointLight) Entity {
	return w.lights.NewWith(&t, &l)
}

// SpawnCamera creates the player-controlled camera.
func (w *World) SpawnCamera(t Transform, p Player) Entity {
	return w.cameras.NewWith(&t, &Camera{}, &p)
}

// SpawnStar creates a body that does not orbit.
func (w *World) SpawnStar(name Name, t Transform, b CelestialBody, a Appearance) Entity {
	return w.stars.NewWith(&name, &t, &b, &a)
}

// SpawnPlanet creates an orbiting body.
func (w *World) SpawnPlanet(name Name, t Transform, b CelestialBody, o Orbit, v Velocity, a Appearance) Entity {
	return w.planets.NewWith(&name, &t, &b, &o, &v, &a)
}

// Name returns the entity's name, or "" if it has none.
func (w *World) Name(e Entity) Name {
	if !w.names.Has(e) {
		return ""
	}
	return *w.names.Get(e)
}

// Transform returns a pointer to the entity's transform, or nil.
func (w *World) Transform(e Entity) *Transform {
	if !w.transforms.Has(e) {
		return nil
	}
	return w.transforms.Get(e)
}

// Body returns a pointer to the entity's physical parameters, or nil.
func (w *World) Body(e Entity) *CelestialBody {
	if !w.bodies.Has(e) {
		return nil
	}
	return w.bodies.Get(e)
}

// Orbit returns a pointer to the entity's orbit, or nil.
func (w *World) Orbit(e Entity) *Orbit {
	if !w.orbits.Has(e) {
		return nil
	}
	return w.orbits.Get(e)
}

// Velocity returns a pointer to the entity's stored velocity, or nil.
func (w *World) Velocity(e Entity) *Velocity {
	if !w.velocities.Has(e) {
		return nil
	}
	return w.velocities.Get(e)
}

// EachBody calls fn for every star and planet.
func (w *World) EachBody(fn func(e Entity, t *Transform, b *CelestialBody)) {
	q := w.bodyFilter.Query(&w.ecs)
	for q.Next() {
		t, b := q.Get()
		fn(q.Entity(), t, b)
	}
}

// EachOrbit calls fn for every body that carries orbital elements.
func (w *World) EachOrbit(fn func(e Entity, name Name, t *Transform, o *Orbit, b *CelestialBody)) {
	q := w.orbitFilter.Query(&w.ecs)
	for q.Next() {
		n, t, o, b := q.Get()
		fn(q.Entity(), *n, t, o, b)
	}
}

// EachPlayer calls fn for every player-controlled transform.
func (w *World) EachPlayer(fn func(t *Transform, p *Player)) {
	q := w.playerFilter.Query(&w.ecs)
	for q.Next() {
		fn(q.Get())
	}
}

// EachVisible calls fn for every body with an appearance.
func (w *World) EachVisible(fn func(name Name, t *Transform, b *CelestialBody, a *Appearance)) {
	q := w.visibleFilter.Query(&w.ecs)
	for q.Next() {
		n, t, b, a := q.Get()
		fn(*n, t, b, a)
	}
}

// Camera returns the first camera's transform.
func (w *World) Camera() (Entity, *Transform, bool) {
	q := w.cameraFilter.Query(&w.ecs)
	defer q.Close()
	if !q.Next() {
		return Entity{}, nil, false
	}
	t, _ := q.Get()
	return q.Entity(), t, true
}

// Light returns the first point light.
func (w *World) Light() (*Transform, *PointLight, bool) {
	q := w.lightFilter.Query(&w.ecs)
	defer q.Close()
	if !q.Next() {
		return nil, nil, false
	}
	t, l := q.Get()
	return t, l, true
}

// Stats summarises the world's contents.
type Stats struct {
	Entities int
	Stars    int
	Planets  int
	Cameras  int
	Lights   int
}

// Stats counts entities by role.
func (w *World) Stats() Stats {
	var s Stats
	w.EachBody(func(_ Entity, _ *Transform, b *CelestialBody) {
		if b.IsStar() {
			s.Stars++
		} else {
			s.Planets++
		}
	})
	q := w.cameraFilter.Query(&w.ecs)
	s.Cameras = q.Count()
	q.Close()
	lq := w.lightFilter.Query(&w.ecs)
	s.Lights = lq.Count()
	lq.Close()
	s.Entities = s.Stars + s.Planets + s.Cameras + s.Lights
	return s
}
