package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fireworks/components"
)

// RocketStore keeps rising rockets as ECS entities.
type RocketStore struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Rocket]
	filter *ecs.Filter2[components.Position, components.Rocket]

	count     int
	detonated int

	// arrivals is scratch space reused across frames
	arrivals []arrival
}

// arrival records a rocket that reached its target during a query.
type arrival struct {
	entity ecs.Entity
	target components.Point
	hue    float64
}

// NewRocketStore creates an empty rocket store with its own ECS world.
func NewRocketStore() *RocketStore {
	world := ecs.NewWorld()
	return &RocketStore{
		world:  world,
		mapper: ecs.NewMap2[components.Position, components.Rocket](world),
		filter: ecs.NewFilter2[components.Position, components.Rocket](world),
	}
}

// Add creates a rocket entity at pos.
func (s *RocketStore) Add(pos components.Position, r components.Rocket) ecs.Entity {
	e := s.mapper.NewEntity(&pos, &r)
	s.count++
	return e
}

// Get returns the components of a live rocket.
func (s *RocketStore) Get(e ecs.Entity) (*components.Position, *components.Rocket, bool) {
	if !s.world.Alive(e) {
		return nil, nil, false
	}
	pos, r := s.mapper.Get(e)
	return pos, r, true
}

// Each calls fn for every live rocket.
func (s *RocketStore) Each(fn func(pos *components.Position, r *components.Rocket)) {
	query := s.filter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Update advances every rocket by one frame.
// Rockets that cover their launch distance are removed and detonated at their
// target within the same call; membership only changes after the query ends.
// Returns the number of detonations.
func (s *RocketStore) Update(em *Emitter, phase components.Phase) int {
	s.arrivals = s.arrivals[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, r := query.Get()

		r.PushTrail(pos.Point())

		r.Speed *= r.Acceleration
		vx := math.Cos(r.Angle) * r.Speed
		vy := math.Sin(r.Angle) * r.Speed
		r.DistanceTraveled += math.Hypot(vx, vy)

		em.Spark(pos.Point(), r.Hue)

		if r.Arrived() {
			s.arrivals = append(s.arrivals, arrival{
				entity: query.Entity(),
				target: components.Point{X: r.TargetX, Y: r.TargetY},
				hue:    r.Hue,
			})
			continue
		}

		pos.X += vx
		pos.Y += vy
	}

	for _, a := range s.arrivals {
		s.world.RemoveEntity(a.entity)
		s.count--
		s.detonated++
		em.Detonate(a.target, a.hue, em.DetonationMode(phase), phase)
	}

	return len(s.arrivals)
}

// Count returns the number of live rockets.
func (s *RocketStore) Count() int {
	return s.count
}

// Detonated returns the total number of rockets that reached their target.
func (s *RocketStore) Detonated() int {
	return s.detonated
}

// Reset removes every rocket without detonating it.
func (s *RocketStore) Reset() {
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.world.RemoveEntity(e)
	}
	s.count = 0
}
