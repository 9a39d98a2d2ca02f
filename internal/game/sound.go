package game

// Sound event categories registered by the weapon/movement collaborator.
const (
	SoundGunshot  = "gunshot"
	SoundFootstep = "footstep"
)

const (
	soundEventTTL       = 3.0  // seconds before an event is pruned outright
	soundAudibleWindow  = 2.0  // seconds during which listeners still hear it
	soundRadiusPerLoud  = 20.0 // audibility radius = loudness * this
)

// SoundEvent is an ephemeral world stimulus: a gunshot, a loud footstep.
// Radius is fixed at creation and never changes.
type SoundEvent struct {
	Pos      Vec3
	Loudness float64 // 0..1
	Category string
	At       float64 // sim-clock seconds when registered
	Radius   float64
}

// SoundRegistry is a short-lived log of sound events. The weapon/movement
// collaborator appends; every agent queries it each tick. Time is the
// in-simulation clock, advanced by the mission driver, so queries stay
// consistent within a session regardless of wall-clock jitter.
type SoundRegistry struct {
	events []SoundEvent
	now    float64
}

// NewSoundRegistry creates an empty registry at sim time zero.
func NewSoundRegistry() *SoundRegistry {
	return &SoundRegistry{}
}

// Advance moves the registry clock forward by dt seconds.
func (r *SoundRegistry) Advance(dt float64) {
	r.now += dt
}

// Now returns the registry's current sim-clock time.
func (r *SoundRegistry) Now() float64 {
	return r.now
}

// RegisterEvent appends an event stamped with the current sim time and lazily
// prunes anything past its TTL. Pruning only removes strictly-expired entries,
// so readers within the same tick never lose a live event.
func (r *SoundRegistry) RegisterEvent(pos Vec3, loudness float64, category string) {
	loudness = clamp01(loudness)
	r.prune()
	r.events = append(r.events, SoundEvent{
		Pos:      pos,
		Loudness: loudness,
		Category: category,
		At:       r.now,
		Radius:   loudness * soundRadiusPerLoud,
	})
}

// prune drops events older than the TTL.
func (r *SoundRegistry) prune() {
	kept := r.events[:0]
	for _, e := range r.events {
		if r.now-e.At <= soundEventTTL {
			kept = append(kept, e)
		}
	}
	r.events = kept
}

// LoudestAudibleTo returns the event with the highest effective loudness for
// a listener at the given position, along with that effective loudness.
// Only events younger than the audible window and within their own radius
// qualify. Effective loudness falls off linearly with distance:
// loudness * (1 - dist/radius). Ties break to the first maximum encountered,
// which is deterministic given the append order.
func (r *SoundRegistry) LoudestAudibleTo(listener Vec3) (SoundEvent, float64, bool) {
	var best SoundEvent
	bestEff := 0.0
	found := false
	for _, e := range r.events {
		if r.now-e.At >= soundAudibleWindow {
			continue
		}
		if e.Radius <= 0 {
			continue
		}
		dist := listener.PlanarDist(e.Pos)
		if dist > e.Radius {
			continue
		}
		eff := e.Loudness * (1.0 - dist/e.Radius)
		if !found || eff > bestEff {
			best = e
			bestEff = eff
			found = true
		}
	}
	return best, bestEff, found
}

// Events returns the raw event log (live and expired-but-unpruned).
func (r *SoundRegistry) Events() []SoundEvent {
	return r.events
}
