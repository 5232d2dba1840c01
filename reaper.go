package fizz

import "github.com/yohamta/donburi"

// Reaper destroys particles tagged PendingRemoval.
type Reaper struct {
	sink    Sink
	pending []donburi.Entity
}

// NewReaper creates a reaper destroying visuals through sink.
func NewReaper(sink Sink) *Reaper {
	return &Reaper{sink: sink}
}

// Sweep removes every tagged particle from w, destroys its visual and drops
// its mesh reference. Returns the number removed. The tag goes with the
// entity, so a second Sweep finds nothing.
func (r *Reaper) Sweep(w donburi.World) int {
	r.pending = r.pending[:0]
	pendingParticles.Each(w, func(entry *donburi.Entry) {
		r.pending = append(r.pending, entry.Entity())
	})

	removed := 0
	for _, e := range r.pending {
		if !w.Valid(e) {
			continue
		}
		entry := w.Entry(e)
		if entry.HasComponent(Visual) {
			v := Visual.Get(entry)
			if r.sink != nil {
				r.sink.DestroyVisual(v.ID)
			}
			if v.Mesh != nil {
				v.Mesh.Release()
			}
		}
		w.Remove(e)
		removed++
	}
	return removed
}
