package fizz

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BurstEvent is published after the spawner creates a burst.
type BurstEvent struct {
	Count    int
	Position mgl64.Vec3
}

// ExpireEvent is published for every particle tagged PendingRemoval.
type ExpireEvent struct {
	Entity   donburi.Entity
	Visual   VisualID
	Position mgl64.Vec3
}

// BurstEventType is the Donburi event type for spawn bursts.
// Subscribe to it with events.Subscribe, or use System.OnBurst.
var BurstEventType = events.NewEventType[BurstEvent]()

// ExpireEventType is the Donburi event type for expired particles.
var ExpireEventType = events.NewEventType[ExpireEvent]()
