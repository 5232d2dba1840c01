// Package fizz is a small particle lifecycle simulation for 2D games.
//
// Particles spawn in bursts, move under constant acceleration, age out, and
// are removed in two phases. Rendering, input and the camera belong to the
// host engine and are reached only through the [Host] and [Sink]
// interfaces; the host package provides an [Ebitengine] implementation.
//
// # Quick start
//
//	sys, err := fizz.NewSystem(fizz.AmbientConfig(), sink, fizz.NewSeededRand(1))
//	if err != nil {
//		log.Fatal(err)
//	}
//	// once per frame:
//	sys.Tick(1.0/60, host)
//
// # Tick order
//
// [System.Tick] runs its components in a fixed order:
//
//  1. [Spawner] advances its timer and, when the [Config.Trigger] holds,
//     creates [Config.Count] particles at the burst position.
//  2. [Integrator] moves every live particle (position first, using the
//     velocity from before this tick's acceleration), then decrements its
//     lifespan. Particles whose lifespan reached zero are tagged
//     [PendingRemoval] after the pass.
//  3. [Reaper] destroys tagged particles, their visuals and their mesh
//     references.
//  4. The [AppearanceSync] hook runs for every live particle. The default
//     [NoopSync] changes nothing; [FadeSync] eases alpha and size over age.
//
// Events published during the tick ([BurstEvent], [ExpireEvent]) are
// delivered at its end.
//
// # Storage
//
// Particles are [Donburi] entities with the [Particle], [Position] and
// [Visual] components. The burst mesh is reference counted and shared by all
// particles of a burst; each particle owns its [Appearance].
//
// # Configuration
//
// [InteractiveConfig] and [AmbientConfig] cover the two stock behaviors.
// [LoadConfig] reads YAML on top of a named preset:
//
//	preset: ambient
//	count: 25
//	velocityY: {min: 2, max: 6}
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package fizz
