// Package host runs a fizz particle system inside an [Ebitengine] game loop.
//
// It supplies every collaborator the simulation needs: a [Camera] for
// pointer-to-world mapping, [Input] with a synthetic injection queue, a
// batched quad [Renderer] implementing [fizz.Sink], and [Game], an
// ebiten.Game that ticks the system once per update.
//
//	game, err := host.NewGame(fizz.InteractiveConfig(), nil, host.RunConfig{
//		Title: "Particles", Width: 800, Height: 600, ShowFPS: true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := host.Run(game); err != nil {
//		log.Fatal(err)
//	}
//
// Scripts (see [LoadScript]) drive the injection queue for unattended runs.
//
// [Ebitengine]: https://ebitengine.org
package host
