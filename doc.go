// Package glade is the client-side simulation and rendering core of a
// shared, weather-driven garden, built on [Ebitengine].
//
// A [Garden] owns everything: a day-night clock, wind physics, weather
// profiles, snow and puddle accumulation, a pooled particle system, scroll
// camera, generated grass and light beams, and per-plant growth, damage,
// death and shield presentation. Plant data arrives from outside as plain
// snapshots; the garden never decides game outcomes.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	g, err := glade.New(glade.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	g.SetWeather("rain")
//	glade.Run(g, glade.RunConfig{
//		Title: "Garden", Width: 1280, Height: 720, ShowHUD: true,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Garden.Update] with an explicit [Frame] and [Garden.Draw]:
//
//	func (a *app) Update() error        { a.g.Update(a.clock.Frame()); return nil }
//	func (a *app) Draw(s *ebiten.Image) { a.g.Draw(s) }
//
// Every time-dependent computation reads Frame.Now (milliseconds), so a
// garden driven with synthetic frames is fully deterministic for a given
// [Config.Seed].
//
// # Plants
//
// Feed server snapshots with [Garden.ApplyUpdate] (see [DecodeUpdate]) or
// [Garden.SetPlants]. Plant images are fetched in the background by a
// [ResourceCache]; a plant is drawn only once all three of its images are
// ready. Clicks resolve to create or protect intents delivered to the
// [EventSink].
//
// # Weather
//
// Profiles live in a [WeatherTable]. [DefaultWeatherTable] carries the
// built-in catalog; [LoadWeatherTable] reads a JSON array of profiles.
// Unknown labels always fall back to "sunny".
//
// # Scripted runs
//
// [LoadScenario] sequences weather changes, camera moves, injected clicks
// and [Garden.Screenshot] captures for reproducible visual checks.
//
// [Ebitengine]: https://ebitengine.org
package glade
