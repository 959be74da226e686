// Package dandelion simulates and draws a dandelion seed head for
// [Ebitengine].
//
// The head is a few dozen to a few hundred seeds, each a small spring-damper
// swaying in a procedural wind field. Seeds can be blown away and regrown.
// Everything is deterministic: the same seed count, filament count and
// sequence of timestamps always produce the same frames.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window with an
// interactive flower:
//
//	dandelion.Run(dandelion.RunConfig{
//		Title: "Dandelion", Width: 480, Height: 720,
//		Flower: dandelion.DefaultConfig(),
//	})
//
// For full control, drive a [Bloom] yourself. The host owns the clock and
// the release anchors; a [ReleaseController] keeps them for you:
//
//	bloom := dandelion.NewBloom(dandelion.BloomConfigFrom(cfg))
//	release := dandelion.NewReleaseController(bloom.SeedCount(), dandelion.DefaultSeed)
//	raster := dandelion.NewRasterizer()
//
//	// every frame
//	release.Update(now)
//	bloom.Update(now, wind)
//	cmds := bloom.Draw(now, wind, theme, release.Anchors(), canvas, overflow)
//	raster.Submit(screen, cmds)
//
// # Pipeline
//
// [GenerateSeeds] lays the seeds out on a Fibonacci sphere flattened to a
// disc. [Simulation] integrates the stem and every seed; [Driver] throttles
// it to 60 steps per second. [Renderer] turns a [Frame] into an ordered list
// of [DrawCommand] values: stem, seeds behind the core, the core, seeds in
// front, then every detached seed on top.
//
// Commands are plain data. [Rasterizer] draws them with a single
// DrawTriangles32 call per frame; [WritePNG] and [WriteSVG] export them
// without a GPU.
//
// # Styles and palettes
//
// A [Style] tunes seed counts, wind response, regrowth time, dashed strokes
// (pencil) and translucent pulses (watercolor). A [Palette] picks one of the
// built-in [Theme] values. [AppearanceStore] remembers both across runs via
// [gdata].
//
// Easing uses [gween]; wind gusts are smoothed by a [harmonica] spring.
// Release events can be published on a [Donburi] world through the
// dandelion/ecs adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [harmonica]: https://github.com/charmbracelet/harmonica
// [gdata]: https://github.com/quasilyte/gdata
// [Donburi]: https://github.com/yohamta/donburi
package dandelion
