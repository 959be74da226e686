// Command dandelion-icon renders a still frame of the flower to SVG or PNG.
//
// The frame is taken after simulating the springs up to -time seconds with
// the given wind, so the seeds lean the way they would in the live view.
//
//	dandelion-icon -o icon.svg
//	dandelion-icon -png -size 1024 -palette dawn -o icon.png
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phanxgames/dandelion"
)

var (
	outFlag         = flag.String("o", "dandelion.svg", "output file")
	pngFlag         = flag.Bool("png", false, "write PNG instead of SVG")
	sizeFlag        = flag.Int("size", 512, "output width and height in pixels")
	seedsFlag       = flag.Int("seeds", dandelion.DefaultSeedCount, "number of seeds")
	filamentsFlag   = flag.Int("filaments", dandelion.DefaultFilamentsPerSeed, "filaments per seed")
	windFlag        = flag.Float64("wind", dandelion.DefaultWindStrength, "wind strength")
	timeFlag        = flag.Float64("time", 2, "seconds to simulate before capturing")
	styleFlag       = flag.String("style", "procedural", "style: procedural, watercolor, pencil")
	paletteFlag     = flag.String("palette", "dark", "palette: dark, dawn, twilight, forest")
	transparentFlag = flag.Bool("transparent", false, "leave the background transparent")
	backgroundFlag  = flag.String("background", "", "background color as #RRGGBB (default: palette background)")
)

// simulationStep is the fixed step used to advance the springs.
const simulationStep = 1.0 / 60.0

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatalf("[dandelion-icon] %v", err)
	}
}

func run() error {
	style, err := dandelion.ParseStyle(*styleFlag)
	if err != nil {
		return err
	}
	palette, err := dandelion.ParsePalette(*paletteFlag)
	if err != nil {
		return err
	}
	if *sizeFlag <= 0 {
		return fmt.Errorf("size must be positive, got %d", *sizeFlag)
	}
	theme := dandelion.ThemeFor(palette)

	bloom := dandelion.NewBloom(dandelion.BloomConfig{
		SeedCount:        *seedsFlag,
		FilamentsPerSeed: *filamentsFlag,
		Style:            style,
	})
	now := 0.0
	for now < *timeFlag {
		bloom.Update(now, *windFlag)
		now += simulationStep
	}

	size := float64(*sizeFlag)
	canvas := dandelion.Size{Width: size, Height: size}
	cmds := bloom.Draw(now, *windFlag, theme, dandelion.Anchors{}, canvas, 0)

	opts := dandelion.ExportOptions{
		Viewport:   dandelion.FrameViewport(canvas, 0),
		Width:      *sizeFlag,
		Height:     *sizeFlag,
		Background: theme.Background,
	}
	switch {
	case *transparentFlag:
		opts.Background = dandelion.Color{}
	case *backgroundFlag != "":
		bg, err := dandelion.ParseHexColor(*backgroundFlag)
		if err != nil {
			return err
		}
		opts.Background = bg
	}

	f, err := os.Create(*outFlag)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := bufio.NewWriter(f)
	if *pngFlag {
		err = dandelion.WritePNG(w, cmds, opts)
	} else {
		err = dandelion.WriteSVG(w, cmds, opts)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", *outFlag, err)
	}
	log.Printf("[dandelion-icon] wrote %s (%d commands)", *outFlag, len(cmds))
	return nil
}
