package main

import (
	"os"

	"github.com/urfave/cli"
)

func main() {
	sceneFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "model, m",
			Usage: "glTF model placed at every demo position (default: unit cube)",
		},
		cli.StringFlag{
			Name:  "texture, t",
			Usage: "texture image (png, jpeg, gif, bmp, tiff, webp; default: checker)",
		},
		cli.Float64Flag{
			Name:  "gi-scale",
			Value: 0.1,
			Usage: "irradiance map resolution relative to the texture",
		},
		cli.StringFlag{
			Name:  "light",
			Value: "0.1,0.5,-1",
			Usage: "light direction as x,y,z",
		},
		cli.DurationFlag{
			Name:  "bake-interval",
			Usage: "minimum time between bake passes (0 = back to back)",
		},
		cli.IntFlag{
			Name:  "bake-workers",
			Value: 1,
			Usage: "objects baked concurrently within a pass",
		},
		cli.BoolFlag{
			Name:  "no-smooth",
			Usage: "move the camera immediately instead of easing",
		},
	}

	app := cli.NewApp()
	app.Name = "radiance"
	app.Usage = "software rasterizer with a background irradiance baker"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "window",
			Usage: "render the scene in an 800x600 window",
			Description: `
Keys: W/S zoom, A/D orbit, Q/E tilt, R/F pan up and down, Esc quits.`,
			Flags:  sceneFlags,
			Action: runWindow,
		},
		{
			Name:   "term",
			Usage:  "render the scene in the terminal",
			Flags:  append([]cli.Flag{cli.IntFlag{Name: "fps", Value: 30, Usage: "target frame rate"}}, sceneFlags...),
			Action: runTerminal,
		},
		{
			Name:  "snapshot",
			Usage: "bake, render, and save a frame as png",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 600,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "frames",
					Value: 1,
					Usage: "frames to render before saving",
				},
				cli.IntFlag{
					Name:  "bake-passes",
					Value: 1,
					Usage: "bake passes to run before the first frame",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, sceneFlags...),
			Action: runSnapshot,
		},
	}
	app.Action = runWindow

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
