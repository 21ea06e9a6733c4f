package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/bootfb"
	"github.com/BeatGlow/bootfb/draw"
	"github.com/BeatGlow/bootfb/framebuffer"
)

func main() {
	devFlag := flag.String("dev", "/dev/fb0", "Framebuffer device")
	blankFlag := flag.Bool("blank", bootfb.DefaultConfig.BlankOnInit, "Blank and unblank the display after the mode switch")
	blPinFlag := flag.String("bl", "", "Backlight GPIO pin (default: none)")
	framesFlag := flag.Int("frames", 0, "Number of frames to draw (default: until interrupted)")
	intervalFlag := flag.Duration("interval", 20*time.Millisecond, "Minimum time between frames")
	labelFlag := flag.String("label", "bootfb", "Text to draw")
	verboseFlag := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	if *verboseFlag {
		bootfb.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	config := &bootfb.Config{
		BlankOnInit: *blankFlag,
	}
	if *blPinFlag != "" {
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
		pin := gpioreg.ByName(*blPinFlag)
		if pin == nil {
			fatal(fmt.Errorf("invalid backlight pin %q", *blPinFlag))
		}
		config.Backlight = pin
	}

	face, err := labelFace(24)
	if err != nil {
		fatal(err)
	}

	fb, err := framebuffer.Open(*devFlag, bootfb.Generic, config)
	if err != nil {
		fatal(err)
	}
	defer fb.Close()

	mode := fb.Mode()
	fmt.Printf("using %s backend on %s: %s\n", fb.Kind(), *devFlag, mode)

	output := fb.Image()
	if output == nil {
		fb.Close()
		fatal(fmt.Errorf("unsupported pixel format: %s", mode))
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	var (
		ticker = time.NewTicker(*intervalFlag)
		r      = mode.Bounds()
		warned bool
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for offset := 0; *framesFlag <= 0 || offset < *framesFlag; offset++ {
		// Gradient inside a white border.
		for y := 1; y < r.Max.Y-1; y++ {
			for x := 1; x < r.Max.X-1; x++ {
				output.Set(x, y, color.RGBA{
					R: uint8(x + y + offset),
					G: uint8(x - y + offset),
					B: uint8(x + y - offset),
					A: 0xff,
				})
			}
		}
		draw.Rectangle(output, r, color.White)

		box := image.Rect(r.Dx()/4, r.Dy()/2-24, r.Dx()*3/4, r.Dy()/2+24)
		draw.Box(output, box, color.Black)
		drawLabel(output, face, box, *labelFlag)

		if err = fb.Update(); err != nil {
			var commitErr *bootfb.CommitError
			if !errors.As(err, &commitErr) {
				_ = fb.Close()
				fatal(err)
			}
			if !warned {
				fmt.Fprintln(os.Stderr, "warning: "+err.Error())
				warned = true
			}
		}

		select {
		case <-interrupt:
			return
		case <-ticker.C:
		}
	}
}

func labelFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func drawLabel(dst draw.Image, face font.Face, box image.Rectangle, label string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
	}
	var (
		width   = d.MeasureString(label)
		metrics = face.Metrics()
		height  = metrics.Ascent + metrics.Descent
	)
	d.Dot = fixed.Point26_6{
		X: fixed.I(box.Min.X+box.Dx()/2) - width/2,
		Y: fixed.I(box.Min.Y+box.Dy()/2) - height/2 + metrics.Ascent,
	}
	d.DrawString(label)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
