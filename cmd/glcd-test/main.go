package main

import (
	"flag"
	"image"
	"os"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/lcdwire/glcd"
	"github.com/lcdwire/glcd/draw"
	"github.com/lcdwire/glcd/pixel"
)

func main() {
	dataPinFlag := flag.String("data", "GPIO54", "serial data GPIO pin")
	clockPinFlag := flag.String("clock", "GPIO52", "serial clock GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO32", "data/command GPIO pin (DC)")
	csPinFlag := flag.String("cs", "GPIO50", "chip select GPIO pin")
	ctrlPinFlag := flag.String("ctrl", "GPIO6", "panel control GPIO pin")
	resetPinFlag := flag.String("reset", "GPIO7", "reset GPIO pin")
	textFlag := flag.String("text", "glcd rnx16", "text to render")
	invertFlag := flag.Bool("invert", false, "invert the display")
	verboseFlag := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if _, err := host.Init(); err != nil {
		log.Fatal().Err(err).Msg("GPIO host initialization failed")
	}

	conn, err := glcd.OpenGPIO(&glcd.GPIOConfig{
		Data:  gpioreg.ByName(*dataPinFlag),
		Clock: gpioreg.ByName(*clockPinFlag),
		DC:    gpioreg.ByName(*dcPinFlag),
		CS:    gpioreg.ByName(*csPinFlag),
		Ctrl:  gpioreg.ByName(*ctrlPinFlag),
		Reset: gpioreg.ByName(*resetPinFlag),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not claim GPIO lines")
	}
	defer conn.Close()
	log.Info().Str("conn", conn.String()).Msg("connected")

	// Power-on reset pulse.
	if err = conn.Reset(gpio.Low); err != nil {
		log.Fatal().Err(err).Msg("reset failed")
	}
	time.Sleep(10 * time.Millisecond)
	if err = conn.Reset(gpio.High); err != nil {
		log.Fatal().Err(err).Msg("reset failed")
	}

	output, err := glcd.RNX16(conn, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("could not open display")
	}
	defer output.Close()
	log.Info().Stringer("size", output.Bounds().Size()).Msg("display open")

	if err = output.Show(true); err != nil {
		log.Fatal().Err(err).Msg("display on failed")
	}
	if *invertFlag {
		if err = output.Invert(true); err != nil {
			log.Fatal().Err(err).Msg("invert failed")
		}
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		log.Fatal().Err(err).Msg("could not parse font")
	}

	bounds := output.Bounds()
	draw.Rectangle(output, bounds, pixel.On)

	ft := freetype.NewContext()
	ft.SetDPI(72)
	ft.SetFont(font)
	ft.SetFontSize(13)
	ft.SetClip(bounds)
	ft.SetDst(output)
	ft.SetSrc(image.White)
	if _, err = ft.DrawString(*textFlag, freetype.Pt(6, 16)); err != nil {
		log.Fatal().Err(err).Msg("could not render text")
	}

	if err = output.Refresh(); err != nil {
		log.Fatal().Err(err).Msg("refresh failed")
	}

	// Animate a marker along the bottom edge until interrupted.
	var (
		ticker = time.NewTicker(50 * time.Millisecond)
		marker = image.Rect(0, bounds.Max.Y-10, 8, bounds.Max.Y-2)
		offset int
	)
	defer ticker.Stop()

	log.Info().Msg("hit control-c to stop...")
	for {
		draw.Box(output, marker.Add(image.Pt(offset%(bounds.Dx()-8), 0)), pixel.Off)
		offset++
		draw.RoundedBox(output, marker.Add(image.Pt(offset%(bounds.Dx()-8), 0)), 2, pixel.On)

		if err = output.Refresh(); err != nil {
			log.Fatal().Err(err).Msg("refresh failed")
		}
		<-ticker.C
	}
}
