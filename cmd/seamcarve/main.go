package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/seamcarve/seamcarve"
	"github.com/seamcarve/seamcarve/utils"
)

const helpBanner = `
┌─┐┌─┐┌─┐┌┬┐┌─┐┌─┐┬─┐┬  ┬┌─┐
└─┐├┤ ├─┤│││├─┤├─┘├┬┘└┐┌┘├┤
└─┘└─┘┴ ┴┴ ┴┴ ┴┴  ┴└─ └┘ └─┘

Content aware image shrinking by seam removal.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	configFile  = flag.String("config", "", "YAML configuration file")
	source      = flag.String("in", seamcarve.PipeName, "Source image, directory or URL")
	destination = flag.String("out", "", "Destination image or directory")
	newWidth    = flag.Int("width", 0, "New width")
	newHeight   = flag.Int("height", 0, "New height")
	debug       = flag.Bool("debug", false, "Write a seam map next to the output")
	seamColor   = flag.String("color", seamcarve.DefaultSeamColor, "Seam color used by the seam map")
	verbose     = flag.Bool("verbose", false, "Log every removed seam")
	workers     = flag.Int("conc", 0, "Number of files to process concurrently")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, helpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := seamcarve.DefaultConfig()
	if *configFile != "" {
		var err error
		if cfg, err = seamcarve.LoadConfig(*configFile); err != nil {
			log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
	}
	applyFlags(cfg)

	if cfg.Width == 0 && cfg.Height == 0 {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide a width or height for image carving!", utils.ErrorMessage))
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}

	proc := cfg.Processor()
	if !cfg.Verbose {
		proc.Spinner = utils.NewSpinner(
			utils.StatusLine("is carving the image...", utils.DefaultMessage),
			time.Millisecond*100, true,
		)
	}

	if err := proc.Execute(cfg.Ops()); err != nil {
		log.Fatalf("%s %s",
			utils.DecorateText("\nError carving the image:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
}

// applyFlags overrides the configuration with the flags set on the command line.
func applyFlags(cfg *seamcarve.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "in":
			cfg.Source = *source
		case "out":
			cfg.Destination = *destination
		case "width":
			cfg.Width = *newWidth
		case "height":
			cfg.Height = *newHeight
		case "debug":
			cfg.Debug = *debug
		case "color":
			cfg.SeamColor = *seamColor
		case "verbose":
			cfg.Verbose = *verbose
		case "conc":
			cfg.Workers = *workers
		}
	})
}
