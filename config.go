package seamcarve

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes a carving job. It can be loaded from a YAML file
// and is usually completed by command line flags.
type Config struct {
	// Source is an image file, a directory of images, an URL or "-" for stdin.
	Source string `yaml:"source"`
	// Destination is an image file, a directory or "-" for stdout.
	// When empty the output is written next to the source as carved<W>X<H>.<name>.
	Destination string `yaml:"destination"`

	// Width and Height are the target dimensions. Zero keeps the source size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Debug     bool   `yaml:"debug"`
	SeamColor string `yaml:"seamColor"`
	Verbose   bool   `yaml:"verbose"`

	// Workers is the number of files processed concurrently in directory mode.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Source:    PipeName,
		SeamColor: DefaultSeamColor,
		Workers:   runtime.NumCPU(),
	}
}

// LoadConfig reads a YAML configuration file on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values which can be verified without the source image.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.Wrapf(ErrDimensionMismatch, "target size %dx%d must not be negative", c.Width, c.Height)
	}
	if c.Source == "" {
		return errors.New("no source image provided")
	}
	if _, err := seamColor(c.SeamColor); err != nil {
		return err
	}
	return nil
}

// Processor builds the processor configured by c.
func (c *Config) Processor() *Processor {
	return &Processor{
		NewWidth:  c.Width,
		NewHeight: c.Height,
		SeamColor: c.SeamColor,
		Debug:     c.Debug,
		Verbose:   c.Verbose,
	}
}

// Ops builds the execution options configured by c.
func (c *Config) Ops() *Ops {
	return &Ops{
		Src:      c.Source,
		Dst:      c.Destination,
		PipeName: PipeName,
		Workers:  c.Workers,
	}
}
