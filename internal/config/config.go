package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/p3nguindeity/MPF-Nixie/internal/rgb"
)

const DefaultBaud = 9600

var ErrPortRequired = errors.New("nixie.port must be set to the controller's serial port")

// Config is the `nixie:` section of the machine config.
type Config struct {
	Port                   string `yaml:"port" toml:"port"`
	Baud                   int    `yaml:"baud,omitempty" toml:"baud"`
	DefaultDim             int    `yaml:"default_dim,omitempty" toml:"default_dim"`
	DefaultColor           []any  `yaml:"default_color,omitempty" toml:"default_color"`
	AutoAttract            string `yaml:"auto_attract,omitempty" toml:"auto_attract"`
	IgnoreUpdatesInAttract bool   `yaml:"ignore_updates_in_attract,omitempty" toml:"ignore_updates_in_attract"`
	Debug                  bool   `yaml:"debug,omitempty" toml:"debug"`

	Preview    string `yaml:"preview,omitempty" toml:"preview"`         // "" | "console" | "spi"
	PreviewSPI string `yaml:"preview_spi,omitempty" toml:"preview_spi"` // spireg name, "" for the first port
	Tubes      int    `yaml:"tubes,omitempty" toml:"tubes"`             // tubes shown by the preview
}

// File is the on-disk layout.
type File struct {
	Nixie Config `yaml:"nixie" toml:"nixie"`
}

func Default() Config {
	return Config{Baud: DefaultBaud}
}

// Validate reports configuration errors that must stop startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return ErrPortRequired
	}
	return nil
}

func (c Config) BaudRate() int {
	if c.Baud <= 0 {
		return DefaultBaud
	}
	return c.Baud
}

// Dim is default_dim masked to 8 bits.
func (c Config) Dim() uint8 {
	return uint8(c.DefaultDim & 0xFF)
}

// Color returns default_color when it is a three element sequence.
func (c Config) Color() (rgb.Triple, bool) {
	if len(c.DefaultColor) != 3 {
		return rgb.Triple{}, false
	}
	return rgb.Triple{
		R: rgb.Coerce(c.DefaultColor[0]),
		G: rgb.Coerce(c.DefaultColor[1]),
		B: rgb.Coerce(c.DefaultColor[2]),
	}, true
}

// AttractMode is the normalized auto_attract token; "" disables mode tracking.
func (c Config) AttractMode() string {
	return strings.ToLower(strings.TrimSpace(c.AutoAttract))
}

// Load reads a YAML file, or TOML when the extension is .toml.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f := File{Nixie: Default()}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(b, &f)
	} else {
		err = yaml.Unmarshal(b, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &f.Nixie, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(File{Nixie: *c})
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
