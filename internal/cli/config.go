package cli

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scenedoc/pkg/doc"
	errs "github.com/matzehuels/scenedoc/pkg/errors"
	"github.com/matzehuels/scenedoc/pkg/pipeline"
	"github.com/matzehuels/scenedoc/pkg/render/outline"
)

// Config is the CLI configuration file:
//
//	format   = "yaml"
//	no_cache = false
//
//	[create]
//	default_size  = 100
//	min_size      = 0.01
//	default_fonts = [{ family = "Inter", style = "Regular" }]
//	fonts         = [{ family = "Brand", style = "Bold" }]
//	all_fonts     = false
//
//	[outline]
//	direction = "LR"
//	max_depth = 3
//	detailed  = true
type Config struct {
	Format  string        `toml:"format"`
	NoCache bool          `toml:"no_cache"`
	Create  CreateConfig  `toml:"create"`
	Outline OutlineConfig `toml:"outline"`
}

// CreateConfig holds creation defaults.
type CreateConfig struct {
	DefaultSize  float64        `toml:"default_size"`
	MinSize      float64        `toml:"min_size"`
	DefaultFonts []doc.FontName `toml:"default_fonts"`
	Fonts        []doc.FontName `toml:"fonts"`
	AllFonts     bool           `toml:"all_fonts"`
}

// OutlineConfig holds outline defaults.
type OutlineConfig struct {
	Direction string `toml:"direction"`
	MaxDepth  int    `toml:"max_depth"`
	Detailed  bool   `toml:"detailed"`
}

// readConfig decodes a config file. A missing file is an error only when
// required is set.
func readConfig(path string, required bool) (Config, []string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return Config{}, nil, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse config %s", path)
	}

	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	if cfg.Format != "" {
		if _, err := doc.ParseFormat(cfg.Format); err != nil {
			return Config{}, nil, err
		}
	}
	return cfg, unknown, nil
}

// loadConfig reads --config, or the default file if it exists.
func (c *CLI) loadConfig() error {
	path, required := c.configPath, c.configPath != ""
	if !required {
		var err error
		if path, err = configFile(); err != nil {
			return nil
		}
	}
	cfg, unknown, err := readConfig(path, required)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		c.Logger.Warn("unknown config keys", "file", path, "keys", strings.Join(unknown, ", "))
	}
	c.Config = cfg
	return nil
}

// options builds pipeline options from the config. Flags override the
// result afterwards.
func (cfg Config) options() pipeline.Options {
	opts := pipeline.Options{
		DefaultFonts: cfg.Create.DefaultFonts,
		DefaultSize:  cfg.Create.DefaultSize,
		MinSize:      cfg.Create.MinSize,
		Fonts:        cfg.Create.Fonts,
		AllFonts:     cfg.Create.AllFonts,
	}
	if f, err := doc.ParseFormat(cfg.Format); err == nil {
		opts.Format = f
	}
	return opts
}

// outlineOptions builds outline options from the config.
func (cfg Config) outlineOptions() outline.Options {
	return outline.Options{
		Direction: cfg.Outline.Direction,
		MaxDepth:  cfg.Outline.MaxDepth,
		Detailed:  cfg.Outline.Detailed,
	}
}

// parseFonts parses "Family:Style" flag values.
func parseFonts(values []string) ([]doc.FontName, error) {
	fonts := make([]doc.FontName, 0, len(values))
	for _, v := range values {
		family, style, ok := strings.Cut(v, ":")
		if !ok {
			style = "Regular"
		}
		f := doc.FontName{Family: strings.TrimSpace(family), Style: strings.TrimSpace(style)}
		if err := errs.ValidateFontName(f.Family, f.Style); err != nil {
			return nil, err
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}
