// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Application configuration structures.

package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/evolution-gaming/vqmchart/internal/analysis"
	"github.com/evolution-gaming/vqmchart/internal/logging"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Default configuration values.
const (
	defaultOutDir          = "."
	defaultImageWidth      = 800
	defaultImageHeight     = 600
	defaultTermWidth       = 80
	defaultTermHeight      = 40
	defaultPaletteOverflow = analysis.OverflowWrap
)

// Config represent application configuration.
type Config struct {
	OutDir          ConfigVal[string]   `json:"out_dir" yaml:"out_dir"`
	ImageWidth      ConfigVal[int]      `json:"image_width" yaml:"image_width"`
	ImageHeight     ConfigVal[int]      `json:"image_height" yaml:"image_height"`
	TermWidth       ConfigVal[int]      `json:"term_width" yaml:"term_width"`
	TermHeight      ConfigVal[int]      `json:"term_height" yaml:"term_height"`
	Palette         ConfigVal[[]string] `json:"palette" yaml:"palette"`
	PaletteOverflow ConfigVal[string]   `json:"palette_overflow" yaml:"palette_overflow"`
	ReportFileName  ConfigVal[string]   `json:"report_file_name" yaml:"report_file_name"`
}

// Verify will check that configuration is valid.
//
// Will check that configuration option values are sensible.
func (c *Config) Verify() error {
	msgs := []string{}
	if c.OutDir.Value() == "" {
		msgs = append(msgs, "empty output directory")
	}
	if c.ImageWidth.Value() <= 0 || c.ImageHeight.Value() <= 0 {
		msgs = append(msgs, fmt.Sprintf("invalid image size %dx%d", c.ImageWidth.Value(), c.ImageHeight.Value()))
	}
	if c.TermWidth.Value() <= 0 || c.TermHeight.Value() <= 0 {
		msgs = append(msgs, fmt.Sprintf("invalid terminal chart size %dx%d", c.TermWidth.Value(), c.TermHeight.Value()))
	}
	if _, err := c.NewPalette(); err != nil {
		msgs = append(msgs, err.Error())
	}

	if len(msgs) != 0 {
		return fmt.Errorf("%s: %w", strings.Join(msgs, ", "), ErrInvalidConfig)
	}
	return nil
}

// NewPalette creates series color palette from palette options.
func (c *Config) NewPalette() (*analysis.Palette, error) {
	overflow, err := analysis.ParseOverflowPolicy(c.PaletteOverflow.Value())
	if err != nil {
		return nil, err
	}
	return analysis.NewPalette(c.Palette.Value(), overflow)
}

// OverrideFrom will overwrite fields from given Config object.
//
// Only fields that are "not-nil" (as per IsNil() method) in src Config object will be
// overwritten.
func (c *Config) OverrideFrom(src Config) {
	if !src.OutDir.IsNil() {
		c.OutDir = src.OutDir
	}
	if !src.ImageWidth.IsNil() {
		c.ImageWidth = src.ImageWidth
	}
	if !src.ImageHeight.IsNil() {
		c.ImageHeight = src.ImageHeight
	}
	if !src.TermWidth.IsNil() {
		c.TermWidth = src.TermWidth
	}
	if !src.TermHeight.IsNil() {
		c.TermHeight = src.TermHeight
	}
	if !src.Palette.IsNil() {
		c.Palette = src.Palette
	}
	if !src.PaletteOverflow.IsNil() {
		c.PaletteOverflow = src.PaletteOverflow
	}
	if !src.ReportFileName.IsNil() {
		c.ReportFileName = src.ReportFileName
	}
}

// defaultConfig will create a default configuration.
func defaultConfig() Config {
	palette := make([]string, len(analysis.DefaultPalette))
	copy(palette, analysis.DefaultPalette)

	return Config{
		OutDir:          NewConfigVal(defaultOutDir),
		ImageWidth:      NewConfigVal(defaultImageWidth),
		ImageHeight:     NewConfigVal(defaultImageHeight),
		TermWidth:       NewConfigVal(defaultTermWidth),
		TermHeight:      NewConfigVal(defaultTermHeight),
		Palette:         NewConfigVal(palette),
		PaletteOverflow: NewConfigVal(string(defaultPaletteOverflow)),
		ReportFileName:  NewConfigVal(""),
	}
}

// loadConfigFromFile will load configuration from file.
//
// JSON and YAML are supported, format is chosen by file extension.
func loadConfigFromFile(f string) (cfg Config, err error) {
	fileExt := strings.ToLower(filepath.Ext(f))
	switch fileExt {
	case ".json":
		return loadJSON(f)
	case ".yaml", ".yml":
		return loadYAML(f)
	default:
		return cfg, fmt.Errorf("unknown config format: %s", fileExt)
	}
}

// LoadConfig will return merged default config and config from file. This is main
// function to use for config loading. Configuration file is optional e.g. can be "".
func LoadConfig(configFile string) (cfg Config, err error) {
	cfg = defaultConfig()

	// Load configuration from file and override default configuration options.
	if configFile != "" {
		c, err := loadConfigFromFile(configFile)
		if err != nil {
			return cfg, err
		}
		// Configuration file can specify full set or partial set of configuration
		// options. So we only want to override those options that have been specified in
		// config file, rest will remain as per default config.
		cfg.OverrideFrom(c)
	}

	return cfg, nil
}

func loadJSON(f string) (cfg Config, err error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return cfg, fmt.Errorf("config from JSON file: %w", err)
	}

	if len(b) == 0 {
		return cfg, fmt.Errorf("JSON file is empty: %w", ErrInvalidConfig)
	}

	if err = json.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config from JSON document: %w", err)
	}

	return cfg, nil
}

func loadYAML(f string) (cfg Config, err error) {
	b, err := os.ReadFile(f)
	if err != nil {
		return cfg, fmt.Errorf("config from YAML file: %w", err)
	}

	if len(b) == 0 {
		return cfg, fmt.Errorf("YAML file is empty: %w", ErrInvalidConfig)
	}

	if err = yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config from YAML document: %w", err)
	}

	return cfg, nil
}

// In order to support Config overriding we have to implement wrapper type for Config
// fields. Otherwise it is hard to distinguish skipped fields, for instance when loading
// partial configuration from file: in that case it would be impossible to  distinguish
// between say string fields zero value and empty string values as explicitly specified in
// configuration file.

// NewConfigVal is constructor for ConfigVal. It will wrap its argument into ConfigVal.
func NewConfigVal[T any](v T) ConfigVal[T] {
	return ConfigVal[T]{v: &v}
}

// ConfigVal is a wrapper for Config field value.
type ConfigVal[T any] struct {
	// Store wrapped value as pointer in order to have ability to distinguish between
	// unspecified ConfigVal and a value that is the same as zero value for wrapped type.
	// In this case a zero value for pointer is nil.
	v *T
}

// Value will return wrapped value.
//
// In case field has not been defined e.g. is zero value, then appropriate zero value of
// wrapped type will be returned.
func (o *ConfigVal[T]) Value() T {
	if o.IsNil() {
		var v T
		return v
	}
	return *o.v
}

// IsNil check if wrapped value is nil.
func (o *ConfigVal[T]) IsNil() bool {
	return o.v == nil
}

// UnmarshalJSON implements json.Unmarshaler interface for ConfigVal.
func (o *ConfigVal[T]) UnmarshalJSON(b []byte) error {
	var val T
	err := json.Unmarshal(b, &val)
	if err != nil {
		return err
	}
	o.v = &val
	return nil
}

// MarshalJSON implements json.Marshaler interface for ConfigVal.
func (o ConfigVal[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value())
}

// UnmarshalYAML implements yaml.Unmarshaler interface for ConfigVal.
//
// YAML null leaves ConfigVal unspecified.
func (o *ConfigVal[T]) UnmarshalYAML(node *yaml.Node) error {
	var val T
	if err := node.Decode(&val); err != nil {
		return err
	}
	o.v = &val
	return nil
}

// MarshalYAML implements yaml.Marshaler interface for ConfigVal.
func (o ConfigVal[T]) MarshalYAML() (interface{}, error) {
	return o.Value(), nil
}

func CreateDumpConfCommand() *DumpConfApp {
	longHelp := `Command "dump-conf" will print actual application configuration taking into account
configuration file provided and default configuration values.

Examples:

	vqmchart dump-conf
	vqmchart dump-conf -conf path/to/config.yaml -format yaml`

	app := &DumpConfApp{
		fs:  flag.NewFlagSet("dump-conf", flag.ContinueOnError),
		gf:  globalFlags{},
		out: os.Stdout,
	}
	app.gf.Register(app.fs)
	app.fs.StringVar(&app.flFormat, "format", "json", "Output format: json or yaml")
	app.fs.Usage = func() {
		printSubCommandUsage(longHelp, app.fs)
	}

	return app
}

// Make sure App implements Commander interface.
var _ Commander = (*DumpConfApp)(nil)

// DumpConfApp is subcommand application context that implements Commander interface.
// Although this is very simple application, but for consistency sake is is implemented in
// similar style as other subcommands.
type DumpConfApp struct {
	out      io.Writer
	fs       *flag.FlagSet
	gf       globalFlags
	flFormat string
}

func (d *DumpConfApp) Name() string {
	return d.fs.Name()
}

func (d *DumpConfApp) Help() {
	d.fs.Usage()
}

// Run is main entry point into DumpConfApp execution.
func (d *DumpConfApp) Run(args []string) error {
	if err := d.fs.Parse(args); err != nil {
		return &AppError{
			exitCode: 2,
			msg:      "usage error",
		}
	}

	if d.gf.Debug {
		logging.EnableDebugLogger()
	}

	// Load application configuration.
	cfg, err := LoadConfig(d.gf.ConfFile)
	if err != nil {
		return &AppError{exitCode: 1, msg: err.Error()}
	}
	logging.Debugf("Configuration loaded from %q", d.gf.ConfFile)

	switch d.flFormat {
	case "json":
		enc := json.NewEncoder(d.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return &AppError{exitCode: 1, msg: err.Error()}
		}
	case "yaml":
		enc := yaml.NewEncoder(d.out)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return &AppError{exitCode: 1, msg: err.Error()}
		}
		if err := enc.Close(); err != nil {
			return &AppError{exitCode: 1, msg: err.Error()}
		}
	default:
		d.Help()
		return &AppError{exitCode: 2, msg: fmt.Sprintf("unknown format %q", d.flFormat)}
	}

	// Also, report if configuration is valid.
	if err := cfg.Verify(); err != nil {
		return &AppError{exitCode: 1, msg: fmt.Sprintf("configuration validation: %s", err)}
	}

	return nil
}
