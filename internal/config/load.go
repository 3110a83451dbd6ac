package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables read by LoadEnv.
const EnvPrefix = "VIMODE_"

// fileOptions is the on-disk form. Absent keys keep the base value.
type fileOptions struct {
	SelectMode     *string `toml:"selectmode" yaml:"selectmode"`
	OctopusHandler *bool   `toml:"octopushandler" yaml:"octopushandler"`
	TabStop        *int    `toml:"tabstop" yaml:"tabstop"`
	LogLevel       *string `toml:"loglevel" yaml:"loglevel"`
}

func (f fileOptions) overlay(base Options) Options {
	if f.SelectMode != nil {
		base.SelectMode = parseSelectMode(*f.SelectMode)
	}
	if f.OctopusHandler != nil {
		base.OctopusHandler = *f.OctopusHandler
	}
	if f.TabStop != nil {
		base.TabWidth = *f.TabStop
	}
	if f.LogLevel != nil {
		base.LogLevel = *f.LogLevel
	}
	return base
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file over base.
func Load(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data, base)
}

// Parse decodes data in the format given by the extension of path.
func Parse(path string, data []byte, base Options) (Options, error) {
	var f fileOptions
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &f)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &f)
	default:
		return Options{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return Options{}, &ParseError{Path: path, Message: err.Error(), Err: err}
	}

	opts := f.overlay(base.Clone())
	if err := opts.Validate(); err != nil {
		return Options{}, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return opts, nil
}

// LoadEnv overlays VIMODE_SELECTMODE, VIMODE_OCTOPUSHANDLER,
// VIMODE_TABSTOP and VIMODE_LOGLEVEL on base.
func LoadEnv(base Options) (Options, error) {
	opts := base.Clone()
	if v, ok := os.LookupEnv(EnvPrefix + "SELECTMODE"); ok {
		opts.SelectMode = parseSelectMode(v)
	}
	if v, ok := os.LookupEnv(EnvPrefix + "OCTOPUSHANDLER"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Options{}, fmt.Errorf("%w: %sOCTOPUSHANDLER=%q", ErrInvalidValue, EnvPrefix, v)
		}
		opts.OctopusHandler = b
	}
	if v, ok := os.LookupEnv(EnvPrefix + "TABSTOP"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Options{}, fmt.Errorf("%w: %sTABSTOP=%q", ErrInvalidValue, EnvPrefix, v)
		}
		opts.TabWidth = n
	}
	if v, ok := os.LookupEnv(EnvPrefix + "LOGLEVEL"); ok {
		opts.LogLevel = v
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
