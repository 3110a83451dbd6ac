package config

import (
	"fmt"
	"slices"
	"strings"
)

// Select mode triggers accepted by the selectmode option.
const (
	SelectModeMouse = "mouse"
	SelectModeKey   = "key"
	SelectModeCmd   = "cmd"
)

// Options is an immutable snapshot of the options.
type Options struct {
	// SelectMode lists when select mode is used instead of visual mode.
	// With "cmd", v, V and CTRL-V start select mode.
	SelectMode []string

	// OctopusHandler makes Enter in select mode run once per caret instead
	// of once through the editor-wide handler.
	OctopusHandler bool

	// TabWidth is the display width of a tab.
	TabWidth int

	// LogLevel is the zap level name used by the CLI.
	LogLevel string
}

// Default returns the default options.
func Default() Options {
	return Options{
		TabWidth: 8,
		LogLevel: "info",
	}
}

// HasSelectMode reports whether selectmode contains v.
func (o Options) HasSelectMode(v string) bool {
	return slices.Contains(o.SelectMode, v)
}

// Clone returns a deep copy.
func (o Options) Clone() Options {
	o.SelectMode = slices.Clone(o.SelectMode)
	return o
}

// Validate checks every option value.
func (o Options) Validate() error {
	for _, v := range o.SelectMode {
		switch v {
		case SelectModeMouse, SelectModeKey, SelectModeCmd:
		default:
			return fmt.Errorf("%w: selectmode=%s", ErrInvalidValue, v)
		}
	}
	if o.TabWidth < 1 || o.TabWidth > 32 {
		return fmt.Errorf("%w: tabstop=%d", ErrInvalidValue, o.TabWidth)
	}
	return nil
}

// String renders the options in ":set" form.
func (o Options) String() string {
	octopus := "nooctopushandler"
	if o.OctopusHandler {
		octopus = "octopushandler"
	}
	return fmt.Sprintf("selectmode=%s %s tabstop=%d", strings.Join(o.SelectMode, ","), octopus, o.TabWidth)
}

// parseSelectMode splits a comma list, dropping empty items and duplicates.
func parseSelectMode(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
