package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// optionNames maps accepted names, including abbreviations, to options.
var optionNames = map[string]string{
	"selectmode":     "selectmode",
	"slm":            "selectmode",
	"octopushandler": "octopushandler",
	"tabstop":        "tabstop",
	"ts":             "tabstop",
}

// ParseSet applies the arguments of a ":set" command to opts:
//
//	selectmode=cmd,key   selectmode+=cmd   selectmode-=cmd   selectmode=
//	octopushandler       nooctopushandler  invoctopushandler octopushandler!
//	tabstop=4
func ParseSet(opts Options, args string) (Options, error) {
	opts = opts.Clone()
	for _, arg := range strings.Fields(args) {
		if err := setOne(&opts, arg); err != nil {
			return Options{}, err
		}
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func setOne(opts *Options, arg string) error {
	name, op, value := arg, "", ""
	if i := strings.IndexAny(arg, "+-="); i >= 0 {
		name = arg[:i]
		switch {
		case strings.HasPrefix(arg[i:], "+="), strings.HasPrefix(arg[i:], "-="):
			op, value = arg[i:i+2], arg[i+2:]
		case arg[i] == '=':
			op, value = "=", arg[i+1:]
		default:
			return fmt.Errorf("%w: %s", ErrInvalidValue, arg)
		}
	}

	if op == "" {
		return setBool(opts, name)
	}
	switch optionNames[name] {
	case "selectmode":
		items := parseSelectMode(value)
		switch op {
		case "=":
			opts.SelectMode = items
		case "+=":
			for _, v := range items {
				if !slices.Contains(opts.SelectMode, v) {
					opts.SelectMode = append(opts.SelectMode, v)
				}
			}
		case "-=":
			opts.SelectMode = slices.DeleteFunc(opts.SelectMode, func(v string) bool {
				return slices.Contains(items, v)
			})
		}
		return nil
	case "tabstop":
		n, err := strconv.Atoi(value)
		if err != nil || op != "=" {
			return fmt.Errorf("%w: %s", ErrInvalidValue, arg)
		}
		opts.TabWidth = n
		return nil
	case "octopushandler":
		return fmt.Errorf("%w: %s is a boolean option", ErrInvalidValue, name)
	}
	return fmt.Errorf("%w: %s", ErrUnknownOption, name)
}

func setBool(opts *Options, name string) error {
	value := true
	switch {
	case strings.HasSuffix(name, "!"):
		name = strings.TrimSuffix(name, "!")
		value = !opts.OctopusHandler
	case strings.HasPrefix(name, "inv"):
		name = strings.TrimPrefix(name, "inv")
		value = !opts.OctopusHandler
	case strings.HasPrefix(name, "no"):
		name = strings.TrimPrefix(name, "no")
		value = false
	}
	if optionNames[name] != "octopushandler" {
		if _, ok := optionNames[name]; ok {
			return fmt.Errorf("%w: %s needs a value", ErrInvalidValue, name)
		}
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	opts.OctopusHandler = value
	return nil
}
