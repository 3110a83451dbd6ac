// Package config provides the option store of vimode.
//
// Options are read-only to the mode engine. They come from defaults, an
// optional TOML or YAML file, VIMODE_* environment variables and ":set"
// commands, in that order. The Store hands out immutable snapshots and can
// be reloaded while sessions read it; Watch reloads it when the file
// changes on disk.
//
// Example file (vimode.toml):
//
//	selectmode = "cmd,key"
//	octopushandler = true
//	tabstop = 4
//	loglevel = "debug"
package config
