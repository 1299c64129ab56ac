// Package config holds the minibasic front-end settings.
package config

import (
	"time"

	"github.com/garyluck/minibasic/basic"
)

// Config is the root of minibasic.yaml.
type Config struct {
	Prompt      string      `yaml:"prompt"`
	History     bool        `yaml:"history"`      // keep a line editing history in the REPL
	Stats       bool        `yaml:"stats"`        // print statistics after each RUN
	InputPrompt bool        `yaml:"input_prompt"` // "? NAME = " before INPUT
	MaxSteps    int         `yaml:"max_steps"`    // 0 means unlimited
	Trace       TraceConfig `yaml:"trace"`
	Log         LogConfig   `yaml:"log"`
	Watch       WatchConfig `yaml:"watch"`
}

type TraceConfig struct {
	Vars bool     `yaml:"vars"`
	Exec bool     `yaml:"exec"`
	Only []string `yaml:"only"` // trace just these variables
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

func Defaults() *Config {

	return &Config{
		Prompt:  "% ",
		History: true,
		Log: LogConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
	}
}

// Options maps the interpreter related settings onto basic.Options.
func (c *Config) Options() basic.Options {

	opts := basic.Options{
		TraceVars:   c.Trace.Vars,
		TraceExec:   c.Trace.Exec,
		InputPrompt: c.InputPrompt,
		MaxSteps:    c.MaxSteps,
	}

	if len(c.Trace.Only) > 0 {
		opts.Traced = make(map[string]bool, len(c.Trace.Only))
		for _, name := range c.Trace.Only {
			opts.Traced[normalizeName(name)] = true
		}
	}

	return opts
}
