package main

import (
	"strings"
	"sync"

	"sitch/internal/config"
)

// commandContext resolves the config path and loads the config once,
// shared by every subcommand.
type commandContext struct {
	configFlag *string

	once sync.Once
	path string
	cfg  *config.Config
	err  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

// ensureConfig loads the config file named by -c, or the default one,
// on first call.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.once.Do(func() {
		path := ""
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		if path == "" {
			path, c.err = config.DefaultPath()
			if c.err != nil {
				return
			}
		}
		c.path = path
		c.cfg, c.err = config.Load(path)
	})
	return c.cfg, c.err
}

// save persists the loaded config back to where it came from.
func (c *commandContext) save() error {
	return c.cfg.Save(c.path)
}
