package main

import (
	"fmt"
)

type ConfigSetCmd struct {
	Config string `arg:"" help:"Configuration name to change (p4.exe, svn.exe, runner.timeout, import.workers)."`
	Value  string `arg:"" optional:"" help:"Configuration value to set. Empty removes it."`
}

func (c *ConfigSetCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	changed, err := ws.SetGlobalConfig(c.Config, c.Value)
	if err != nil {
		return err
	}

	if changed {
		fmt.Printf("Set '%v' = '%v'\n", c.Config, c.Value)
	}
	return nil
}

type ConfigListCmd struct {
}

func (c *ConfigListCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	cfg, err := ws.ListGlobalConfig()
	if err != nil {
		return err
	}

	for _, k := range sortedKeys(cfg) {
		fmt.Printf("%v = %v\n", k, cfg[k])
	}
	return nil
}
