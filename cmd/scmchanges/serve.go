package main

import (
	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/server"
	"github.com/pescuma/scmchanges/lib/storages"
)

type ServeCmd struct {
	Port uint `default:"2427" help:"Port to listen to."`
}

func (c *ServeCmd) Run(ctx *context) error {
	ws, err := ctx.workspace()
	if err != nil {
		return err
	}

	return ws.Execute(func(console consoles.Console, storage storages.Storage) error {
		return server.Run(console, storage, &server.Options{
			Port: c.Port,
		})
	})
}
