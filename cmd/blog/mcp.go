package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-blog"
)

var errMCPDisabled = errors.New("mcp server disabled by features.mcp")

func (app *cli) mcpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the article tools over MCP stdio",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			enabled := true
			// stdout carries the protocol, toolModule keeps logs on stderr.
			module, err := app.toolModule(func(cfg *blog.Config) {
				enabled = cfg.Features.MCP
			})
			if err != nil {
				return err
			}
			defer module.Close()

			if !enabled {
				return errMCPDisabled
			}
			srv, err := module.MCP()
			if err != nil {
				return err
			}
			return srv.ServeStdio()
		},
	}
}
