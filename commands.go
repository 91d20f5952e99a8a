package main

import (
	"github.com/hashicorp/cli"

	"github.com/hashicorp/terraform-module-check/internal/command"
	"github.com/hashicorp/terraform-module-check/version"
)

// initCommands returns the factories for all of the CLI's subcommands,
// each sharing the given meta-options.
func initCommands(meta command.Meta) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"init": func() (cli.Command, error) {
			return &command.InitCommand{
				Meta: meta,
			}, nil
		},

		"show": func() (cli.Command, error) {
			return &command.ShowCommand{
				Meta: meta,
			}, nil
		},

		"validate": func() (cli.Command, error) {
			return &command.ValidateCommand{
				Meta: meta,
			}, nil
		},

		"version": func() (cli.Command, error) {
			return &command.VersionCommand{
				Meta:              meta,
				Version:           version.Version,
				VersionPrerelease: version.Prerelease,
			}, nil
		},
	}
}
