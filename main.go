// Package main is the entry point for the afcharts CLI.
package main

import (
	"github.com/afcharts/afcharts/cmd"
	"github.com/afcharts/afcharts/config"
	"github.com/afcharts/afcharts/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
