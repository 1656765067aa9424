// Package main is the entry point for the seriesgenius application.
package main

import (
	"github.com/samber/lo"
	"github.com/seriesgenius/seriesgenius/cmd"
	"github.com/seriesgenius/seriesgenius/config"
	"github.com/seriesgenius/seriesgenius/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
