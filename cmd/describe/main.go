package main

import (
	"os"

	"github.com/atotto/clipboard"

	"github.com/yanqian/part-describer/internal/interface/cli"
	"github.com/yanqian/part-describer/pkg/logger"
)

func main() {
	cmd := cli.NewCommand(os.Stdin, os.Stdout, clipboard.WriteAll, logger.NewTo(os.Stderr))
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
