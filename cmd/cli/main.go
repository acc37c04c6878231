package main

import (
	"github.com/modelgrade/mgrade/pkg/cli"
)

func main() {
	cli.Execute()
}
