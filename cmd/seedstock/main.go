package main

import (
	"github.com/pedigreehq/seedstock/internal/cli"
)

func main() {
	cli.Execute()
}
