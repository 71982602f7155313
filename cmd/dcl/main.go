package main

import (
	"os"

	"github.com/viant/dcl/cmd/dcl/internal/command"
)

func main() {
	os.Exit(command.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
