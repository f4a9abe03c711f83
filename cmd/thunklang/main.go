package main

import (
	"os"

	"github.com/thunklang/thunklang/cmd/thunklang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
