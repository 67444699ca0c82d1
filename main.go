package main

import (
	"os"

	"github.com/connwatch/connwatch/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
