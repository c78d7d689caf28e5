package main

import (
	"os"

	"github.com/bianoble/replicheck/cmd/replicheck/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
