package main

import (
	"os"

	"github.com/iksnae/hiitbeep/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
