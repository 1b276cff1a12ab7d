package main

import (
	"os"

	"gpsidecar/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
