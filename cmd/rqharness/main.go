package main

import (
	"rqharness/cmd/rqharness/cmd"
)

func main() {
	cmd.Execute()
}
