package main

import "github.com/opentransit/transitboard/internal/cmd"

func main() {
	cmd.Execute()
}
