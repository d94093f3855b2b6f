// Command itinctl inspects and manages saved itineraries from the terminal.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/pkordes/itinerary-planner/backend/internal/cli"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
