// Command scholarai is the ScholarAI command line.
package main

import (
	"os"

	"github.com/turtacn/ScholarAI/internal/interfaces/cli"
)

func main() {
	os.Exit(cli.Main())
}

//Personal.AI order the ending
