package main

import (
	"fmt"
	"os"

	"gazette/service"
)

var exit = os.Exit

func main() {
	if err := service.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
