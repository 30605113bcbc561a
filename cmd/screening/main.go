package main

import (
	"os"

	"github.com/AkkiPaul2000/Screening-Ontology/cmd/screening/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
