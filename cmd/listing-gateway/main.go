// Package main is the entry point for the ebay-listing-gateway server.
package main

import (
	"os"

	"github.com/donaldgifford/ebay-listing-gateway/cmd/listing-gateway/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
