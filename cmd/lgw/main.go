// Package main is the entry point for the lgw CLI client.
package main

import (
	"github.com/donaldgifford/ebay-listing-gateway/cmd/lgw/cmd"
)

func main() {
	cmd.Execute()
}
