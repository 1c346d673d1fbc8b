package handlers

import "github.com/danielgtaylor/huma/v2"

const (
	apiTitle = "eBay Listing Gateway"
	apiDesc  = "Authenticated passthrough to eBay product search, item details, " +
		"and category suggestions, plus listing page analysis and scoring."
)

// NewAPIConfig returns the huma configuration shared by the server and
// handler tests. Response bodies are written exactly as the operations
// produce them, without the $schema link field huma adds by default.
func NewAPIConfig(version string) huma.Config {
	cfg := huma.DefaultConfig(apiTitle, version)
	cfg.Info.Description = apiDesc
	cfg.CreateHooks = nil
	return cfg
}
