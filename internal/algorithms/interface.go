package algorithms

import "rasterkit/internal/processing/filters"

// Factory builds a filter from a parameter map that already has every
// default filled in.
type Factory func(params Parameters) (filters.Filter, error)

// Definition is one registered filter name.
type Definition struct {
	Name        string
	Description string
	Defaults    map[string]interface{}
	Factory     Factory
}
