package search_test

import (
	"github.com/jpl-au/facet/internal/catalog"
	"github.com/jpl-au/facet/internal/search"
	"github.com/jpl-au/facet/internal/search/argument"
)

// fixture returns a small mixed catalog in a fixed order.
func fixture() []catalog.Entry {
	entries := []catalog.Entry{
		{ID: "minecraft:stick", Name: "Stick", NamespaceName: "Minecraft", Tooltip: []string{"Crafting material"}, Tags: []string{"c:rods/wooden"}},
		{ID: "minecraft:oak_planks", Name: "Oak Planks", NamespaceName: "Minecraft", Tooltip: []string{"Building block"}, Tags: []string{"minecraft:planks"}},
		{ID: "minecraft:diamond", Name: "Diamond", NamespaceName: "Minecraft", Tooltip: []string{"Shiny"}, Tags: []string{"c:gems/diamond"}},
		{ID: "create:andesite_alloy", Name: "Andesite Alloy", NamespaceName: "Create", Tooltip: []string{"Crafting material"}, Tags: []string{"c:ingots"}},
		{ID: "create:shaft", Name: "Shaft", NamespaceName: "Create", Tooltip: []string{"Kinetic component"}},
		{ID: "minecraft:oak_log", Name: "Oak Log", NamespaceName: "Minecraft", Tags: []string{"minecraft:logs"}},
	}
	for i := range entries {
		entries[i] = entries[i].Normalise()
	}
	return entries
}

// defaults returns a registry with the default matchers.
func defaults() *search.Registry {
	return argument.NewRegistry(nil)
}

// ids returns the identifiers of entries in order.
func ids(entries []catalog.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

// run parses and filters the fixture with the default matchers.
func run(query string) []string {
	return ids(search.Filter(fixture(), search.Parse(query, defaults())))
}
