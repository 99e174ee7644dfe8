// Package all imports the built-in facet extensions.
// Import this package to register all built-in commands.
package all

import (
	_ "github.com/jpl-au/facet/extension/catalog"
	_ "github.com/jpl-au/facet/extension/core"
	_ "github.com/jpl-au/facet/extension/search"
)
