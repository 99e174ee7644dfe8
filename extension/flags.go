// flags.go names the CLI flags shared by extension commands.
//
// Constants follow Flag<PascalCaseName> for the kebab-case flag name
// (e.g. "ids-only" -> FlagIDsOnly).

package extension

const (
	// Boolean flags

	FlagCount         = "count"          // Print the match count only
	FlagDryRun        = "dry-run"        // Preview without making changes
	FlagGlobal        = "global"         // Use global scope
	FlagIDsOnly       = "ids-only"       // Print entry ids only
	FlagIncludeHidden = "include-hidden" // Include hidden files/dirs
	FlagLocal         = "local"          // Use local scope (gitignored)
	FlagLong          = "long"           // Long format output
	FlagNamespaces    = "namespaces"     // List namespaces instead of entries
	FlagNoColour      = "no-colour"      // Disable ANSI colour
	FlagNoPrefilter   = "no-prefilter"   // Scan without the literal prefilter
	FlagRaw           = "raw"            // Raw output without markdown rendering
	FlagReplace       = "replace"        // Overwrite entries whose id exists
	FlagShare         = "share"          // Mark as shared (not gitignored)
	FlagTree          = "tree"           // Tree output

	// String flags

	FlagDelete    = "delete"         // Delete by name
	FlagFormat    = "format"         // File format (yaml, json)
	FlagName      = "name"           // Display name
	FlagNamespace = "namespace"      // Restrict to one namespace
	FlagNSName    = "namespace-name" // Human readable namespace name
	FlagQuery     = "query"          // Filter by query
	FlagSaved     = "saved"          // Run a saved query by name
	FlagTag       = "tag"            // Tag (repeatable)
	FlagTooltip   = "tooltip"        // Tooltip line (repeatable)

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
