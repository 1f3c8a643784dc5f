// Parses flags and dispatches the quarry subcommands.
//
// The CLI is a thin orchestrator over the recipe lifecycle:
//
//	build      Run the full lifecycle for a recipe file.
//	fetch      Acquire and extract the upstream source only.
//	describe   List the artifacts in an existing staging location.
//	version    Show version information.
//
// Global flags (-q, -d) override build-time defaults set via linker flags.
// After parsing, the global logger is reconfigured to reflect the final
// level before the command runs.
package cli
