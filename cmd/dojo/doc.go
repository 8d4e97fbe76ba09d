// Command dojo wires the combatant graph and exercises it.
//
// With no arguments it chooses the Ninja, resolves the current combatant,
// chooses the Samurai, resolves again, and prints one line per round:
//
//	Expected Ninja with power=5;stealth=10. Actual: power=5;stealth=10
//	Expected Samurai with power=10;stealth=5. Actual: power=10;stealth=5
//
// Subcommands:
//
//	dojo choose <ninja|samurai>   store a selection
//	dojo current                  print the active combatant
//
// The subcommands are only interesting with DOJO_STORE=sqlite, where the
// selection outlives the process.
//
// Environment:
//
//	DOJO_ENV          deployment label (default "local")
//	DOJO_LOG_LEVEL    debug|info|warn|error (default "warn"); logs go to stderr
//	DOJO_STORE        memory|sqlite (default "memory")
//	DOJO_SQLITE_PATH  database file for the sqlite store (default "dojo.db")
//	DOJO_TIMEOUT_MS   overall deadline per invocation (default 10000)
package main
