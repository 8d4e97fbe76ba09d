// Package dojo wires a small combatant graph with explicit dependency
// injection and resolves the active combatant through chained bindings.
//
// Layout:
//   - di: Service/Injector wiring helpers and a key -> factory Container
//   - combat: Katana, Ninja, Samurai and the selection service
//   - storage: key/value stores (memory, SQLite)
//   - config, logging: environment config (caarlos0/env) and zap loggers
//   - app: the composition root
//   - cmd/dojo: the command line entry point
package dojo
