// Package combat holds the combatant variants and the selection service that
// remembers which one is active.
//
// The variants are plain values: a Ninja (stealth 10, power 5) and a Samurai
// (stealth 5, power 10), both carrying the same Katana. Service stores the
// chosen variant's identifier in a storage.Store and maps it back to a
// variant on every GetCombatant call.
package combat
