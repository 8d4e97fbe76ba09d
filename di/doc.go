// Package di provides small, explicit dependency wiring helpers.
//
// Two pieces live here:
//
//   - Service[T] + Injector[T]: wire a constructed value by hand, recording every
//     injected dependency in a bag (Deps) that tests can inspect. Wiring mistakes
//     (duplicate keys, nil dependencies, nil bind functions) come back as typed errors.
//
//   - Container: a key -> factory table. Values are bound as constants, as
//     factories (transient or singleton), or as derived bindings computed from
//     another key. Derived bindings chain, and transient ones are recomputed on
//     every Resolve, so they always reflect current state.
//
// Neither piece constructs objects through reflection. The composition root
// (see package app) still decides what gets built and how it is connected.
//
// Import
//
//	"github.com/sghaida/dojo/di"
package di
