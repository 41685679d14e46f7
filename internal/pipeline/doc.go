// Package pipeline runs vision filters in dependency order, one frame at a time.
//
// A Filter reports a stable name, the number of inputs it expects and a
// single synchronous processing step. A Runner holds an ordered list of
// stages; every stage names the earlier stages whose outputs it consumes.
// Step runs every stage once, feeding each Filter the outputs of its
// dependencies in declaration order.
//
// # Error Handling
//
// Stage registration fails with ErrUnknownStage when a dependency has not
// been registered yet and with ErrDependencyCount when the number of declared
// dependencies disagrees with the filter's expectation. Errors returned by a
// filter abort the step and are wrapped with the stage name.
package pipeline
