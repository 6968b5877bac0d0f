// Package result defines the structured values produced by completed
// derivations and the synthesizer that folds a derivation trace into one.
//
// A Value is either a primitive (held as a cty.Value) or an ordered mapping
// from result keys to nested Values. Mappings preserve declaration order;
// setting a key that already exists overwrites the value but keeps the
// original position.
//
// The synthesizer consumes the flat event trace recorded by the derivation
// engine and folds it bottom-up: sequence scopes merge the keyed
// contributions of their children, argument scopes wrap their child's value
// under a key, and plain values attach to the innermost open scope.
package result
