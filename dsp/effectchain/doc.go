// Package effectchain runs the engine's fixed set of effect modules.
//
// A Chain owns one instance of every module, keyed by id. Effect modules run
// in place in a reorderable order; generator modules render into a scratch
// buffer that is mixed in before or after the effects. Every module reads its
// parameters from a param.Store through a modmatrix.Matrix, so the single
// Amount macro can drive any parameter.
//
// Per block the chain advances the macro smoother, renders generators, runs
// the enabled effects, blends the result against a copy of the block's input
// using the global mix, and applies the pop guard fade when armed.
package effectchain
