// Package word implements the AN/FSQ-7 machine word.
//
// A word is 32 bits wide and holds two independent 16-bit halves, each a
// one's-complement fraction in [-1, +1) with a sign bit and 15 magnitude
// bits. Arithmetic operates on both halves in parallel; this is how the
// machine expresses coordinate-pair computation with a single instruction.
//
// Words are immutable values. Arithmetic returns new words and never
// mutates in place.
package word
