// Package cpu implements the AN/FSQ-7 central computer and its assembler.
//
// The CPU holds a 32-bit accumulator of two one's-complement fractional
// halves, four 16-bit index registers, a program counter with a bank
// selector, and a real-time clock advanced by the host. Instructions
// execute in a fetch-decode-dispatch cycle over two fixed memory banks.
// Subroutine linkage stores a single return address at the entry point;
// there is no call stack, so reentering an active subroutine corrupts
// the stored return address exactly as the hardware did.
//
// The assembler is a two-pass translator for the instruction set with
// labels, equates, and compile-time $(...) expression evaluation.
package cpu
