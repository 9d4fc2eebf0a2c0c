// Package program defines the instruction format emitted by the countdown
// solver for accepted arithmetic programs.
//
// A program is a run of fixed-width instructions ending in a Return. Each
// instruction is three bytes: an opcode and two arguments.
//
//	Value     card index          -    push cards[arg0]
//	Multiply  operand count n     mask combine n operands with × and ÷
//	Add       operand count n     mask combine n operands with + and −
//	Return    -                   -    pop one finished expression
//
// The mask is read least-significant bit first while the n operands are
// popped: bit i describes the i-th popped operand, 1 for a direct
// multiplicand or addend and 0 for a divisor or subtrahend.
//
// Buffers are a plain concatenation of programs with no length prefix. The
// package also provides the flat text form printed by the command-line
// solver and the one-byte packed form used by the template program table.
package program
