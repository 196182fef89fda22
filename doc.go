// Package dynamic provides bounded/dynamic data structures and
// variable-length hashing gadgets for gnark circuits.
//
// Circuits are statically sized: the shape of the constraint system is fixed
// before any witness exists. Real data (strings, byte buffers, structured
// records) has a length that is only known at proving time. This module
// provides a uniform answer: containers with a fixed maximum capacity and a
// constrained actual length, plus hashing constructions that reproduce, for
// any in-range length, the exact digest of the equivalent fixed-length
// message.
//
// The packages, leaves first:
//
//   - [github.com/zkdyn/gnark-dynamic/dynarray]: index-mask primitives,
//     fixed-capacity arrays and bounded/dynamic arrays of constrained values;
//   - [github.com/zkdyn/gnark-dynamic/internal/arith]: hinted integer
//     division and mixed-radix index splitting;
//   - [github.com/zkdyn/gnark-dynamic/permutation/sha2] and
//     [github.com/zkdyn/gnark-dynamic/permutation/sha512]: the SHA-2
//     compression functions over packed words;
//   - [github.com/zkdyn/gnark-dynamic/dynhash]: length-dependent padding,
//     block building and streaming compression for the SHA-2 and Keccak
//     families;
//   - [github.com/zkdyn/gnark-dynamic/split]: dividing one long hash
//     computation across several bounded proof sessions, linked by a running
//     commitment.
package dynamic
