// Package said derives and verifies self-addressing identifiers (SAIDs).
//
// A SAID is a digest embedded in the very mapping it was computed over. The
// derivation follows the KERI saidify procedure:
//
//  1. The digest entry is replaced by a dummy string of '#' characters as
//     long as the final qb64 digest (44 characters for every code here).
//  2. The mapping is serialized as compact JSON in insertion order.
//  3. The serialization is hashed with the algorithm named by the derivation
//     code and the raw digest is encoded as CESR qb64.
//  4. The dummy is replaced by the qb64 digest.
//
// Verification repeats steps 1-3 on a completed mapping and compares.
//
// # Derivation Codes
//
//	E  Blake3-256 (default)
//	F  Blake2b-256
//	G  Blake2s-256
//	H  SHA3-256
//	I  SHA2-256
//
// Serialization matches JavaScript JSON.stringify so digests agree with
// signify-ts and keripy: no HTML escaping, U+2028 and U+2029 are emitted
// literally, and non-ASCII text is not escaped.
package said
