// Package store provides a SQLite-backed ledger of issued vLEI credential
// attribute blocks.
//
// Each row holds one digested block, keyed by its SAID, with:
//   - variant: the schema the block was built against
//   - code: the derivation code of the SAID (first character)
//   - sad: the block as ordered compact JSON, byte-for-byte what was digested
//   - seq: a logical clock assigned at insert
//
// # Invariants
//
// Idempotency
//   - Put uses ON CONFLICT(said) DO NOTHING; storing the same block twice
//     keeps the first row and its seq
//
// Deterministic Query Results
//   - All listings use ORDER BY seq ASC, said COLLATE BINARY ASC
//   - seq is logical, never a timestamp
//
// Stored blocks are not trusted on the way out: Load re-verifies the SAID
// through credential.Parse before returning a typed record.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
