// Package persist defines the durable session store consumed by the
// reconciler: a two-slot, string-keyed key-value contract modelled on browser
// local storage, with a JSON wire format and a schema-versioned backup record.
//
// # Slots
//
//   - [SlotUser] — the last known identity snapshot.
//   - [SlotBackup] — a time-boxed reload bridge ({user, timestamp,
//     authenticated}); stale after five minutes and ignored by the reconciler.
//
// # Architecture boundaries
//
// Backends (filestore, memstore, redisstore) implement [Store] as an opaque
// byte-value KV and know nothing about record shapes. Encoding, decoding, and
// corruption detection live here, so every backend persists byte-identical
// records.
//
// Store implementations are safe for concurrent use within one process, but
// the contract assumes a single writer overall (one console per store). Cross
// process coordination is explicitly out of scope.
package persist
