// Package cache provides the two-tier TTL cache guarding expensive source
// fetches.
//
// Both tiers share one contract (Store): get, set with a per-entry TTL,
// delete, clear. The memory tier lives for the process lifetime; the file
// tier persists entries as one JSON file per key. Expiry is lazy on both
// tiers: a read past the expiration instant deletes the entry and behaves
// as a miss. Key features:
//   - SHA256 cache keys derived from canonical JSON of typed parameters,
//     so argument text can never alias another key
//   - Atomic file writes (temp file + rename) so concurrent readers never
//     observe a partially written entry
//   - A generic cache-aside helper (Fetch) that treats every cache failure
//     as a miss and falls through to the supplier
package cache
