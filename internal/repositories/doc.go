// Package repositories implements server-side persistence for browser sessions.
//
// Both repositories satisfy the scs Store interfaces, so the session manager can swap them
// for its in-memory store without changing any handler code. They only ever see the encoded
// session payload: the token values inside are sealed by the session codec before they get here.
//
// Key Implementations:
//   - [SessionRepository] : SQLite table keyed by session token, expiry stored as a julian day
//   - [RedisSessionRepository] : Redis keys under a fixed prefix, expiry handled by key TTL
//
// Expired SQLite rows are filtered on read and purged by a background sweep started with
// [SessionRepository.StartCleanup]. Redis needs no sweep.
package repositories
