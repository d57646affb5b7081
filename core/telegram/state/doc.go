// Package state tracks per-user conversation state for Telegram bots.
// It is intentionally domain-agnostic so it can be reused across bots:
// callers define their own State values and payload structs, and plug in
// a Store implementation for durability.
package state
