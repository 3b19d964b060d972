// Package domain contains the core entities of dirfeed.
//
// It has no dependencies on infrastructure concerns (network, file system,
// logging) and holds only the feed model and its ordering rules.
//
// # Entities
//
//   - [Entry]: one published file (an RSS item)
//   - [Feed]: the channel metadata plus its ordered entries
//   - [BuildStats]: counters describing a single directory scan
//
// A Feed is built once per process and never mutated afterwards.
package domain
