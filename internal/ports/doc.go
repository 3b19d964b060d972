// Package ports defines the interfaces that connect the feed builder to the
// outside world.
//
// # Port Interfaces
//
//   - [Directory]: lists a directory in raw order and inspects its files
//
// The builder (internal/feed) depends only on these interfaces. The file
// system adapter (internal/adapters/fs) implements them for the host OS, and
// tests substitute in-memory fakes so creation times and listing order can be
// controlled.
package ports
