// Package log provides the logging abstraction used by dirfeed components.
//
// Library packages accept a [Logger] so they can be embedded without pulling
// a particular logging setup along. The CLI wires the zerolog adapter; tests
// use the no-op logger.
//
//	logger := log.NewZerologAdapterWithLogger(zerolog.New(os.Stderr))
//	logger.Info("feed built", log.Int("items", 12))
package log
