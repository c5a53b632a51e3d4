// Package statsview serves live runtime charts (heap, goroutines, GC) over
// HTTP while the emulator runs. It is only compiled in with the statsview
// build tag; otherwise Launch is a no-op and Available reports false.
package statsview
