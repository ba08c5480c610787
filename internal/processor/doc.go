// Package processor contains the command-level logic of ws. It turns raw
// user input into lookups, drives the resolver, renders records and runs
// the cache management commands (list, delete, export). Batch files are
// resolved with a bounded pool of workers.
package processor
