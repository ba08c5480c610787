// Package resolver turns a classified lookup into a stored translation. It
// answers from the cache when it can, asks the translation provider when
// the word is new or a refresh was requested, and writes the result back so
// every literal word maps to exactly one record.
package resolver
