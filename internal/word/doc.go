// Package word defines the cached unit of knowledge: a translated word
// together with the sentence and target language it was last resolved for.
package word
