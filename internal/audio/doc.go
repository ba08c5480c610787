// Package audio generates spoken pronunciations of cached words with
// OpenAI text-to-speech.
package audio
