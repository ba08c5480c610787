// Package models lists the OpenAI models available to the configured API
// key so users can pick a value for openai.model.
package models
