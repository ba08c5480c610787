// Package translation talks to the language-model providers that produce
// fresh translations: OpenAI chat completions and Google Gemini. Providers
// share one interface and can be stacked behind a circuit breaker and a
// fallback provider.
package translation
