// Package gemini implements the ai interfaces against the Google Generative
// Language API through langchaingo's googleai client.
//
// One client backs both the embedder and the generator; they share the
// credential and model configuration from ai.Config. Upstream failures are
// classified into the ai error taxonomy before being returned.
package gemini
