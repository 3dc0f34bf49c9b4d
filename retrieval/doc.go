// Package retrieval turns a user question into the context and prompt for
// answer generation.
//
// The retriever embeds the question, asks the store for the nearest chunks,
// and joins their texts into a single context block. BuildPrompt then wraps
// context and question in the firm's answer template. An empty corpus is not
// an error: the prompt carries an explicit no-information instruction and
// generation proceeds, so the assistant can still offer a consultation.
package retrieval
