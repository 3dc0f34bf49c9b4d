// Package conversation implements the chat session that fronts the
// retrieval pipeline.
//
// A Conversation owns the transcript and a one-question-at-a-time gate:
// Submit rejects new questions while an answer is streaming. Answer text
// arrives incrementally, so a UI polling Transcript sees the reply grow
// token by token the way the model produced it. Failures never surface raw
// upstream errors in the transcript; they are logged and replaced with
// user-safe wording.
//
// PromptRotator is the small companion that cycles suggested questions
// through the input placeholder.
package conversation
