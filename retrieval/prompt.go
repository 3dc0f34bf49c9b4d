package retrieval

import "fmt"

// answerPromptTemplate frames the model as the firm's assistant. The
// instruction to fall back to scheduling a consultation is what keeps
// answers honest when the corpus has nothing relevant.
const answerPromptTemplate = "You are a professional, helpful AI assistant for a solo practice law firm. " +
	"Your tone should be trustworthy and modern. " +
	"Answer the user's question based on the following context. " +
	"If the context does not contain the answer, state that you do not have enough information but can schedule a consultation. " +
	"Do not mention that you are using 'context'.\n\n" +
	"Context:\n%s\n\n" +
	"Question:\n%s\n\n" +
	"Answer:"

// emptyContextNotice stands in for the context when retrieval found
// nothing, steering the model toward the no-information response instead
// of letting it improvise.
const emptyContextNotice = "No information is available for this question."

// BuildPrompt assembles the generation prompt from retrieved context and
// the user's question.
func BuildPrompt(contextText, question string) string {
	if contextText == "" {
		contextText = emptyContextNotice
	}
	return fmt.Sprintf(answerPromptTemplate, contextText, question)
}
