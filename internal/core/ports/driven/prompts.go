package driven

// PromptStore provides access to LLM prompt templates.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload clears any cached prompts.
	Reload()
}

// Well-known prompt names.
const (
	// PromptAnswer is the retrieval-augmented answer template.
	// It must contain both PlaceholderQuestion and PlaceholderDocuments.
	PromptAnswer = "answer"
)

// Answer template placeholders.
const (
	PlaceholderQuestion  = "{question}"
	PlaceholderDocuments = "{documents}"
)

// DefaultAnswerPrompt is the built-in answer template.
const DefaultAnswerPrompt = `Use the following documents to answer the question accurately.
Do not mention the source explicitly; respond as if the knowledge is yours.
Keep the answer concise, less than ~150 words.
If you can't find the answer in the documents, just say that you don't know.
Question: {question}
Documents: {documents}`
