// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and adapters implement them.
//
//   - EmbeddingService: turns text into vectors (Ollama, OpenAI)
//   - VectorStore: persists records and answers nearest-neighbour queries (chromem)
//   - LLMService: streams generated text (Ollama, OpenAI)
//   - Tokenizer: subword tokenisation for the chunker (tiktoken)
//   - Normaliser: converts one input kind into a Document
//   - DocumentConverter, TranscriptFetcher: black-box content extraction
//   - Workspace: the per-kind source/processed cache tree
//   - IngestionStore: the ingestion ledger (SQLite)
//   - ConfigStore, PromptStore: configuration and prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
