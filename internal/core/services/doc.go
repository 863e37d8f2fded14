// Package services implements the driving port interfaces.
//
// Services hold the retrieval pipeline: prefixing and embedding text,
// storing and querying records, running ingestion chunk by chunk, and
// assembling answer prompts. They reach infrastructure only through the
// driven ports.
package services
