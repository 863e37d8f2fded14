// Package file provides filesystem-backed adapters for settings and
// prompt templates.
//
// Adapters:
//   - ConfigStore: TOML settings file, read as dot-keys
//   - PromptStore: editable prompt templates with built-in fallbacks
package file
