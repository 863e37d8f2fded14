// Package normalisers provides implementations of the Normaliser interface,
// one sub-package per input kind. Each normaliser turns a path or URL into
// text, keeps a copy of the source in the workspace, writes the processed
// text next to it and reports the source identifier stored with every chunk.
package normalisers
