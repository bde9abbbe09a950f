// Package rag prepares extracted text for retrieval-augmented generation.
//
// # Chunking
//
// A [Splitter] cuts text into overlapping chunks of at most ChunkSize
// characters, preferring to cut at a paragraph break, then a line break,
// then the end of a sentence, then a space, and only then mid-word:
//
//	s := rag.DefaultSplitter()
//	chunks := s.Chunks(text)
//
// Consecutive chunks share exactly Overlap characters, so dropping the
// first Overlap characters of every chunk after the first and joining the
// rest reproduces the input.
//
// [Splitter.Chunks] only splits text whose estimated token count is above
// TokenThreshold; shorter text is returned as a single chunk.
//
// # Token Estimation
//
// [EstimateTokens] uses the common approximation of four characters per
// token. It is not a tokenizer.
//
// # Export
//
// Chunks can be written as JSON Lines or as a JSON array:
//
//	exporter := rag.NewExporter(rag.ExportFormatJSONL)
//	err := exporter.Export(chunks, os.Stdout)
package rag
