// Package scorer computes the relatedness of candidate link texts to a query.
//
// # Components
//
//   - Lexical: offline, deterministic bag-of-words cosine similarity
//   - Embedding: cosine similarity over vectors from an Embedder
//   - OpenAIEmbedder: embeddings from the OpenAI API
//   - HTTPEmbedder: embeddings from a sentence-transformers sidecar
//
// Every scorer returns one score per text, in input order, and fails with
// ErrEmptyBatch when there is nothing to score. A scorer is built once per
// process and shared by handle; all implementations are safe for concurrent use.
package scorer
