/*
Package ports defines the driven ports (interfaces) for the concierge core.

These interfaces decouple the dialog engine from external implementations,
allowing it to work with different session backends and collaborator services.

# Key Interfaces

  - SessionStore: persists and loads per-conversation Session state.
  - DistributedLocker: distributed locking for multi-replica deployments.
  - Generator: the text-generation collaborator (always optional).
  - Embedder: vector embeddings for the similarity-search index.
*/
package ports
