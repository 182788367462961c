/*
Package ports defines the driven ports (interfaces) for valence.

These interfaces decouple the editor from external implementations, allowing
documents to be persisted in memory, on the filesystem, or in Redis.

# Key Interfaces

  - DocumentStore: persists and loads whole graph documents.
*/
package ports
