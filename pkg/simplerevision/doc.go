// Package simplerevision provides a reusable library for document
// revision management with pluggable repository and blob storage
// backends.
//
// Document metadata and revision records live in a relational
// repository; revision content is written once to a content-addressable
// blob store and never modified afterwards. The single Service
// interface orchestrates revision creation, content retrieval,
// section-level diffing between revisions, and node-document
// associations. Implementations of repositories (memory, Postgres) and
// blob stores (memory, filesystem, S3) are provided under subpackages.
//
// Versioning Strategy
//
// Revision versions are server-generated semantic versions scoped to a
// document ("1.0.0", "1.1.0", ...). The (document_id, version) pair is
// unique at the storage layer; that unique constraint is the only
// serialization point, so the service stays safe when run as multiple
// concurrent instances. The latest revision is always resolved from
// creation order, never from a separately maintained flag.
package simplerevision
