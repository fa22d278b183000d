package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-revision/pkg/simplerevision"
)

// DBTX is an interface that allows us to use either a database
// connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements simplerevision.Repository using PostgreSQL.
// The unique constraints on (document_id, version) and
// (node_id, document_id) are the serialization points; inserts go
// straight to the database and let constraint violations decide races.
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) simplerevision.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) simplerevision.Repository {
	return &Repository{db: pool}
}

// mapPostgresError translates constraint violations into the package
// sentinel errors.
func mapPostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			if strings.Contains(pgErr.ConstraintName, "document_revisions") {
				return simplerevision.ErrRevisionExists
			}
			if strings.Contains(pgErr.ConstraintName, "node_document_links") {
				return simplerevision.ErrLinkExists
			}
			return fmt.Errorf("duplicate entry in %s: %s", operation, pgErr.ConstraintName)
		case "23503": // foreign_key_violation
			return simplerevision.ErrDocumentNotFound
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		}
		return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

// Document operations

func (r *Repository) CreateDocument(ctx context.Context, doc *simplerevision.Document) error {
	query := `
		INSERT INTO documents (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, query,
		doc.ID, doc.Title, doc.Description, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return mapPostgresError("create document", err)
	}

	return nil
}

func (r *Repository) GetDocument(ctx context.Context, id uuid.UUID) (*simplerevision.Document, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM documents WHERE id = $1`

	var doc simplerevision.Document
	err := r.db.QueryRow(ctx, query, id).Scan(
		&doc.ID, &doc.Title, &doc.Description, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplerevision.ErrDocumentNotFound
		}
		return nil, mapPostgresError("get document", err)
	}

	return &doc, nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]*simplerevision.Document, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM documents ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, mapPostgresError("list documents", err)
	}
	defer rows.Close()

	var docs []*simplerevision.Document
	for rows.Next() {
		var doc simplerevision.Document
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Description, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// Revision operations

func (r *Repository) CreateRevision(ctx context.Context, rev *simplerevision.Revision) error {
	query := `
		INSERT INTO document_revisions (
			id, document_id, version, storage_key, change_summary, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		rev.ID, rev.DocumentID, rev.Version, rev.StorageKey,
		rev.ChangeSummary, rev.CreatedBy, rev.CreatedAt)
	if err != nil {
		return mapPostgresError("create revision", err)
	}

	// Reflect the new revision on the owning document.
	_, err = r.db.Exec(ctx,
		`UPDATE documents SET updated_at = $2 WHERE id = $1`,
		rev.DocumentID, rev.CreatedAt)
	if err != nil {
		return mapPostgresError("touch document", err)
	}

	return nil
}

func (r *Repository) GetRevisionByVersion(ctx context.Context, documentID uuid.UUID, version string) (*simplerevision.Revision, error) {
	query := `
		SELECT id, document_id, version, storage_key, change_summary, created_by, created_at
		FROM document_revisions
		WHERE document_id = $1 AND version = $2`

	return r.scanRevision(r.db.QueryRow(ctx, query, documentID, version))
}

func (r *Repository) GetLatestRevision(ctx context.Context, documentID uuid.UUID) (*simplerevision.Revision, error) {
	query := `
		SELECT id, document_id, version, storage_key, change_summary, created_by, created_at
		FROM document_revisions
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	return r.scanRevision(r.db.QueryRow(ctx, query, documentID))
}

func (r *Repository) scanRevision(row pgx.Row) (*simplerevision.Revision, error) {
	var rev simplerevision.Revision
	err := row.Scan(
		&rev.ID, &rev.DocumentID, &rev.Version, &rev.StorageKey,
		&rev.ChangeSummary, &rev.CreatedBy, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simplerevision.ErrRevisionNotFound
		}
		return nil, mapPostgresError("get revision", err)
	}

	return &rev, nil
}

func (r *Repository) ListRevisions(ctx context.Context, documentID uuid.UUID) ([]*simplerevision.Revision, error) {
	query := `
		SELECT id, document_id, version, storage_key, change_summary, created_by, created_at
		FROM document_revisions
		WHERE document_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, documentID)
	if err != nil {
		return nil, mapPostgresError("list revisions", err)
	}
	defer rows.Close()

	var revs []*simplerevision.Revision
	for rows.Next() {
		var rev simplerevision.Revision
		if err := rows.Scan(
			&rev.ID, &rev.DocumentID, &rev.Version, &rev.StorageKey,
			&rev.ChangeSummary, &rev.CreatedBy, &rev.CreatedAt); err != nil {
			return nil, err
		}
		revs = append(revs, &rev)
	}

	return revs, rows.Err()
}

// Node-document link operations

func (r *Repository) CreateNodeLink(ctx context.Context, link *simplerevision.NodeDocumentLink) error {
	query := `
		INSERT INTO node_document_links (
			id, node_id, document_id, order_position, relation_type, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		link.ID, link.NodeID, link.DocumentID,
		link.OrderPosition, link.RelationType, link.CreatedAt)
	if err != nil {
		return mapPostgresError("create node link", err)
	}

	return nil
}

func (r *Repository) DeleteNodeLink(ctx context.Context, nodeID, documentID uuid.UUID) error {
	query := `DELETE FROM node_document_links WHERE node_id = $1 AND document_id = $2`

	tag, err := r.db.Exec(ctx, query, nodeID, documentID)
	if err != nil {
		return mapPostgresError("delete node link", err)
	}
	if tag.RowsAffected() == 0 {
		return simplerevision.ErrLinkNotFound
	}

	return nil
}

func (r *Repository) ListNodeLinks(ctx context.Context, nodeID uuid.UUID) ([]*simplerevision.NodeDocumentLink, error) {
	query := `
		SELECT id, node_id, document_id, order_position, relation_type, created_at
		FROM node_document_links
		WHERE node_id = $1
		ORDER BY order_position ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query, nodeID)
	if err != nil {
		return nil, mapPostgresError("list node links", err)
	}
	defer rows.Close()

	var links []*simplerevision.NodeDocumentLink
	for rows.Next() {
		var link simplerevision.NodeDocumentLink
		if err := rows.Scan(
			&link.ID, &link.NodeID, &link.DocumentID,
			&link.OrderPosition, &link.RelationType, &link.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, &link)
	}

	return links, rows.Err()
}
