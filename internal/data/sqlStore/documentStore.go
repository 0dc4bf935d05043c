package sqlStore

import (
	"context"
	"fmt"

	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
)

func (s *SQLiteStore) CreateDocument(ctx context.Context, doc *commonModels.Document) error {
	if doc.Id == "" || doc.UserId == "" {
		return fmt.Errorf("document id and user id cannot be empty")
	}
	return s.gdb.WithContext(ctx).Create(doc).Error
}

func (s *SQLiteStore) GetDocument(ctx context.Context, userId, docId string) (*commonModels.Document, error) {
	var doc commonModels.Document
	err := s.gdb.WithContext(ctx).
		Where("id = ? AND user_id = ?", docId, userId).
		First(&doc).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &doc, nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, userId string) ([]commonModels.Document, error) {
	var docs []commonModels.Document
	err := s.gdb.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

// FilterOwnedReadyDocuments intersects the requested ids with the caller's
// ingested documents. The result is the allow-list handed to the vector search.
func (s *SQLiteStore) FilterOwnedReadyDocuments(ctx context.Context, userId string, docIds []string) ([]string, error) {
	if len(docIds) == 0 {
		return nil, nil
	}
	var valid []string
	err := s.gdb.WithContext(ctx).
		Model(&commonModels.Document{}).
		Where("user_id = ? AND status = ? AND id IN ?", userId, commonModels.DocStatusReady, docIds).
		Pluck("id", &valid).Error
	return valid, err
}

func (s *SQLiteStore) UpdateDocumentStatus(ctx context.Context, docId string, status commonModels.DocStatus, chunkCount int) error {
	return s.gdb.WithContext(ctx).
		Model(&commonModels.Document{}).
		Where("id = ?", docId).
		Updates(map[string]any{"status": status, "chunk_count": chunkCount}).Error
}

func (s *SQLiteStore) DeleteDocument(ctx context.Context, userId, docId string) error {
	res := s.gdb.WithContext(ctx).
		Where("id = ? AND user_id = ?", docId, userId).
		Delete(&commonModels.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
