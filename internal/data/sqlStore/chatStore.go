package sqlStore

import (
	"context"
	"fmt"

	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
)

func (s *SQLiteStore) CreateChatEntry(ctx context.Context, entry *commonModels.ChatEntry) error {
	if entry.Id == "" || entry.UserId == "" {
		return fmt.Errorf("chat entry id and user id cannot be empty")
	}
	return s.gdb.WithContext(ctx).Create(entry).Error
}

func (s *SQLiteStore) GetChatEntry(ctx context.Context, userId, chatId string) (*commonModels.ChatEntry, error) {
	var entry commonModels.ChatEntry
	err := s.gdb.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatId, userId).
		First(&entry).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &entry, nil
}

func (s *SQLiteStore) ListChatHistory(ctx context.Context, userId string, limit int) ([]commonModels.ChatEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []commonModels.ChatEntry
	err := s.gdb.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

func (s *SQLiteStore) DeleteChatEntry(ctx context.Context, userId, chatId string) error {
	res := s.gdb.WithContext(ctx).
		Where("id = ? AND user_id = ?", chatId, userId).
		Delete(&commonModels.ChatEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ClearChatHistory(ctx context.Context, userId string) error {
	return s.gdb.WithContext(ctx).
		Where("user_id = ?", userId).
		Delete(&commonModels.ChatEntry{}).Error
}
