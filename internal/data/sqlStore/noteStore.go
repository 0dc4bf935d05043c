package sqlStore

import (
	"context"
	"fmt"

	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
)

func (s *SQLiteStore) CreateNote(ctx context.Context, note *commonModels.Note) error {
	if note.Id == "" || note.UserId == "" {
		return fmt.Errorf("note id and user id cannot be empty")
	}
	return s.gdb.WithContext(ctx).Create(note).Error
}

func (s *SQLiteStore) GetNote(ctx context.Context, userId, noteId string) (*commonModels.Note, error) {
	var note commonModels.Note
	err := s.gdb.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteId, userId).
		First(&note).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &note, nil
}

func (s *SQLiteStore) ListNotes(ctx context.Context, userId string) ([]commonModels.Note, error) {
	var notes []commonModels.Note
	err := s.gdb.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&notes).Error
	return notes, err
}

func (s *SQLiteStore) UpdateNote(ctx context.Context, note *commonModels.Note) error {
	res := s.gdb.WithContext(ctx).
		Model(&commonModels.Note{}).
		Where("id = ? AND user_id = ?", note.Id, note.UserId).
		Updates(map[string]any{"content": note.Content, "note_type": note.NoteType})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteNote(ctx context.Context, userId, noteId string) error {
	res := s.gdb.WithContext(ctx).
		Where("id = ? AND user_id = ?", noteId, userId).
		Delete(&commonModels.Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
