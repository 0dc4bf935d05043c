package sqlStore

import (
	"context"
	"fmt"

	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
)

func (s *SQLiteStore) CreateUser(ctx context.Context, user *commonModels.User) error {
	if user.Id == "" || user.Email == "" {
		return fmt.Errorf("user id and email cannot be empty")
	}
	if err := s.gdb.WithContext(ctx).Create(user).Error; err != nil {
		return translateErr(err)
	}
	return nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*commonModels.User, error) {
	var user commonModels.User
	err := s.gdb.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*commonModels.User, error) {
	var user commonModels.User
	err := s.gdb.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &user, nil
}
