package sqlStore

import (
	"context"
	"errors"

	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store is the relational contract the handlers and workers depend on.
// Every method is scoped by user id; rows never leak across users.
type Store interface {
	CreateUser(ctx context.Context, user *commonModels.User) error
	GetUserByEmail(ctx context.Context, email string) (*commonModels.User, error)
	GetUserByID(ctx context.Context, id string) (*commonModels.User, error)

	CreateDocument(ctx context.Context, doc *commonModels.Document) error
	GetDocument(ctx context.Context, userId, docId string) (*commonModels.Document, error)
	ListDocuments(ctx context.Context, userId string) ([]commonModels.Document, error)
	FilterOwnedReadyDocuments(ctx context.Context, userId string, docIds []string) ([]string, error)
	UpdateDocumentStatus(ctx context.Context, docId string, status commonModels.DocStatus, chunkCount int) error
	DeleteDocument(ctx context.Context, userId, docId string) error

	CreateNote(ctx context.Context, note *commonModels.Note) error
	GetNote(ctx context.Context, userId, noteId string) (*commonModels.Note, error)
	ListNotes(ctx context.Context, userId string) ([]commonModels.Note, error)
	UpdateNote(ctx context.Context, note *commonModels.Note) error
	DeleteNote(ctx context.Context, userId, noteId string) error

	CreateChatEntry(ctx context.Context, entry *commonModels.ChatEntry) error
	GetChatEntry(ctx context.Context, userId, chatId string) (*commonModels.ChatEntry, error)
	ListChatHistory(ctx context.Context, userId string, limit int) ([]commonModels.ChatEntry, error)
	DeleteChatEntry(ctx context.Context, userId, chatId string) error
	ClearChatHistory(ctx context.Context, userId string) error
}

type SQLiteStore struct {
	gdb    *gorm.DB
	logger *logger_i.Logger
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(
		&commonModels.User{},
		&commonModels.Document{},
		&commonModels.Note{},
		&commonModels.ChatEntry{},
	); err != nil {
		return nil, err
	}

	return &SQLiteStore{
		gdb:    gdb,
		logger: logger_i.NewLogger("SqlStore"),
	}, nil
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}
