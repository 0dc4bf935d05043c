package commonModels

import "time"

type User struct {
	Id           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash []byte    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

type DocStatus string

const (
	DocStatusPending DocStatus = "PENDING"
	DocStatusReady   DocStatus = "READY"
	DocStatusFailed  DocStatus = "FAILED"
)

type Document struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	UserId      string    `json:"user_id" gorm:"index;not null"`
	Name        string    `json:"doc_name" gorm:"not null"`
	ContentType DocType   `json:"content_type"`
	FilePath    string    `json:"-"`
	TextContent string    `json:"-"`
	Status      DocStatus `json:"status"`
	ChunkCount  int       `json:"chunk_count"`
	CreatedAt   time.Time `json:"created_at"`

	LastIngestTimestamp time.Time `json:"ingested_at"`
}

type NoteType string

const (
	NoteTypeManual      NoteType = "manual"
	NoteTypeAIGenerated NoteType = "ai_generated"
	NoteTypeFromChat    NoteType = "from_chat"
)

type Note struct {
	Id        string    `json:"id" gorm:"primaryKey"`
	UserId    string    `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content" gorm:"not null"`
	NoteType  NoteType  `json:"note_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatEntry struct {
	Id          string    `json:"id" gorm:"primaryKey"`
	UserId      string    `json:"user_id" gorm:"index;not null"`
	Question    string    `json:"question" gorm:"not null"`
	Answer      string    `json:"answer" gorm:"not null"`
	Sources     []string  `json:"sources" gorm:"serializer:json"`
	DocumentIds []string  `json:"document_ids" gorm:"serializer:json"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocChunk struct {
	Doc            Document
	ChunkId        string `json:"chunk_id"`
	Chunk          string `json:"content"`
	PageNum        int    `json:"page_num"`
	ChunkPageOrder int    `json:"chunk_order"`
}

type DocType string

var (
	PDF  DocType = "PDF"
	DOCX DocType = "DOCX"
	TXT  DocType = "TXT"
	ERR  DocType = "ERROR"
)
