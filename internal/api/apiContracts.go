package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type RAGResponse struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
	ChatId   string   `json:"chat_id,omitempty"`
}

type Result struct {
	Status              string       `json:"status"`
	RAGExternalResponse *RAGResponse `json:"rag_response,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

// requests---------------------

type RegisterRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AddTextRequest struct {
	Filename    string `json:"filename" validate:"required"`
	Content     string `json:"content" validate:"required"`
	AutoSummary bool   `json:"auto_summary"`
}

type NoteRequest struct {
	Content  string `json:"content" validate:"required"`
	NoteType string `json:"note_type,omitempty"`
}

type ChatQueryRequest struct {
	Question    string   `json:"question" validate:"required"`
	DocumentIds []string `json:"document_ids" validate:"required"`
	Async       bool     `json:"async,omitempty"`
}

// responses--------------------

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

type UserResponse struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentResponse struct {
	Id          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Status      string    `json:"status"`
	ChunkCount  int       `json:"chunk_count"`
	CreatedAt   time.Time `json:"created_at"`
	JobId       string    `json:"job_id,omitempty"`
}

type NoteResponse struct {
	Id        string    `json:"id"`
	Content   string    `json:"content"`
	NoteType  string    `json:"note_type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatEntryResponse struct {
	Id          string    `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	Sources     []string  `json:"sources"`
	DocumentIds []string  `json:"document_ids"`
	CreatedAt   time.Time `json:"created_at"`
}
