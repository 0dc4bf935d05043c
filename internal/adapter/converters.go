package adapter

import (
	"fmt"
	"time"

	"github.com/Wissal65/RAG-Application/internal/api"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("chat/jobs/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:              string(job.Status),
		RAGExternalResponse: ToRAGExternalStatus(job.JobPayload),
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToRAGExternalStatus(ragData jobModel.JobPayload) *api.RAGResponse {
	if ragData.Answer == "" && len(ragData.Sources) == 0 {
		return nil
	}

	return &api.RAGResponse{
		Question: ragData.Question,
		Answer:   ragData.Answer,
		Sources:  ragData.Sources,
		ChatId:   ragData.ChatEntryId,
	}
}

func ToUserResponse(user *commonModels.User) api.UserResponse {
	return api.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func ToDocumentResponse(doc *commonModels.Document, jobId string) api.DocumentResponse {
	return api.DocumentResponse{
		Id:          doc.Id,
		Filename:    doc.Name,
		ContentType: string(doc.ContentType),
		Status:      string(doc.Status),
		ChunkCount:  doc.ChunkCount,
		CreatedAt:   doc.CreatedAt,
		JobId:       jobId,
	}
}

func ToDocumentList(docs []commonModels.Document) []api.DocumentResponse {
	out := make([]api.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, ToDocumentResponse(&docs[i], ""))
	}
	return out
}

func ToNoteResponse(note *commonModels.Note) api.NoteResponse {
	return api.NoteResponse{
		Id:        note.Id,
		Content:   note.Content,
		NoteType:  string(note.NoteType),
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func ToNoteList(notes []commonModels.Note) []api.NoteResponse {
	out := make([]api.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, ToNoteResponse(&notes[i]))
	}
	return out
}

func ToChatEntryResponse(entry *commonModels.ChatEntry) api.ChatEntryResponse {
	return api.ChatEntryResponse{
		Id:          entry.Id,
		Question:    entry.Question,
		Answer:      entry.Answer,
		Sources:     entry.Sources,
		DocumentIds: entry.DocumentIds,
		CreatedAt:   entry.CreatedAt,
	}
}

func ToChatHistory(entries []commonModels.ChatEntry) []api.ChatEntryResponse {
	out := make([]api.ChatEntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToChatEntryResponse(&entries[i]))
	}
	return out
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
