package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Wissal65/RAG-Application/internal/adapter"
	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/api"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
)

// ChatQueryHandler godoc
// @Summary      Ask a question over selected documents
// @Description  Runs retrieval-augmented generation over the caller's selected documents. Sync mode (default) blocks until the answer is ready; async mode returns a job ID to poll.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      api.ChatQueryRequest  true  "Question, document allow-list and async flag"
// @Success      200      {object}  api.JobResponse      "Answer (sync mode)"
// @Success      202      {object}  api.InitJobResponse  "Job queued (async mode or sync timeout)"
// @Failure      400      {object}  api.JobResponse      "Missing question or no usable documents"
// @Router       /chat/query [post]
func ChatQueryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	traceId, userId := requestIdentity(r.Context())

	var requestData api.ChatQueryRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}
	if requestData.Question == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "question is required")
		return
	}
	if len(requestData.DocumentIds) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document_ids is required")
		return
	}

	// silently drop ids the caller doesn't own or that aren't ingested yet
	validIds, err := dataStore.FilterOwnedReadyDocuments(r.Context(), userId, requestData.DocumentIds)
	if err != nil {
		logRH.Error("Failed to validate documents", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	if len(validIds) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, "", "No usable documents in document_ids")
		return
	}

	newJob := newJobData{
		id:          utils.GetNewUUID(),
		userId:      userId,
		traceId:     traceId,
		jobType:     jobModel.JobTypeQuery,
		question:    requestData.Question,
		documentIds: validIds,
	}

	if requestData.Async {
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}

	finished, done := CreateJobAndWait(newJob)
	if !done {
		// the job keeps running; the client can poll for the result
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	if finished.Status == jobModel.JobStatusError {
		writeJsonResponse(w, http.StatusInternalServerError, adapter.ToAPIResponse(finished))
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(finished))
}

// GetChatJobStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a query, ingestion or summary job.
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /chat/jobs/{id} [get]
func GetChatJobStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}
	traceId, userId := requestIdentity(r.Context())

	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, traceId)
	if !isFound || result.UserId != userId {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// ChatHistoryHandler godoc
// @Summary      List chat history
// @Description  Returns the caller's past questions and answers, newest first.
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries to return (default 50)"
// @Success      200    {array}   api.ChatEntryResponse
// @Router       /chat/history [get]
func ChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	entries, err := dataStore.ListChatHistory(r.Context(), userId, limit)
	if err != nil {
		logRH.Error("Failed to list chat history", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToChatHistory(entries))
}

// DeleteChatEntryHandler godoc
// @Summary      Delete one chat entry
// @Tags         Chat
// @Security     BearerAuth
// @Param        id   path  string  true  "Chat entry ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.JobResponse
// @Router       /chat/history/{id} [delete]
func DeleteChatEntryHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	chatId := utils.GetChiURLParam(r, "id")

	if err := dataStore.DeleteChatEntry(r.Context(), userId, chatId); err != nil {
		WriteErrorResponse(w, http.StatusNotFound, chatId, "Chat entry not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearChatHistoryHandler godoc
// @Summary      Clear chat history
// @Tags         Chat
// @Security     BearerAuth
// @Success      204  "Cleared"
// @Router       /chat/history [delete]
func ClearChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())

	if err := dataStore.ClearChatHistory(r.Context(), userId); err != nil {
		logRH.Error("Failed to clear chat history", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SaveChatToNotesHandler godoc
// @Summary      Save a chat answer as a note
// @Description  Copies one question/answer exchange into the caller's notes.
// @Tags         Chat
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Chat entry ID"
// @Success      201  {object}  api.NoteResponse
// @Failure      404  {object}  api.JobResponse
// @Router       /chat/history/{id}/save [post]
func SaveChatToNotesHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	chatId := utils.GetChiURLParam(r, "id")

	entry, err := dataStore.GetChatEntry(r.Context(), userId, chatId)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, chatId, "Chat entry not found")
		return
	}

	note := commonModels.Note{
		Id:       utils.GetNewUUID(),
		UserId:   userId,
		Content:  fmt.Sprintf("Q: %s\n\nA: %s", entry.Question, entry.Answer),
		NoteType: commonModels.NoteTypeFromChat,
	}
	if err := dataStore.CreateNote(r.Context(), &note); err != nil {
		logRH.Error("Failed to save note from chat", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, chatId, "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToNoteResponse(&note))
}

// HealthHandler responds 200 when the process is up.
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
