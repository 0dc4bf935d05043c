package handlers

import (
	"net/http"
	"time"

	"github.com/Wissal65/RAG-Application/internal/adapter"
	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/api"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
)

// CreateNoteHandler godoc
// @Summary      Create a note
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      api.NoteRequest  true  "Note content"
// @Success      201      {object}  api.NoteResponse
// @Failure      400      {object}  api.JobResponse
// @Router       /notes [post]
func CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())

	var requestData api.NoteRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}
	if requestData.Content == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "content is required")
		return
	}

	noteType := commonModels.NoteType(requestData.NoteType)
	switch noteType {
	case commonModels.NoteTypeManual, commonModels.NoteTypeAIGenerated, commonModels.NoteTypeFromChat:
	case "":
		noteType = commonModels.NoteTypeManual
	default:
		WriteErrorResponse(w, http.StatusBadRequest, "", "invalid note_type")
		return
	}

	note := commonModels.Note{
		Id:       utils.GetNewUUID(),
		UserId:   userId,
		Content:  requestData.Content,
		NoteType: noteType,
	}
	if err := dataStore.CreateNote(r.Context(), &note); err != nil {
		logRH.Error("Failed to create note", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusCreated, adapter.ToNoteResponse(&note))
}

// ListNotesHandler godoc
// @Summary      List notes
// @Tags         Notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  api.NoteResponse
// @Router       /notes [get]
func ListNotesHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	notes, err := dataStore.ListNotes(r.Context(), userId)
	if err != nil {
		logRH.Error("Failed to list notes", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToNoteList(notes))
}

// GetNoteHandler godoc
// @Summary      Get one note
// @Tags         Notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  api.NoteResponse
// @Failure      404  {object}  api.JobResponse
// @Router       /notes/{id} [get]
func GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	noteId := utils.GetChiURLParam(r, "id")

	note, err := dataStore.GetNote(r.Context(), userId, noteId)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, noteId, "Note not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToNoteResponse(note))
}

// UpdateNoteHandler godoc
// @Summary      Update a note
// @Tags         Notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string           true  "Note ID"
// @Param        request  body      api.NoteRequest  true  "New content"
// @Success      200      {object}  api.NoteResponse
// @Failure      404      {object}  api.JobResponse
// @Router       /notes/{id} [put]
func UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	noteId := utils.GetChiURLParam(r, "id")

	var requestData api.NoteRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}
	if requestData.Content == "" {
		WriteErrorResponse(w, http.StatusBadRequest, noteId, "content is required")
		return
	}

	note, err := dataStore.GetNote(r.Context(), userId, noteId)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, noteId, "Note not found")
		return
	}

	note.Content = requestData.Content
	note.UpdatedAt = time.Now()
	if err := dataStore.UpdateNote(r.Context(), note); err != nil {
		logRH.Error("Failed to update note", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, noteId, "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToNoteResponse(note))
}

// DeleteNoteHandler godoc
// @Summary      Delete a note
// @Tags         Notes
// @Security     BearerAuth
// @Param        id   path  string  true  "Note ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.JobResponse
// @Router       /notes/{id} [delete]
func DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	noteId := utils.GetChiURLParam(r, "id")

	if err := dataStore.DeleteNote(r.Context(), userId, noteId); err != nil {
		WriteErrorResponse(w, http.StatusNotFound, noteId, "Note not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
