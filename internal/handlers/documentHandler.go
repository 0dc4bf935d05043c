package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Wissal65/RAG-Application/internal/adapter"
	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/api"
	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/data/sqlStore"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/rag/ingest"
	"github.com/Wissal65/RAG-Application/internal/rag/vectorDB"
)

// UploadDocumentHandler godoc
// @Summary      Upload a document for ingestion
// @Description  Receives a file via multipart/form-data, stores it under the user's upload directory, and queues an ingestion job.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        document       formData  file    true   "The PDF, DOCX or TXT file to upload"
// @Param        document_name  formData  string  false  "Display name, defaults to the file name"
// @Param        auto_summary   formData  bool    false  "Also generate a summary note after ingestion"
// @Success      202  {object}  api.DocumentResponse  "Accepted - ingestion queued"
// @Failure      400  {object}  api.JobResponse       "Missing file, unsupported type or file too large"
// @Failure      500  {object}  api.JobResponse       "Storage or write error"
// @Router       /documents/upload [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	traceId, userId := requestIdentity(r.Context())

	targetDir, errString := getUserUploadDirectory(userId)
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	// MaxBytesReader enforces the cap; the same value as maxMemory alone
	// would only bound buffering and let oversized bodies spill to disk
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSizeBytes)
	if err := r.ParseMultipartForm(config.MaxUploadSizeBytes); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	docType := ingest.GetDocType(fileMetadata.Filename)
	if docType == commonModels.ERR {
		WriteErrorResponse(w, http.StatusBadRequest, fileMetadata.Filename, "Unsupported file type")
		return
	}

	docName := r.FormValue("document_name")
	if docName == "" {
		docName = fileMetadata.Filename
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Write error")
		return
	}

	doc := commonModels.Document{
		Id:          utils.GetNewUUID(),
		UserId:      userId,
		Name:        docName,
		ContentType: docType,
		FilePath:    tempFilePath,
		Status:      commonModels.DocStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := dataStore.CreateDocument(r.Context(), &doc); err != nil {
		logRH.Error("Failed to create document row", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
		return
	}

	jobId := enqueueDocumentJob(traceId, userId, doc.Id, jobModel.JobTypeIngest, r.FormValue("auto_summary") == "true")
	writeJsonResponse(w, http.StatusAccepted, adapter.ToDocumentResponse(&doc, jobId))
}

// AddTextHandler godoc
// @Summary      Add a text document
// @Description  Accepts raw text content as a document and queues it for ingestion.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      api.AddTextRequest  true  "Filename and content"
// @Success      202      {object}  api.DocumentResponse
// @Failure      400      {object}  api.JobResponse
// @Router       /documents/text [post]
func AddTextHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}
	traceId, userId := requestIdentity(r.Context())

	var requestData api.AddTextRequest
	if !decodeJsonBody(w, r, &requestData) {
		return
	}
	if requestData.Filename == "" || requestData.Content == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "filename and content are required")
		return
	}

	doc := commonModels.Document{
		Id:          utils.GetNewUUID(),
		UserId:      userId,
		Name:        requestData.Filename,
		ContentType: commonModels.TXT,
		TextContent: requestData.Content,
		Status:      commonModels.DocStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := dataStore.CreateDocument(r.Context(), &doc); err != nil {
		logRH.Error("Failed to create document row", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, requestData.Filename, "Storage error")
		return
	}

	jobId := enqueueDocumentJob(traceId, userId, doc.Id, jobModel.JobTypeIngest, requestData.AutoSummary)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToDocumentResponse(&doc, jobId))
}

// ListDocumentsHandler godoc
// @Summary      List documents
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  api.DocumentResponse
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	docs, err := dataStore.ListDocuments(r.Context(), userId)
	if err != nil {
		logRH.Error("Failed to list documents", "err", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "", "Storage error")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentList(docs))
}

// GetDocumentHandler godoc
// @Summary      Get one document
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      200  {object}  api.DocumentResponse
// @Failure      404  {object}  api.JobResponse
// @Router       /documents/{id} [get]
func GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	docId := utils.GetChiURLParam(r, "id")

	doc, err := dataStore.GetDocument(r.Context(), userId, docId)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, docId, "Document not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentResponse(doc, ""))
}

// SummarizeDocumentHandler godoc
// @Summary      Summarize a document
// @Description  Queues a summary job for an ingested document. The summary is saved as an AI-generated note.
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document ID"
// @Success      202  {object}  api.InitJobResponse
// @Failure      404  {object}  api.JobResponse
// @Failure      409  {object}  api.JobResponse  "Document not ingested yet"
// @Router       /documents/{id}/summarize [post]
func SummarizeDocumentHandler(w http.ResponseWriter, r *http.Request) {
	traceId, userId := requestIdentity(r.Context())
	docId := utils.GetChiURLParam(r, "id")

	doc, err := dataStore.GetDocument(r.Context(), userId, docId)
	if err != nil {
		WriteErrorResponse(w, http.StatusNotFound, docId, "Document not found")
		return
	}
	if doc.Status != commonModels.DocStatusReady {
		WriteErrorResponse(w, http.StatusConflict, docId, "Document is not ready")
		return
	}

	jobId := enqueueDocumentJob(traceId, userId, doc.Id, jobModel.JobTypeSummarize, false)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(jobId))
}

// DeleteDocumentHandler godoc
// @Summary      Delete a document
// @Description  Removes the document row, its stored file and its vectors.
// @Tags         Documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Document ID"
// @Success      204  "Deleted"
// @Failure      404  {object}  api.JobResponse
// @Router       /documents/{id} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	_, userId := requestIdentity(r.Context())
	docId := utils.GetChiURLParam(r, "id")

	doc, err := dataStore.GetDocument(r.Context(), userId, docId)
	if err != nil {
		if errors.Is(err, sqlStore.ErrNotFound) {
			WriteErrorResponse(w, http.StatusNotFound, docId, "Document not found")
			return
		}
		WriteErrorResponse(w, http.StatusInternalServerError, docId, "Storage error")
		return
	}

	if err := vectorStore.DeleteDocument(r.Context(), vectorDB.CollectionForUser(userId), docId); err != nil {
		logRH.Error("Failed to delete document vectors", "documentId", docId, "err", err)
	}
	if doc.FilePath != "" {
		if err := os.Remove(doc.FilePath); err != nil && !os.IsNotExist(err) {
			logRH.Error("Failed to delete stored file", "path", doc.FilePath, "err", err)
		}
	}
	if err := dataStore.DeleteDocument(r.Context(), userId, docId); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, docId, "Storage error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func enqueueDocumentJob(traceId, userId, docId string, jobType jobModel.JobType, autoSummary bool) string {
	newJob := newJobData{
		id:          utils.GetNewUUID(),
		userId:      userId,
		traceId:     traceId,
		jobType:     jobType,
		documentId:  docId,
		autoSummary: autoSummary,
	}
	CreateNewJob(newJob)
	return newJob.id
}
