package rag_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/rag"
	"github.com/Wissal65/RAG-Application/internal/rag/vectorDB"
)

func TestProcessRequest_Scenarios(t *testing.T) {
	tests := []struct {
		name            string
		setupMocks      func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedStatus  jobModel.JobStatus
		expectedAnswer  string
		expectedSources int
		expectedErr     bool
	}{
		{
			name: "Success_Full_Flow",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearch = func(ctx context.Context, coll string, vec []float32, docIds []string, topK int) ([]vectorDB.Match, error) {
					return []vectorDB.Match{
						{Content: "first excerpt", DocumentId: "doc-1", DocName: "paper.pdf", ChunkOrder: 0},
						{Content: "second excerpt", DocumentId: "doc-1", DocName: "paper.pdf", ChunkOrder: 3},
					}, nil
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					if len(m) != 2 {
						return "", errors.New("excerpts not forwarded")
					}
					return "final answer", nil
				}
			},
			expectedStatus:  jobModel.JobStatusComplete,
			expectedAnswer:  "final answer",
			expectedSources: 2,
		},
		{
			name: "Success_Cache_Hit",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, userId string, emb []float32) (string, bool, error) {
					return "cached answer", true, nil
				}
				v.OnSearch = func(ctx context.Context, coll string, vec []float32, docIds []string, topK int) ([]vectorDB.Match, error) {
					t.Error("Search should not run on a cache hit")
					return nil, nil
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectedAnswer: "cached answer",
		},
		{
			name: "Cache_Error_Falls_Through",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnGetCachedAnswer = func(ctx context.Context, userId string, emb []float32) (string, bool, error) {
					return "", false, errors.New("cache offline")
				}
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "generated anyway", nil
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectedAnswer: "generated anyway",
		},
		{
			name: "Failure_Embedding",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				e.OnGetEmbedding = func(ctx context.Context, text string) ([]float32, error) {
					return nil, errors.New("api limit")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    true,
		},
		{
			name: "Failure_Vector_Search",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnSearch = func(ctx context.Context, coll string, vec []float32, docIds []string, topK int) ([]vectorDB.Match, error) {
					return nil, errors.New("db timeout")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    true,
		},
		{
			name: "Failure_LLM_Generation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnGenerate = func(ctx context.Context, q string, m []string, h []string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusError,
			expectedErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := rag.NewService(mVec, mLLM, mEmbed)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "test-trace")
			job := jobModel.Job{
				Id:     "test-job",
				UserId: "user-1",
				JobPayload: jobModel.JobPayload{
					Question:    "test question",
					DocumentIds: []string{"doc-1"},
				},
			}

			result := s.ProcessRequest(ctx, job, []string{})

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}

			if tt.expectedAnswer != "" && result.JobPayload.Answer != tt.expectedAnswer {
				t.Errorf("Answer got %s, want %s", result.JobPayload.Answer, tt.expectedAnswer)
			}

			if tt.expectedSources > 0 && len(result.JobPayload.Sources) != tt.expectedSources {
				t.Errorf("Sources got %d, want %d", len(result.JobPayload.Sources), tt.expectedSources)
			}

			if tt.expectedErr && result.Error.Code != http.StatusInternalServerError {
				t.Errorf("Error Code got %d, want %d", result.Error.Code, http.StatusInternalServerError)
			}
		})
	}
}

func TestProcessRequest_SearchScopedToUserAndDocuments(t *testing.T) {
	mVec := &MockVectorDB{}
	var gotCollection string
	var gotDocIds []string
	mVec.OnSearch = func(ctx context.Context, coll string, vec []float32, docIds []string, topK int) ([]vectorDB.Match, error) {
		gotCollection = coll
		gotDocIds = docIds
		return []vectorDB.Match{{Content: "x", DocName: "a.pdf"}}, nil
	}

	s := rag.NewService(mVec, &MockLLM{}, &MockEmbedder{})
	job := jobModel.Job{
		Id:     "scope-job",
		UserId: "user-42",
		JobPayload: jobModel.JobPayload{
			Question:    "where",
			DocumentIds: []string{"doc-a", "doc-b"},
		},
	}

	s.ProcessRequest(context.Background(), job, nil)

	if gotCollection != vectorDB.CollectionForUser("user-42") {
		t.Errorf("Search ran against %q, want the user's collection", gotCollection)
	}
	if len(gotDocIds) != 2 {
		t.Errorf("Allow-list not forwarded, got %v", gotDocIds)
	}
}

func TestIngestDocument_Scenarios(t *testing.T) {
	textDoc := commonModels.Document{
		Id:          "doc-txt",
		UserId:      "user-1",
		Name:        "notes.txt",
		ContentType: commonModels.TXT,
		TextContent: "plain text content that will be chunked and embedded",
	}

	tests := []struct {
		name            string
		autoSummary     bool
		setupMocks      func(e *MockEmbedder, v *MockVectorDB, l *MockLLM)
		expectedStatus  jobModel.JobStatus
		expectSummary   bool
		expectChunks    bool
	}{
		{
			name:           "Ingestion_Success",
			setupMocks:     func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {},
			expectedStatus: jobModel.JobStatusComplete,
			expectChunks:   true,
		},
		{
			name:        "Ingestion_With_AutoSummary",
			autoSummary: true,
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnSummarize = func(ctx context.Context, text string) (string, error) {
					return "the summary", nil
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectSummary:  true,
			expectChunks:   true,
		},
		{
			name: "Failure_Collection_Creation",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnEnsureCollection = func(ctx context.Context, name string) error {
					return errors.New("connection refused")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name: "Failure_Batch_Upsert",
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				v.OnUpsertBatch = func(ctx context.Context, coll string, chunks []commonModels.DocChunk, vectors [][]float32) error {
					return errors.New("disk full")
				}
			},
			expectedStatus: jobModel.JobStatusError,
		},
		{
			name:        "AutoSummary_Failure_Is_Not_Fatal",
			autoSummary: true,
			setupMocks: func(e *MockEmbedder, v *MockVectorDB, l *MockLLM) {
				l.OnSummarize = func(ctx context.Context, text string) (string, error) {
					return "", errors.New("provider down")
				}
			},
			expectedStatus: jobModel.JobStatusComplete,
			expectChunks:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mEmbed := &MockEmbedder{}
			mVec := &MockVectorDB{}
			mLLM := &MockLLM{}

			tt.setupMocks(mEmbed, mVec, mLLM)

			s := rag.NewService(mVec, mLLM, mEmbed)

			ctx := context.WithValue(context.Background(), config.TRACE_ID_KEY, "ingest-trace")
			job := jobModel.Job{
				Id:     "ingest-job-1",
				UserId: "user-1",
				JobPayload: jobModel.JobPayload{
					IngestDocumentId: textDoc.Id,
					AutoSummary:      tt.autoSummary,
				},
			}

			result := s.IngestDocument(ctx, job, textDoc)

			if result.Status != tt.expectedStatus {
				t.Errorf("Status got %v, want %v", result.Status, tt.expectedStatus)
			}
			if tt.expectChunks && result.JobPayload.ChunkCount == 0 {
				t.Error("Expected a non-zero chunk count")
			}
			if tt.expectSummary && result.JobPayload.Summary != "the summary" {
				t.Errorf("Summary got %q, want %q", result.JobPayload.Summary, "the summary")
			}
		})
	}
}
