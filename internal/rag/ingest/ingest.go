package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
	"github.com/Wissal65/RAG-Application/internal/rag/embedding"
	"github.com/Wissal65/RAG-Application/internal/rag/vectorDB"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger = logger_i.NewLogger("Document Ingestion")

// Result reports what the pipeline produced. Text is the full extracted
// content, kept around so the caller can run an auto-summary without a
// second extraction pass.
type Result struct {
	ChunkCount int
	Text       string
}

// ProcessDocumentIngestion extracts the document's text, chunks it, embeds
// the chunks in batches and upserts them into the user's collection.
func ProcessDocumentIngestion(ctx context.Context, doc commonModels.Document, collectionName string, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) (Result, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "documentId", doc.Id)

	log.Debug("Processing document", "filename", doc.Name, "type", doc.ContentType)

	if err := vectorDatabase.EnsureCollection(ctx, collectionName); err != nil {
		return Result{}, fmt.Errorf("creating collection: %w", err)
	}

	doc.LastIngestTimestamp = time.Now()

	pages, err := collectPages(doc)
	if err != nil {
		return Result{}, fmt.Errorf("extracting document content: %w", err)
	}
	log.Debug("Extracted document", "pages", len(pages))

	chunks := PrepareChunks(pages, doc)
	log.Debug("Prepared chunks", "count", len(chunks))

	if err := BatchIngest(ctx, collectionName, chunks, vectorDatabase, e); err != nil {
		return Result{}, err
	}

	var full strings.Builder
	for _, p := range pages {
		full.WriteString(p.Content)
		full.WriteString("\n")
	}
	return Result{ChunkCount: len(chunks), Text: full.String()}, nil
}

// collectPages resolves the document's raw text. Text documents carry their
// content inline; file-backed documents go through the extractors.
func collectPages(doc commonModels.Document) ([]rawPage, error) {
	if doc.ContentType == commonModels.TXT && doc.TextContent != "" {
		return []rawPage{{Number: 1, Content: doc.TextContent}}, nil
	}
	return extractText(doc.FilePath, doc.ContentType)
}

// ExtractFullText is the single-string variant used by the summary job.
func ExtractFullText(doc commonModels.Document) (string, error) {
	pages, err := collectPages(doc)
	if err != nil {
		return "", err
	}
	var full strings.Builder
	for _, p := range pages {
		full.WriteString(p.Content)
		full.WriteString("\n")
	}
	return full.String(), nil
}
