package vectorDB

import (
	"context"

	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/domain/commonModels"
)

// Match is one retrieved chunk with enough metadata for source attribution.
type Match struct {
	Content    string
	DocumentId string
	DocName    string
	ChunkOrder int
	Score      float32
}

type DataProcessor interface {
	// Search runs top-k nearest neighbour search in the given collection,
	// restricted to the document-id allow-list.
	Search(ctx context.Context, collectionName string, vectorVal []float32, docIds []string, topK int) ([]Match, error)

	GetCachedAnswer(ctx context.Context, userId string, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, userId string, id string, vector []float32, answer string) error

	EnsureCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error
	DeleteDocument(ctx context.Context, collectionName string, documentId string) error
}

// CollectionForUser names the per-user partition holding that user's
// document embeddings.
func CollectionForUser(userId string) string {
	return config.UserCollectionPrefix + userId + config.UserCollectionSuffix
}
