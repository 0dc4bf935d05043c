package handlers

import (
	"github.com/Wissal65/RAG-Application/internal/auth"
	"github.com/Wissal65/RAG-Application/internal/data/sqlStore"
	"github.com/Wissal65/RAG-Application/internal/rag/vectorDB"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

var (
	logRH       *logger_i.Logger
	authService auth.Service
	dataStore   sqlStore.Store
	vectorStore vectorDB.DataProcessor
)

func InitRequestHandlers(a auth.Service, store sqlStore.Store, vector vectorDB.DataProcessor) {
	authService = a
	dataStore = store
	vectorStore = vector
	if logRH == nil {
		logRH = logger_i.NewLogger("RequestHandler")
	}
}
