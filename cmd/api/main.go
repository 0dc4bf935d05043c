// @title           Notebook RAG API
// @version         1.0
// @description     Document Q&A backend: upload documents, ask questions over them, keep the answers as notes.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Wissal65/RAG-Application/internal/auth"
	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/data/sqlStore"
	"github.com/Wissal65/RAG-Application/internal/data/store"
	jobmodel "github.com/Wissal65/RAG-Application/internal/domain/jobModel"
	"github.com/Wissal65/RAG-Application/internal/handlers"
	"github.com/Wissal65/RAG-Application/internal/job"
	"github.com/Wissal65/RAG-Application/internal/middleware"
	"github.com/Wissal65/RAG-Application/internal/rag"
	"github.com/Wissal65/RAG-Application/internal/rag/embedding"
	"github.com/Wissal65/RAG-Application/internal/rag/embedding/googleEmbedding"
	"github.com/Wissal65/RAG-Application/internal/rag/embedding/openaiEmbedding"
	"github.com/Wissal65/RAG-Application/internal/rag/llm"
	"github.com/Wissal65/RAG-Application/internal/rag/llm/gemini"
	"github.com/Wissal65/RAG-Application/internal/rag/llm/openaiLLM"
	"github.com/Wissal65/RAG-Application/internal/rag/vectorDB/qdrantDB"
	"github.com/Wissal65/RAG-Application/internal/server"
	"github.com/Wissal65/RAG-Application/internal/worker"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	env, err := config.GetEnv()
	if err != nil {
		logger.Error("Bad environment configuration", "error", err)
		return
	}
	flag.StringVar(&listenAddr, "listen-addr", env.ListenAddr, "server listen address")
	flag.Parse()

	jwtSecret := env.JWTSecret
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET not set, using the development default")
		jwtSecret = config.DefaultJWTSecret
	}

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//relational store
	dataStore, err := sqlStore.NewSQLiteStore(env.SQLitePath)
	if err != nil {
		logger.Error("Could not open sqlite store. Shutting down.", "error", err)
		return
	}

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil {
		logger.Error("Redis job store is offline, falling back to in-memory")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
	}
	service := job.InitJobService(serviceConfig)

	vectorDB := qdrantDB.GetQuadrantClient(serviceContext)

	var embeddingService embedding.Embedder
	var llmProvider llm.Provider
	if env.ModelProvider == "openai" {
		embeddingService = openaiEmbedding.GetOpenAIEmbeddingClient(config.OpenAIEmbeddingModel, env.OpenAIAPIKey)
		llmProvider = openaiLLM.GetOpenAIClient(config.OpenAIModelName, env.OpenAIAPIKey)
	} else {
		embeddingService = googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, env.GoogleAPIKey)
		llmProvider = gemini.GetGeminiClient(serviceContext, config.GeminiModelName, env.GoogleAPIKey)
	}

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDB, llmProvider, embeddingService)
	authService := auth.NewService(dataStore, jwtSecret)

	middleware.InitMiddleware(authService)
	handlers.InitJobHandler(service)
	handlers.InitRequestHandlers(authService, dataStore, vectorDB)

	//init worker pool
	worker.InitServices(service, ragService, dataStore)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
