package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"
	USER_ID_KEY    = "userId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//semantic answer cache
	CacheSimilarityCutoff                 = 0.97
	SemanticCacheCollection               = "semantic-cache"
	EmbeddingOutputDimensionality   int32 = 1536

	//per-user document collections
	UserCollectionPrefix = "user_"
	UserCollectionSuffix = "_documents"

	//retrieval
	RetrievalTopK = 3

	//chunking
	ChunkSize    = 1000 //characters
	ChunkOverlap = 200

	//summaries
	SummaryInputLimit = 10000 //characters fed to the LLM
	SummaryMaxWords   = 500

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	//WriteTimeout must outlast SyncQueryTimeout so blocking queries can respond
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 90 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//how long a sync query handler will block on the worker pool
	SyncQueryTimeout = 60 * time.Second
	JobTimeout       = 60 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1

	//llm + embeddings
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIModelName      = "gpt-4o-mini"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	ModelTemperature float32 = 0.7
	ModelContext             = "You are a research assistant that answers questions strictly from the provided document excerpts. If the excerpts do not contain the answer, say you don't know."
	SummaryContext           = "You summarize documents. Cover the main topics and key points concisely."

	//uploads
	MaxUploadSizeBytes = 32 << 20
	UploadDir          = "uploads"

	//sqlite
	SQLitePath = "notebook.db"

	//auth
	TokenExpiry       = 24 * time.Hour
	MinPasswordLength = 8
	MaxPasswordLength = 128
	DefaultJWTSecret  = "dev-secret-change-in-production"

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	RedisJobStore = 0

	RedisJobStoreTTL = 24 * time.Hour

	//chat history fed back into the prompt
	HistoryWindow = 5
)
