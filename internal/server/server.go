package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/Wissal65/RAG-Application/internal/adapter/utils"
	"github.com/Wissal65/RAG-Application/internal/config"
	"github.com/Wissal65/RAG-Application/internal/handlers"
	"github.com/Wissal65/RAG-Application/internal/middleware"
	"github.com/Wissal65/RAG-Application/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

func CreateServer(listenAddr string) {
	_logger = logger_i.NewLogger("Server")

	r := utils.GetRouter()

	//public
	r.Router.Get("/health", middleware.Wrap(handlers.HealthHandler))
	r.Router.Post("/auth/register", middleware.Wrap(handlers.RegisterHandler))
	r.Router.Post("/auth/login", middleware.Wrap(handlers.LoginHandler))

	//authenticated
	r.Router.Get("/auth/me", middleware.WrapAuthenticated(handlers.MeHandler))

	r.Router.Post("/documents/upload", middleware.WrapAuthenticated(handlers.UploadDocumentHandler))
	r.Router.Post("/documents/text", middleware.WrapAuthenticated(handlers.AddTextHandler))
	r.Router.Get("/documents", middleware.WrapAuthenticated(handlers.ListDocumentsHandler))
	r.Router.Get("/documents/{id}", middleware.WrapAuthenticated(handlers.GetDocumentHandler))
	r.Router.Delete("/documents/{id}", middleware.WrapAuthenticated(handlers.DeleteDocumentHandler))
	r.Router.Post("/documents/{id}/summarize", middleware.WrapAuthenticated(handlers.SummarizeDocumentHandler))

	r.Router.Post("/notes", middleware.WrapAuthenticated(handlers.CreateNoteHandler))
	r.Router.Get("/notes", middleware.WrapAuthenticated(handlers.ListNotesHandler))
	r.Router.Get("/notes/{id}", middleware.WrapAuthenticated(handlers.GetNoteHandler))
	r.Router.Put("/notes/{id}", middleware.WrapAuthenticated(handlers.UpdateNoteHandler))
	r.Router.Delete("/notes/{id}", middleware.WrapAuthenticated(handlers.DeleteNoteHandler))

	r.Router.Post("/chat/query", middleware.WrapAuthenticated(handlers.ChatQueryHandler))
	r.Router.Get("/chat/jobs/{id}", middleware.WrapAuthenticated(handlers.GetChatJobStatusHandler))
	r.Router.Get("/chat/history", middleware.WrapAuthenticated(handlers.ChatHistoryHandler))
	r.Router.Delete("/chat/history", middleware.WrapAuthenticated(handlers.ClearChatHistoryHandler))
	r.Router.Delete("/chat/history/{id}", middleware.WrapAuthenticated(handlers.DeleteChatEntryHandler))
	r.Router.Post("/chat/history/{id}/save", middleware.WrapAuthenticated(handlers.SaveChatToNotesHandler))

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error :", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	println("\nServer is shutting down", state)

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully: %s", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
