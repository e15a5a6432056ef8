package main

import (
	"context"
	"log"
	"net/http"

	httpadapter "github.com/toyhtowdomasydyt/sales-gemini-chat/internal/adapters/http"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/adapters/llm"
	boltstore "github.com/toyhtowdomasydyt/sales-gemini-chat/internal/adapters/storage/bolt"
	firestorestore "github.com/toyhtowdomasydyt/sales-gemini-chat/internal/adapters/storage/firestore"
	memstore "github.com/toyhtowdomasydyt/sales-gemini-chat/internal/adapters/storage/memory"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/chat"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/registry"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/app/session"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/config"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/domain"
	"github.com/toyhtowdomasydyt/sales-gemini-chat/internal/observability"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logg := observability.Logger()

	var (
		llmClient domain.LLMClient
		err       error
	)

	if cfg.UseMockLLM {
		logg.Info("using mock completion client")
		llmClient = llm.NewMockLLM()
	} else {
		logg.Info("using gemini client", "model", cfg.ModelName)
		llmClient, err = llm.NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.ModelName)
		if err != nil {
			log.Fatalf("error initializing Gemini client: %v", err)
		}
	}

	var clientStore domain.ClientStore
	var messageStore domain.MessageStore

	switch cfg.StorageBackend {
	case config.BackendFirestore:
		logg.Info("using firestore storage", "project", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 2 interfaces
		clientStore = fsStore
		messageStore = fsStore

	case config.BackendBolt:
		logg.Info("using bolt storage", "path", cfg.BoltPath)
		bStore, err := boltstore.NewStore(cfg.BoltPath)
		if err != nil {
			log.Fatalf("error initializing bolt store: %v", err)
		}
		defer bStore.Close()

		clientStore = bStore
		messageStore = bStore

	default:
		logg.Info("using in-memory storage")
		clientStore = memstore.NewClientStore()
		messageStore = memstore.NewMessageStore()
	}

	registrySvc := registry.NewService(clientStore, messageStore)
	chatSvc := chat.NewService(llmClient, clientStore, messageStore)
	selector := session.NewSelector(registrySvc, chatSvc)

	handler := httpadapter.NewServer(registrySvc, selector, chatSvc, llmClient)

	addr := ":" + cfg.Port
	logg.Info("sales assistant api listening", "addr", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
