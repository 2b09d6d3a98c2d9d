package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gemini-chatbot-backend/internal/adapter/gemini"
	"gemini-chatbot-backend/internal/adapter/httpapi"
	"gemini-chatbot-backend/internal/adapter/telegram"
	"gemini-chatbot-backend/internal/agent"
	"gemini-chatbot-backend/internal/config"
	"gemini-chatbot-backend/internal/domain"
	"gemini-chatbot-backend/internal/usecase/chat"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	catalog, err := agent.LoadCatalog(cfg.AgentCatalogFile)
	if err != nil {
		log.Fatalf("failed to load agent catalog: %v", err)
	}

	client := gemini.NewClient(cfg.GeminiAPIKey, cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.MaxTokens)
	chatSvc := chat.NewService(client, catalog, cfg.Model, domain.RunConfig{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.ChatTimeout,
	})

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(cfg.TelegramToken, chatSvc)
		if err != nil {
			log.Fatalf("failed to init telegram bot: %v", err)
		}
		go func() {
			if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
				log.Printf("telegram bot stopped: %v", err)
			}
		}()
		log.Printf("telegram transport enabled")
	}

	srv := &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Handler: httpapi.NewServer(chatSvc, cfg.Model, cfg.AllowedOrigins).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Printf("chatbot API listening on %s (model %s)", srv.Addr, cfg.Model)

	select {
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped with error: %v", err)
		}
	}
}
