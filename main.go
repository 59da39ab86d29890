package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Xavierhuang/ScheduleShare/internal/config"
	"github.com/Xavierhuang/ScheduleShare/internal/database"
	"github.com/Xavierhuang/ScheduleShare/internal/extractor"
	"github.com/Xavierhuang/ScheduleShare/internal/gcal"
	"github.com/Xavierhuang/ScheduleShare/internal/geo"
	"github.com/Xavierhuang/ScheduleShare/internal/llm"
	"github.com/Xavierhuang/ScheduleShare/internal/planner"
	"github.com/Xavierhuang/ScheduleShare/internal/server"
	"github.com/Xavierhuang/ScheduleShare/internal/timeutil"
)

func main() {
	cfg := config.LoadFromEnv()

	loc, fallback := timeutil.ResolveLocation(cfg.Timezone)
	if fallback {
		fmt.Printf("Warning: unknown timezone %q, using UTC\n", cfg.Timezone)
	}

	db, err := database.New(cfg.DBPath)
	if err != nil {
		fatal("creating database", err)
	}
	defer db.Close()

	chat := initChatClient(cfg)
	resolver := geo.NewStaticResolver()

	srv := server.New(server.Config{
		DB:         db,
		Extractor:  extractor.New(chat, loc, cfg.MaxExtractTokens),
		Planner:    planner.New(chat, resolver, loc, cfg.MaxRouteTokens),
		GCalClient: initGCal(cfg),
		Location:   loc,
		Port:       cfg.HTTPPort,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "HTTP server error: %v\n", err)
		}
	}()

	waitForShutdown(srv)
}

func initChatClient(cfg *config.Config) llm.ChatClient {
	if cfg.OpenAIAPIKey == "" {
		fmt.Println("Warning: OPENAI_API_KEY not set, extraction and planning will use fallbacks")
		return nil
	}
	return llm.NewClient(cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature)
}

func initGCal(cfg *config.Config) *gcal.Client {
	client, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fmt.Printf("Warning: Google Calendar disabled: %v\n", err)
		return nil
	}
	return client
}

func fatal(context string, err error) {
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}

func waitForShutdown(srv *server.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	fmt.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "HTTP server shutdown error: %v\n", err)
	}
}
