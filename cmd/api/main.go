package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/sessions"

	"forum-api/core"
)

func main() {
	cfg := core.Load()
	ctx := context.Background()

	logCloser, err := core.SetupLogging(cfg, "api.log")
	if err != nil {
		log.Fatalf("failed to setup logging: %v", err)
	}
	defer logCloser.Close()

	db, err := core.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	redisClient, err := core.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer redisClient.Close()

	// Gorilla cookie store carries only the session id; session records live
	// server-side in Redis.
	store := sessions.NewCookieStore([]byte(cfg.SessionKey))

	sessionStore, err := core.NewRedisSessionStore(redisClient, time.Duration(cfg.SessionTTLSec)*time.Second)
	if err != nil {
		log.Fatalf("failed to build session store: %v", err)
	}

	profileRepo := core.NewPgProfileRepository(db)
	signIn := core.NewSignInService(profileRepo, sessionStore, core.RandomSignatureSource{})

	if err := core.BootstrapSeed(ctx, profileRepo, cfg); err != nil {
		log.Fatalf("bootstrap seed failed: %v", err)
	}

	router := core.NewRouter(cfg, store, signIn, sessionStore)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("starting api server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
