package main

import (
	"log"
	"net/http"
	"strconv"
	"survey-transform-service/internal/adapters/history"
	"survey-transform-service/internal/api"
	"survey-transform-service/internal/config"
	"time"
)

// main is the application composition root.
// It wires the run history store behind its port and starts the HTTP server.
func main() {
	config.LoadEnv()

	port := config.Get(config.KeyPort, "8080")
	maxBody, err := strconv.ParseInt(config.Get(config.KeyMaxBodyBytes, "33554432"), 10, 64)
	if err != nil {
		log.Fatalf("MAX_BODY_BYTES must be an integer: %v", err)
	}

	store, err := history.Open(config.Get(config.KeyHistoryDriver, ""), config.Get(config.KeyHistoryDSN, ""))
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	router := api.NewRouter(store, maxBody)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
