package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"herodex/internal/dataset"
	"herodex/internal/heroes"
	"herodex/internal/options"
	"herodex/internal/session"
	"herodex/pkg/utils"
)

func main() {
	utils.LoadEnv()
	cfg := utils.LoadServerConfig()

	src, closeSrc, err := dataset.OpenSource(cfg.Source, cfg.DBPath, cfg.FetchTimeout)
	if err != nil {
		log.Fatalf("open source failed: %v", err)
	}
	defer closeSrc()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	data, err := dataset.Load(loadCtx, src, log.Default())
	cancelLoad()
	if err != nil {
		log.Fatalf("dataset load failed: %v", err)
	}
	idx := options.Compute(data.Records())

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	hub := session.NewHub(data, log.Default())
	router.GET("/ws", session.WSHandler(hub))
	tcpSrv := session.NewServer(cfg.TCPAddr, hub)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "source": data.Source()})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := hub.Stats()
		if data.Len() == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"error":    "dataset is empty",
				"sessions": stats.Sessions,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"heroes":      data.Len(),
			"loaded_at":   data.LoadedAt(),
			"sessions":    stats.Sessions,
			"ws_clients":  stats.WSClients,
			"tcp_clients": stats.TCPClients,
		})
	})

	heroes.NewHandler(data, idx).RegisterRoutes(router)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("HTTP API server listening on %s", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("shutdown signal received: %s", sig)
	case err := <-errCh:
		log.Printf("server error: %v", err)
	}

	log.Println("shutting down servers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
	if err := tcpSrv.Close(); err != nil {
		log.Printf("tcp shutdown error: %v", err)
	}

	wg.Wait()
	log.Println("servers stopped")
}
