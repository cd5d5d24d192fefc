package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/naveensh16/sweet-shop-management/internal/notifier"
	"github.com/naveensh16/sweet-shop-management/internal/worker"
	"github.com/naveensh16/sweet-shop-management/pkg/config"
	"github.com/naveensh16/sweet-shop-management/pkg/mq"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL is required for the notify worker")
	}

	queue := envOr("NOTIFY_QUEUE", "sweetshop.notifications")
	keys := []string{"sweet.*"}

	var cons *mq.Consumer
	for {
		cons, err = mq.NewConsumer(cfg.AMQPURL, cfg.AMQPExchange, queue, keys)
		if err == nil {
			break
		}
		log.Printf("[notify] connect failed: %v; retry in 2s", err)
		time.Sleep(2 * time.Second)
	}
	defer cons.Close()

	w := worker.New(cons, notifier.NewConsole())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Run(ctx); err != nil {
			log.Printf("[notify] run error: %v", err)
		}
	}()

	log.Printf("[notify] started. queue=%s exchange=%s keys=%v", queue, cfg.AMQPExchange, keys)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	cancel()
	time.Sleep(200 * time.Millisecond)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
