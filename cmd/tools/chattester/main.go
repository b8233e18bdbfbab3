package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"

	"github.com/uptura/site/backend/internal/config"
	chatmodel "github.com/uptura/site/backend/internal/model/chat"
	"github.com/uptura/site/backend/internal/model/persona"
	"github.com/uptura/site/backend/internal/service/ai"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	mode := flag.String("mode", "http", "test mode: http, ws or direct")
	baseURL := flag.String("url", "http://localhost:8080", "backend base URL for http/ws modes")
	message := flag.String("message", "What services does Uptura offer?", "message to send")
	repeat := flag.Int("n", 1, "number of times to send the message")
	timeout := flag.Duration("timeout", 45*time.Second, "per-request timeout")
	flag.Parse()

	runID := uuid.NewString()
	log.Printf("[chattester] run=%s mode=%s n=%d", runID, *mode, *repeat)

	ctx := context.Background()

	var send func(ctx context.Context, message string) (int, string, error)
	switch *mode {
	case "http":
		send = httpSender(*baseURL)
	case "ws":
		s, closeFn, err := wsSender(*baseURL)
		if err != nil {
			log.Fatalf("websocket dial failed: %v", err)
		}
		defer closeFn()
		send = s
	case "direct":
		s, err := directSender(ctx)
		if err != nil {
			log.Fatalf("direct mode setup failed: %v", err)
		}
		send = s
	default:
		flag.Usage()
		log.Fatal("choose -mode=http, -mode=ws or -mode=direct")
	}

	for i := 1; i <= *repeat; i++ {
		reqCtx, cancel := context.WithTimeout(ctx, *timeout)
		start := time.Now()
		status, reply, err := send(reqCtx, *message)
		cancel()
		if err != nil {
			log.Fatalf("[chattester] #%d failed: %v", i, err)
		}
		fmt.Printf("#%d status=%d elapsed=%s\n%s\n\n", i, status, time.Since(start).Round(time.Millisecond), reply)
	}
}

func httpSender(baseURL string) func(context.Context, string) (int, string, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/api/chat"
	return func(ctx context.Context, message string) (int, string, error) {
		body, err := json.Marshal(chatmodel.Request{Message: message})
		if err != nil {
			return 0, "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return 0, "", err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return 0, "", err
		}
		defer resp.Body.Close()

		var reply chatmodel.Reply
		if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
			return resp.StatusCode, "", fmt.Errorf("decode reply: %w", err)
		}
		return resp.StatusCode, reply.Reply, nil
	}
}

func wsSender(baseURL string) (func(context.Context, string) (int, string, error), func(), error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/api/chat/ws"
	endpoint = "ws" + strings.TrimPrefix(endpoint, "http")

	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		return nil, nil, err
	}

	send := func(ctx context.Context, message string) (int, string, error) {
		if deadline, ok := ctx.Deadline(); ok {
			conn.SetReadDeadline(deadline)
			conn.SetWriteDeadline(deadline)
		}
		if err := conn.WriteJSON(chatmodel.Request{Message: message}); err != nil {
			return 0, "", err
		}
		var frame struct {
			Reply  string `json:"reply"`
			Status int    `json:"status"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			return 0, "", err
		}
		return frame.Status, frame.Reply, nil
	}

	return send, func() { conn.Close() }, nil
}

// directSender bypasses the HTTP layer and calls the configured provider.
func directSender(ctx context.Context) (func(context.Context, string) (int, string, error), error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] could not load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	completer, err := ai.NewCompleter(ctx, cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("create completer: %w", err)
	}

	svc, err := ai.NewService(completer, cfg.AI, persona.NewMemoryStore(persona.Seed()))
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context, message string) (int, string, error) {
		reply, err := svc.Reply(ctx, message)
		if err != nil {
			return 0, "", err
		}
		return http.StatusOK, reply, nil
	}, nil
}
