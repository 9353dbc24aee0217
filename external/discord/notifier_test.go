package discord

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jverhelst/scorecast/internal/platform/logging"
)

func TestSendChannelMessage(t *testing.T) {
	var gotAuth, gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"id": "msg1"}`))
	}))
	t.Cleanup(server.Close)

	notifier := NewNotifier(NotifierConfig{
		BaseURL:   server.URL,
		BotToken:  "bot-token",
		ChannelID: "chan-1",
		Logger:    logging.NewNop(),
	})

	if err := notifier.SendChannelMessage(context.Background(), "hello"); err != nil {
		t.Fatalf("SendChannelMessage: %v", err)
	}
	if gotAuth != "Bot bot-token" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotPath != "/channels/chan-1/messages" {
		t.Fatalf("path = %q", gotPath)
	}
	if !strings.Contains(gotBody, `"content":"hello"`) {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestSendDirectMessageOpensAndCachesChannel(t *testing.T) {
	var opens atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/@me/channels":
			opens.Add(1)
			_, _ = w.Write([]byte(`{"id": "dm-42"}`))
		case "/channels/dm-42/messages":
			_, _ = w.Write([]byte(`{"id": "msg1"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	notifier := NewNotifier(NotifierConfig{
		BaseURL:  server.URL,
		BotToken: "bot-token",
		Logger:   logging.NewNop(),
	})

	ctx := context.Background()
	if err := notifier.SendDirectMessage(ctx, "user-1", "first"); err != nil {
		t.Fatalf("first DM: %v", err)
	}
	if err := notifier.SendDirectMessage(ctx, "user-1", "second"); err != nil {
		t.Fatalf("second DM: %v", err)
	}
	if opens.Load() != 1 {
		t.Fatalf("channel opens = %d, want 1 (cached)", opens.Load())
	}
}

func TestSendChannelMessageErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "Missing Access"}`))
	}))
	t.Cleanup(server.Close)

	notifier := NewNotifier(NotifierConfig{
		BaseURL:   server.URL,
		ChannelID: "chan-1",
		Logger:    logging.NewNop(),
	})

	err := notifier.SendChannelMessage(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "status=403") {
		t.Fatalf("err = %v, want 403 status error", err)
	}
}

func TestSendChannelMessageRequiresChannel(t *testing.T) {
	notifier := NewNotifier(NotifierConfig{Logger: logging.NewNop()})
	if err := notifier.SendChannelMessage(context.Background(), "hello"); err == nil {
		t.Fatal("want error without configured channel")
	}
}
