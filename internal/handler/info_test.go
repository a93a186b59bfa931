package handler

import (
	"context"
	"strings"
	"testing"

	"github.com/pavelc4/nimbus-tg-bot/internal/downloader"
)

func TestInfoCommandRejectsFreeText(t *testing.T) {
	msg := &fakeMessenger{}
	h := newTestHandler(t, msg, &fakeResolver{meta: testMeta()}, &fakeSearcher{}, &fakeBackend{})

	h.HandleInfoCommand(context.Background(), 1, 42, "tester", "just a query")

	if h.infos.Len() != 0 {
		t.Fatalf("free text created an info session")
	}
	if !strings.Contains(msg.texts[0], "Usage") {
		t.Fatalf("usage text: got %q", msg.texts)
	}
}

func TestInfoFlowThroughDownload(t *testing.T) {
	msg := &fakeMessenger{}
	back := &fakeBackend{
		caps:     downloader.Capabilities{VideoHeights: []int{1080, 720}},
		fileSize: 1024,
	}
	h := newTestHandler(t, msg, &fakeResolver{meta: testMeta()}, &fakeSearcher{}, back)

	h.HandleInfoCommand(context.Background(), 1, 42, "tester", "https://youtu.be/dQw4w9WgXcQ")

	if h.infos.Len() != 1 {
		t.Fatalf("info sessions: got %d, want 1", h.infos.Len())
	}
	token := extractToken(t, msg.lastMarkup)
	cb := Callback{ID: "cb", UserID: 42, ChatID: 1, MessageID: 10}

	h.OnInfoAction(context.Background(), cb, token, "ask")
	if !strings.Contains(msg.lastEdit(), "Select file type") {
		t.Fatalf("filetype prompt: got %q", msg.lastEdit())
	}

	h.OnInfoAction(context.Background(), cb, token, "video")
	data := strings.Join(markupData(msg.lastMarkup), " ")
	if !strings.Contains(data, FlowInfoVideo+"|") {
		t.Fatalf("info quality buttons missing: %q", data)
	}
	if h.infos.Len() != 1 {
		t.Fatalf("quality stage consumed the session early")
	}

	h.OnInfoVideoQuality(cb, token, "720p")
	if msg.videos != 1 {
		t.Fatalf("video uploads: got %d, want 1", msg.videos)
	}
	if h.infos.Len() != 0 {
		t.Fatalf("claimed session left in store")
	}
}

func TestInfoActionWrongUser(t *testing.T) {
	msg := &fakeMessenger{}
	h := newTestHandler(t, msg, &fakeResolver{meta: testMeta()}, &fakeSearcher{}, &fakeBackend{})

	h.HandleInfoCommand(context.Background(), 1, 42, "tester", "https://youtu.be/dQw4w9WgXcQ")
	token := extractToken(t, msg.lastMarkup)

	h.OnInfoAction(context.Background(), Callback{ID: "cb", UserID: 777}, token, "ask")

	if !strings.Contains(msg.lastAnswer(), "not your") {
		t.Fatalf("answer: got %q", msg.lastAnswer())
	}
	if h.infos.Len() != 1 {
		t.Fatalf("foreign press consumed the session")
	}
}
