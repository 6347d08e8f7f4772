package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestCommandTree(t *testing.T) {
	root := rootCmd()

	for _, path := range [][]string{
		{"tui"},
		{"projects", "page"},
		{"projects", "tagged"},
		{"tasks", "done-all"},
		{"tasks", "clear"},
		{"search"},
		{"profile"},
		{"login"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %v not registered: %v", path, err)
		}
	}
}

func TestMissingToken(t *testing.T) {
	root := rootCmd()
	root.SetArgs([]string{"projects", "list", "--token", ""})

	err := root.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "TASKDECK_TOKEN") {
		t.Fatalf("expected a missing token error, got %v", err)
	}
}

func TestDeleteRefusesOpenWork(t *testing.T) {
	var deletes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
			w.Write([]byte(`{"message":"Project deleted successfully"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"p1","name":"Launch","tags":[],"tasks":[{"id":"t1","projectId":"p1","content":"x","resolved":false}]}`))
	}))
	defer srv.Close()

	root := rootCmd()
	root.SetArgs([]string{"projects", "delete", "p1", "--api-url", srv.URL, "--token", "tok"})
	err := root.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected refusal, got %v", err)
	}
	if deletes.Load() != 0 {
		t.Fatal("project deleted without --force")
	}

	root = rootCmd()
	root.SetArgs([]string{"projects", "delete", "p1", "--force", "--api-url", srv.URL, "--token", "tok"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletes.Load() != 1 {
		t.Errorf("deletes = %d, want 1", deletes.Load())
	}
}

func TestFormatTags(t *testing.T) {
	if got := formatTags([]string{"work", "q3"}); got != "#work #q3" {
		t.Errorf("formatTags = %q", got)
	}
	if got := formatTags(nil); got != "" {
		t.Errorf("formatTags(nil) = %q", got)
	}
}
