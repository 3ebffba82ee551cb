package generate

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func TestFetchDecodesAndSizesImage(t *testing.T) {
	fixture := pngBytes(t, 64, 48)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(fixture)
	}))
	defer server.Close()

	client := NewClient(server.URL, 512, 512)
	img, err := client.Fetch(context.Background(), "a red fox")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if img.Bounds().Dx() != 512 || img.Bounds().Dy() != 512 {
		t.Errorf("image size = %v, want 512x512", img.Bounds())
	}
}

func TestFetchSendsPromptSeedAndDimensions(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	fixture := pngBytes(t, 8, 8)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write(fixture)
	}))
	defer server.Close()

	client := NewClient(server.URL, 512, 512)
	if _, err := client.Fetch(context.Background(), "neon city at night"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !strings.HasPrefix(gotPath, "/prompt/") {
		t.Errorf("request path = %q, want /prompt/ prefix", gotPath)
	}
	if !strings.Contains(gotPath, "neon") {
		t.Errorf("request path %q does not carry the prompt", gotPath)
	}
	if gotQuery.Get("width") != "512" || gotQuery.Get("height") != "512" {
		t.Errorf("dimensions = %sx%s, want 512x512", gotQuery.Get("width"), gotQuery.Get("height"))
	}
	if gotQuery.Get("seed") == "" {
		t.Error("request is missing the uniqueness seed")
	}
}

func TestFetchErrorOnBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, 512, 512)
	_, err := client.Fetch(context.Background(), "anything")
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}

func TestFetchErrorOnUndecodableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not an image"))
	}))
	defer server.Close()

	client := NewClient(server.URL, 512, 512)
	_, err := client.Fetch(context.Background(), "anything")
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}

func TestBackToBackFetchesIssueOneRequest(t *testing.T) {
	var requests atomic.Int32
	release := make(chan struct{})
	fixture := pngBytes(t, 8, 8)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		w.Write(fixture)
	}))
	defer server.Close()

	client := NewClient(server.URL, 512, 512)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		client.Fetch(context.Background(), "first")
	}()

	// Wait for the first request to reach the server, then fire a second
	// activation while it is still in flight.
	deadline := time.Now().Add(2 * time.Second)
	for requests.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first request never reached the server")
		}
		time.Sleep(time.Millisecond)
	}

	_, err := client.Fetch(context.Background(), "second")
	if !errors.Is(err, ErrFetchInFlight) {
		t.Errorf("second fetch err = %v, want ErrFetchInFlight", err)
	}

	close(release)
	wg.Wait()

	if n := requests.Load(); n != 1 {
		t.Errorf("server saw %d requests, want exactly 1", n)
	}
}
