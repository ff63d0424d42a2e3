package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestUploadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/spaces/space-1/recipes/r1/image" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key-1" {
			t.Errorf("auth = %q", auth)
		}
		f, header, err := r.FormFile("image")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer func() { _ = f.Close() }()
		if header.Filename != "pasta.jpg" {
			t.Errorf("filename = %q", header.Filename)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UploadResult{Reference: "img/abc123.jpg"})
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "key-1", time.Second)
	got, err := u.UploadImage(context.Background(), "space-1", "r1", "pasta.jpg", strings.NewReader("fake-jpeg-bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if got.Reference != "img/abc123.jpg" {
		t.Fatalf("result = %+v", got)
	}
}

func TestUploadImage_NoSpaceFailsFast(t *testing.T) {
	u := NewUploader("http://unused", "key-1", time.Second)
	if _, err := u.UploadImage(context.Background(), "", "r1", "x.jpg", strings.NewReader("x")); err == nil {
		t.Fatal("expected ErrNoActiveSpace")
	}
}
