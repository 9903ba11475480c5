package service

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nourtech/storefront/internal/core/domain"
	"github.com/nourtech/storefront/internal/core/ports"
)

func newTestUploadService(store *stubImageStore) *UploadService {
	svc := NewUploadService(store, zerolog.Nop())
	svc.now = func() time.Time { return time.UnixMilli(1_700_000_000_123) }
	return svc
}

func TestUploadService_DataURI(t *testing.T) {
	store := &stubImageStore{}
	svc := newTestUploadService(store)
	payload := base64.StdEncoding.EncodeToString([]byte("fake-jpeg"))

	url, err := svc.Upload(context.Background(), ports.UploadImageInput{
		Data:     "data:image/jpeg;base64," + payload,
		Filename: "My Laptop  Photo!!.JPG",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if store.name != "1700000000123-my-laptop-photo.jpg" {
		t.Fatalf("unexpected object name %q", store.name)
	}
	if url != "https://cdn.test/"+store.name || string(store.data) != "fake-jpeg" || store.contentType != "image/jpeg" {
		t.Fatalf("unexpected upload url=%q data=%q type=%q", url, store.data, store.contentType)
	}
}

func TestUploadService_ExtensionFromMime(t *testing.T) {
	store := &stubImageStore{}
	svc := newTestUploadService(store)
	payload := base64.StdEncoding.EncodeToString([]byte("webp"))

	if _, err := svc.Upload(context.Background(), ports.UploadImageInput{Data: "data:image/webp;base64," + payload}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if store.name != "1700000000123-upload.webp" {
		t.Fatalf("unexpected object name %q", store.name)
	}
}

func TestUploadService_BareBase64DefaultsToPNG(t *testing.T) {
	store := &stubImageStore{}
	svc := newTestUploadService(store)

	raw := base64.RawStdEncoding.EncodeToString([]byte("png!"))
	if _, err := svc.Upload(context.Background(), ports.UploadImageInput{Data: raw}); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if store.name != "1700000000123-upload.png" || store.contentType != "image/png" {
		t.Fatalf("unexpected name=%q type=%q", store.name, store.contentType)
	}
}

func TestUploadService_Rejections(t *testing.T) {
	svc := newTestUploadService(&stubImageStore{})
	ok := base64.StdEncoding.EncodeToString([]byte("x"))
	huge := base64.StdEncoding.EncodeToString(make([]byte, MaxImageBytes+1))

	cases := map[string]ports.UploadImageInput{
		"empty":        {},
		"bad data uri": {Data: "data:image/png," + ok},
		"bad base64":   {Data: "!!!not base64!!!"},
		"svg":          {Data: "data:image/svg+xml;base64," + ok},
		"gif filename": {Data: ok, Filename: "anim.gif"},
		"too large":    {Data: huge},
		"html as png":  {Data: "data:text/html;base64," + ok, Filename: "x.png"},
		"jpeg as webp": {Data: "data:image/jpeg;base64," + ok, Filename: "x.webp"},
	}
	for name, in := range cases {
		if _, err := svc.Upload(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestUploadService_StoreFailure(t *testing.T) {
	svc := newTestUploadService(&stubImageStore{err: domain.ErrStorageNotConfigured})
	ok := base64.StdEncoding.EncodeToString([]byte("x"))

	if _, err := svc.Upload(context.Background(), ports.UploadImageInput{Data: ok}); !errors.Is(err, domain.ErrStorageNotConfigured) {
		t.Fatalf("expected ErrStorageNotConfigured, got %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"Hello World.PNG":        "hello-world.png",
		"a  -- b.jpg":            "a-b.jpg",
		"ünïcode$%.webp":         "ncode.webp",
		strings.Repeat("a", 100): strings.Repeat("a", 80),
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
