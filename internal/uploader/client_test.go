package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func TestUpload(t *testing.T) {
	var gotPublicID, gotFolder string
	var gotFile, gotThumb int64
	var gotUser, gotPass string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()

		if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
			t.Errorf("parsing multipart: %v", err)
		}
		gotPublicID = r.FormValue("public_id")
		gotFolder = r.FormValue("folder")
		if f := r.MultipartForm.File["file"]; len(f) == 1 {
			gotFile = f[0].Size
		}
		if f := r.MultipartForm.File["thumbnail"]; len(f) == 1 {
			gotThumb = f[0].Size
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"url":           "https://cdn.example.com/" + gotPublicID + ".jpg",
			"thumbnail_url": "https://cdn.example.com/" + gotPublicID + "_thumb.jpg",
		})
	}))
	defer srv.Close()

	client := New(Config{
		BaseURL:   srv.URL,
		APIKey:    "key",
		APISecret: "secret",
		Folder:    "palomnyk",
	})

	res, err := client.Upload(context.Background(), "photo.jpg", testJPEG(t, 800, 600))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if res.PublicID == "" {
		t.Error("empty public ID")
	}
	if int64(res.Size) != gotFile {
		t.Errorf("Size = %d, uploaded file part = %d bytes", res.Size, gotFile)
	}
	if res.PublicID != gotPublicID {
		t.Errorf("public ID mismatch: result %q, posted %q", res.PublicID, gotPublicID)
	}
	if gotFolder != "palomnyk" {
		t.Errorf("folder = %q, want palomnyk", gotFolder)
	}
	if res.Width != 800 || res.Height != 600 {
		t.Errorf("dimensions = %dx%d, want 800x600", res.Width, res.Height)
	}
	if res.URL == "" || res.ThumbnailURL == "" {
		t.Errorf("missing URLs: %+v", res)
	}
	if gotFile == 0 || gotThumb == 0 {
		t.Error("file or thumbnail part missing from upload")
	}
	if gotThumb >= gotFile {
		t.Errorf("thumbnail (%d bytes) not smaller than original (%d bytes)", gotThumb, gotFile)
	}
	if gotUser != "key" || gotPass != "secret" {
		t.Errorf("basic auth = %q/%q", gotUser, gotPass)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	client := New(Config{BaseURL: "http://unused.invalid"})

	_, err := client.Upload(context.Background(), "notes.txt", []byte("just some text content here"))
	if err == nil {
		t.Fatal("expected error for non-image payload")
	}
}

func TestUploadRejectsOversized(t *testing.T) {
	client := New(Config{BaseURL: "http://unused.invalid"})

	_, err := client.Upload(context.Background(), "big.jpg", make([]byte, MaxUploadSize+1))
	if err == nil {
		t.Fatal("expected error for oversized payload")
	}
}

func TestUploadStorageFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})

	_, err := client.Upload(context.Background(), "photo.jpg", testJPEG(t, 100, 100))
	if err == nil {
		t.Fatal("expected error when storage service fails")
	}
	if !errors.Is(err, ErrStorage) {
		t.Errorf("error %v does not wrap ErrStorage", err)
	}
}

func TestDelete(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL})

	if err := client.Delete(context.Background(), "abc-123"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/images/abc-123" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestConfigured(t *testing.T) {
	if New(Config{}).Configured() {
		t.Error("empty config reported as configured")
	}
	if !New(Config{BaseURL: "https://storage.example.com"}).Configured() {
		t.Error("configured client reported as unconfigured")
	}
}
