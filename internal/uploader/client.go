// Package uploader processes admin image uploads and pushes them to the
// external media storage service. Images are decoded, re-encoded without
// metadata, and stored together with a generated thumbnail variant.
package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// MaxUploadSize is the largest accepted image payload.
const MaxUploadSize = 5 << 20 // 5 MB

// Thumbnail variant bounds.
const (
	ThumbWidth  = 400
	ThumbHeight = 400
)

const jpegQuality = 90

// ErrStorage marks failures of the storage service itself, as opposed to
// invalid input.
var ErrStorage = errors.New("storage service error")

// Config holds the storage service connection settings.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Folder    string
}

// Result describes a stored image. Size is the byte count of the re-encoded
// original.
type Result struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	PublicID     string `json:"public_id"`
	Size         int    `json:"size"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
}

// Client talks to the media storage service.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a storage client.
func New(cfg Config) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Configured reports whether the client has a storage endpoint to talk to.
func (c *Client) Configured() bool {
	return c.cfg.BaseURL != ""
}

// storageResponse is the JSON body returned by the storage service.
type storageResponse struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Upload decodes the image, builds a thumbnail variant, and pushes both to
// the storage service under a generated public ID.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) (*Result, error) {
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("image exceeds maximum size of %d bytes", MaxUploadSize)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("unsupported content type %q", contentType)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	bounds := img.Bounds()
	format := formatFromContentType(contentType)

	// Re-encode so EXIF and other metadata never reach the public CDN.
	original, err := encodeImage(img, format)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	thumb := imaging.Fit(img, ThumbWidth, ThumbHeight, imaging.Lanczos)
	thumbData, err := encodeImage(thumb, format)
	if err != nil {
		return nil, fmt.Errorf("encoding thumbnail: %w", err)
	}

	publicID := uuid.New().String()

	resp, err := c.push(ctx, publicID, format, original, thumbData)
	if err != nil {
		return nil, err
	}

	return &Result{
		URL:          resp.URL,
		ThumbnailURL: resp.ThumbnailURL,
		PublicID:     publicID,
		Size:         len(original),
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
	}, nil
}

// push sends the original and thumbnail to the storage service as one
// multipart request.
func (c *Client) push(ctx context.Context, publicID, format string, original, thumb []byte) (*storageResponse, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("public_id", publicID); err != nil {
		return nil, err
	}
	if err := mw.WriteField("folder", c.cfg.Folder); err != nil {
		return nil, err
	}

	fw, err := mw.CreateFormFile("file", publicID+"."+format)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(original); err != nil {
		return nil, err
	}

	tw, err := mw.CreateFormFile("thumbnail", publicID+"_thumb."+format)
	if err != nil {
		return nil, err
	}
	if _, err := tw.Write(thumb); err != nil {
		return nil, err
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/upload", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrStorage, resp.StatusCode, snippet)
	}

	var sr storageResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrStorage, err)
	}
	if sr.URL == "" {
		return nil, fmt.Errorf("%w: response missing url", ErrStorage)
	}

	return &sr, nil
}

// Delete removes a stored image and its thumbnail by public ID.
func (c *Client) Delete(ctx context.Context, publicID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.cfg.BaseURL+"/images/"+publicID, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("storage service returned %d", resp.StatusCode)
	}
	return nil
}

func formatFromContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	default:
		return "jpg"
	}
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
