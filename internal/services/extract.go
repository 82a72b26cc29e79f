package services

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/studyscribe/studyscribe-api/internal/config"
)

// TextExtractionService pulls plain text out of uploaded PDF files via an
// Apache Tika server. Extraction failures are reported, never retried.
type TextExtractionService struct {
	tikaURL string
	client  *http.Client
}

func NewTextExtractionService(cfg *config.Config) *TextExtractionService {
	return &TextExtractionService{
		tikaURL: cfg.TikaURL,
		client:  &http.Client{},
	}
}

func (s *TextExtractionService) ExtractText(ctx context.Context, file io.Reader) (string, error) {
	if seeker, ok := file.(io.Seeker); ok {
		seeker.Seek(0, io.SeekStart)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.tikaURL+"/tika", file)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/plain")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(bytes.TrimSpace(body)), nil
}
