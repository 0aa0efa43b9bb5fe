package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"prom9/internal/fault"
)

// ErrTranscription is the single failure category every transcription
// problem (timeout, connectivity, API error) normalizes to. Callers show
// the message; they never branch on the underlying cause.
var ErrTranscription = errors.New("transcription failed")

// Transcriber converts a captured WAV buffer to text.
type Transcriber interface {
	Transcribe(ctx context.Context, wav []byte) (string, error)
}

// OpenAITranscriber calls an OpenAI-compatible /v1/audio/transcriptions
// endpoint with a multipart upload.
type OpenAITranscriber struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAITranscriber returns a transcriber for the given endpoint, or an
// error when no API key is configured.
func NewOpenAITranscriber(apiKey, baseURL, model string) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fault.DependencyUnavailable("transcripción de voz: falta la API key")
	}
	return &OpenAITranscriber{
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the WAV buffer and returns the transcribed text,
// trimmed. All transport and API failures wrap ErrTranscription.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, wav []byte) (string, error) {
	if len(wav) == 0 {
		return "", fmt.Errorf("%w: audio vacío", ErrTranscription)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", t.model); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	part, err := mw.CreateFormFile("file", "dictado-"+uuid.NewString()+".wav")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if _, err := part.Write(wav); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}

	url := t.baseURL + "/v1/audio/transcriptions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscription, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d: %s", ErrTranscription, resp.StatusCode, truncate(string(data), 200))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: respuesta inesperada: %v", ErrTranscription, err)
	}
	return strings.TrimSpace(parsed.Text), nil
}

// UnavailableTranscriber is the stub used when voice is not configured.
type UnavailableTranscriber struct{}

func (UnavailableTranscriber) Transcribe(context.Context, []byte) (string, error) {
	return "", fault.DependencyUnavailable("transcripción de voz")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
