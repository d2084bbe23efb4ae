package ai

import (
	"context"
	"fmt"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/prepwise/interview-assistant/pkg/config"
)

// Transcriber converts spoken answers to text via AssemblyAI. It is optional:
// a session configured without an API key simply scores the text the client
// supplied.
type Transcriber struct {
	client *aai.Client
}

// NewTranscriber creates a transcriber, or nil when no API key is configured
func NewTranscriber(cfg *config.AssemblyConfig) *Transcriber {
	if cfg.APIKey == "" {
		return nil
	}
	return &Transcriber{client: aai.NewClient(cfg.APIKey)}
}

// TranscribeFromURL submits the audio at audioURL and waits for the text
func (t *Transcriber) TranscribeFromURL(ctx context.Context, audioURL string) (string, error) {
	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, audioURL, &aai.TranscriptOptionalParams{
		Punctuate:  aai.Bool(true),
		FormatText: aai.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		reason := ""
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return "", fmt.Errorf("transcription failed: %s", reason)
	}

	if transcript.Text == nil {
		return "", fmt.Errorf("transcription returned no text")
	}
	return *transcript.Text, nil
}
