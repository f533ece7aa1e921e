// Package chatbot exposes a chat endpoint scoped to the site's published
// content. The language model is an opaque upstream: the package only
// assembles context from published posts, validates input, and relays the
// completion.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// maxMessageLen bounds user input; anything longer is rejected before any
// upstream call is made.
const maxMessageLen = 500

var (
	// ErrEmptyMessage is returned for missing or whitespace-only input.
	ErrEmptyMessage = errors.New("chatbot: message is empty")
	// ErrMessageTooLong is returned when input exceeds maxMessageLen characters.
	ErrMessageTooLong = fmt.Errorf("chatbot: message exceeds %d characters", maxMessageLen)
	// ErrNotConfigured is returned when no API key was provided at startup.
	ErrNotConfigured = errors.New("chatbot: API key not configured")
)

// PostSummary is the slice of a published post folded into the model context.
type PostSummary struct {
	Title      string
	Excerpt    string
	Body       string
	Slug       string
	Categories []string
}

// Source supplies the published posts used to ground the assistant.
type Source func() ([]PostSummary, error)

// Service relays validated user messages to the completion API with a
// system prompt restricting answers to site content.
type Service struct {
	client   anthropic.Client
	model    anthropic.Model
	siteName string
	source   Source
	enabled  bool
}

// New creates a Service. An empty apiKey yields a disabled service whose
// Reply always fails with ErrNotConfigured; the route can still be mounted.
func New(apiKey, model, siteName string, source Source) *Service {
	s := &Service{
		model:    anthropic.ModelClaude3_5HaikuLatest,
		siteName: siteName,
		source:   source,
	}
	if model != "" {
		s.model = anthropic.Model(model)
	}
	if apiKey != "" {
		s.client = anthropic.NewClient(option.WithAPIKey(apiKey))
		s.enabled = true
	}
	return s
}

// ValidateMessage trims the raw message and enforces the input contract.
// It never touches the network.
func ValidateMessage(raw string) (string, error) {
	msg := strings.TrimSpace(raw)
	if msg == "" {
		return "", ErrEmptyMessage
	}
	if len([]rune(msg)) > maxMessageLen {
		return "", ErrMessageTooLong
	}
	return msg, nil
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// buildSystemPrompt folds the published posts into the scoping prompt.
func (s *Service) buildSystemPrompt(posts []PostSummary) string {
	contextText := fmt.Sprintf("Blog %s - contenuti editoriali del sito.", s.siteName)
	if len(posts) > 0 {
		var parts []string
		for _, p := range posts {
			parts = append(parts, fmt.Sprintf(
				"Titolo: %s\nDescrizione: %s\nContenuto: %s\nCategorie: %s\nSlug: %s",
				p.Title, p.Excerpt, truncateRunes(p.Body, 500),
				strings.Join(p.Categories, ", "), p.Slug))
		}
		contextText = strings.Join(parts, "\n\n")
	}

	return fmt.Sprintf(`Sei un assistente virtuale ESCLUSIVAMENTE per il blog %[1]s.

REGOLE RIGOROSE:
- Rispondi SOLO a domande sui contenuti del blog %[1]s
- NON fornire informazioni generali, consigli medici, finanziari o legali
- NON rispondere a domande su argomenti non correlati al blog
- Se richiesto argomenti esterni al blog, rispondi: "Mi dispiace, posso aiutarti solo con i contenuti del blog %[1]s."

Contenuti disponibili nel blog:

%s`, s.siteName, contextText)
}

// Reply validates the message and requests a completion. The message must
// already have passed ValidateMessage; Reply revalidates defensively.
func (s *Service) Reply(ctx context.Context, message string) (string, error) {
	msg, err := ValidateMessage(message)
	if err != nil {
		return "", err
	}
	if !s.enabled {
		return "", ErrNotConfigured
	}

	// Context fetch is best effort: the assistant still answers (with the
	// generic scope line) when the store is unavailable.
	var posts []PostSummary
	if s.source != nil {
		if fetched, err := s.source(); err == nil {
			posts = fetched
		}
	}

	completion, err := s.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     s.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: s.buildSystemPrompt(posts)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(msg)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	var reply strings.Builder
	for _, block := range completion.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}
	return reply.String(), nil
}
