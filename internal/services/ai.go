package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/studyscribe/studyscribe-api/internal/config"
	"github.com/studyscribe/studyscribe-api/internal/models"
)

// ErrMissingAPIKey short-circuits every AI call made without a stored
// credential. The text doubles as the user-facing message.
var ErrMissingAPIKey = errors.New("API key is missing. Please add your API key in Settings.")

// ErrBadAIResponse marks a reply that arrived but could not be parsed into
// the expected JSON shape. Callers degrade it to an empty result.
var ErrBadAIResponse = errors.New("could not parse AI response")

// AIService wraps the external chat-completion HTTP API. Every call is
// synchronous and cancellable through its context; there is no retry and
// no streaming. The bearer credential is read from the store before each
// request, so a key change applies immediately.
type AIService struct {
	baseURL   string
	model     string
	charLimit int
	client    *http.Client
	apiKey    func() string
}

func NewAIService(cfg *config.Config, apiKey func() string) *AIService {
	return &AIService{
		baseURL:   strings.TrimRight(cfg.AIBaseURL, "/"),
		model:     cfg.AIModel,
		charLimit: cfg.AICharLimit,
		client:    &http.Client{Timeout: 60 * time.Second},
		apiKey:    apiKey,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Summarize produces a prose summary of the given study text.
func (s *AIService) Summarize(ctx context.Context, text string) (string, error) {
	return s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are a helpful assistant that summarizes academic content."},
		{Role: "user", Content: "Please provide a comprehensive summary of the following text: " + s.truncate(text)},
	}, 1000)
}

// CreateFlashcards asks for ten question/answer pairs over the given text.
// An unparseable reply yields an empty set and an error the caller can
// surface as a transient notification.
func (s *AIService) CreateFlashcards(ctx context.Context, text string) ([]models.Flashcard, error) {
	content, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You create educational flashcards from academic content."},
		{Role: "user", Content: "Create 10 flashcards in JSON format with 'question' and 'answer' fields from the following text: " + s.truncate(text)},
	}, 1500)
	if err != nil {
		return nil, err
	}

	var cards []models.Flashcard
	if err := json.Unmarshal([]byte(extractJSONArray(content)), &cards); err != nil {
		return []models.Flashcard{}, fmt.Errorf("%w: %v", ErrBadAIResponse, err)
	}
	return cards, nil
}

// GenerateQuiz asks for five multiple-choice questions over the given text.
func (s *AIService) GenerateQuiz(ctx context.Context, text string) ([]models.QuizQuestion, error) {
	content, err := s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You create educational quizzes from academic content."},
		{Role: "user", Content: "Create a quiz with 5 multiple-choice questions in JSON format. Each question should have a 'question' field, an 'options' array with 4 choices, and a 'correctAnswer' field indicating the index of the correct option. Base this quiz on the following text: " + s.truncate(text)},
	}, 1500)
	if err != nil {
		return nil, err
	}

	var quiz []models.QuizQuestion
	if err := json.Unmarshal([]byte(extractJSONArray(content)), &quiz); err != nil {
		return []models.QuizQuestion{}, fmt.Errorf("%w: %v", ErrBadAIResponse, err)
	}
	return quiz, nil
}

// AskQuestion answers a free-form question grounded in the given text.
func (s *AIService) AskQuestion(ctx context.Context, text, question string) (string, error) {
	return s.complete(ctx, []chatMessage{
		{Role: "system", Content: "You are a helpful assistant that answers questions based on provided text."},
		{Role: "user", Content: fmt.Sprintf("Based on the following text, please answer this question: %q\n\nText: %s", question, s.truncate(text))},
	}, 1000)
}

// Respond continues the assistant conversation. The most recent turns are
// replayed so the model keeps context; subjectContext, when set, names the
// subject the user currently has selected.
func (s *AIService) Respond(ctx context.Context, history []models.ChatMessage, subjectContext string) (string, error) {
	system := "You are a study assistant helping a student organize and understand their coursework."
	if subjectContext != "" {
		system += " The student is currently working on the subject " + strconv.Quote(subjectContext) + "."
	}

	messages := []chatMessage{{Role: "system", Content: system}}
	turns := history
	if len(turns) > 10 {
		turns = turns[len(turns)-10:]
	}
	for _, m := range turns {
		messages = append(messages, chatMessage{Role: m.Role, Content: m.Content})
	}

	return s.complete(ctx, messages, 1000)
}

// complete performs one chat-completion round trip.
func (s *AIService) complete(ctx context.Context, messages []chatMessage, maxTokens int) (string, error) {
	key := s.apiKey()
	if key == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(map[string]any{
		"model":      s.model,
		"messages":   messages,
		"max_tokens": maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API responded with status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices in response")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

// truncate caps prompt text at the configured character budget.
func (s *AIService) truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= s.charLimit {
		return text
	}
	return string(runes[:s.charLimit])
}

// extractJSONArray pulls a JSON array out of a model reply: a fenced
// ```json block when present, otherwise the outermost bracket-delimited
// substring, otherwise the reply as-is.
func extractJSONArray(content string) string {
	if i := strings.Index(content, "```json"); i >= 0 {
		rest := content[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j])
		}
	}

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
