package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// fakeEncoder derives a stable vector from the text length so tests are
// deterministic without a real embedding service.
type fakeEncoder struct {
	err error
}

func (f *fakeEncoder) Encode(_ context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), float32(strings.Count(text, "a"))}, nil
}

func (f *fakeEncoder) Dimension() int { return 2 }

// echoLLM returns the composed prompt so tests can assert on routing.
type echoLLM struct {
	err      error
	lastCall string
}

func (e *echoLLM) Complete(_ context.Context, prompt string) (string, error) {
	e.lastCall = prompt
	if e.err != nil {
		return "", e.err
	}
	return prompt, nil
}

func (e *echoLLM) Model() string { return "test-model" }

type staticNews struct {
	events []models.NewsEvent
}

func (s *staticNews) Latest(limit int) []models.NewsEvent {
	if limit > 0 && limit < len(s.events) {
		return s.events[:limit]
	}
	return s.events
}

func sampleTrades() []models.Trade {
	return []models.Trade{
		{
			Date:       time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC),
			Symbol:     "EURUSD",
			Direction:  "long",
			RR:         2.5,
			ResultType: models.ResultTakeProfit,
			Session:    "Лондон",
			Position:   "intraday",
		},
		{
			Date:       time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
			Symbol:     "GBPUSD",
			Direction:  "short",
			RR:         1.5,
			ResultType: models.ResultStopLoss,
			Session:    "Нью-Йорк",
			Position:   "intraday",
			Notes:      "поспешил со входом",
		},
	}
}

func TestAnalyzeEmptyJournal(t *testing.T) {
	llm := &echoLLM{}
	eng, err := NewEngine(context.Background(), nil, nil, &fakeEncoder{}, llm, EngineConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got := eng.Analyze(context.Background(), "как дела с моими сделками")
	if !strings.Contains(got, "отсутствуют сделки для анализа") {
		t.Errorf("expected no-data prompt to reach the LLM, got:\n%s", got)
	}
}

func TestAnalyzeWithoutLLM(t *testing.T) {
	eng, err := NewEngine(context.Background(), sampleTrades(), nil, &fakeEncoder{}, nil, EngineConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	if got := eng.Analyze(context.Background(), "проанализируй мои сделки"); got != UnavailableMessage {
		t.Errorf("Analyze = %q, want unavailability message", got)
	}
}

func TestAnalyzeLLMFailure(t *testing.T) {
	llm := &echoLLM{err: errors.New("upstream 502")}
	eng, err := NewEngine(context.Background(), sampleTrades(), nil, &fakeEncoder{}, llm, EngineConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	if got := eng.Analyze(context.Background(), "проанализируй мои сделки"); got != UnavailableMessage {
		t.Errorf("Analyze = %q, want unavailability message", got)
	}
}

func TestAnalyzeNewsPrecedence(t *testing.T) {
	news := &staticNews{events: []models.NewsEvent{
		{Date: "2025-07-10", Title: "CPI m/m", Impact: models.ImpactHigh, Country: "USD"},
	}}
	llm := &echoLLM{}
	eng, err := NewEngine(context.Background(), sampleTrades(), news, &fakeEncoder{}, llm, EngineConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	// Date plus news keyword sets both needs; news must win the route.
	got := eng.Analyze(context.Background(), "новости за 10.07.2025")
	if !strings.Contains(got, "НОВОСТЬ: Дата=2025-07-10, Заголовок=CPI m/m") {
		t.Errorf("expected news evidence in prompt, got:\n%s", got)
	}
	if strings.Contains(llm.lastCall, "трейдер-наставник") {
		t.Error("trade prompt used where news prompt was expected")
	}
}

func TestAnalyzeCleansResponse(t *testing.T) {
	llm := &echoLLM{}
	eng, err := NewEngine(context.Background(), nil, nil, &fakeEncoder{}, llm, EngineConfig{}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got := eng.Analyze(context.Background(), "что такое риск-менеджмент")
	if strings.Contains(got, "\n\n\n") {
		t.Error("blank-line runs should collapse to a single blank line")
	}
}

func TestNewEngineEncoderFailure(t *testing.T) {
	enc := &fakeEncoder{err: errors.New("encoder offline")}
	_, err := NewEngine(context.Background(), sampleTrades(), nil, enc, &echoLLM{}, EngineConfig{}, zerolog.Nop())
	if err == nil {
		t.Fatal("expected construction error when trade embedding fails")
	}
}

func TestCleanResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"blank runs collapse", "a\n\n\n\nb", "a\n\nb"},
		{"spaces collapse", "a   \t b", "a b"},
		{"trimmed", "  ответ  \n", "ответ"},
		{"empty", "", ""},
		{"single newline kept", "a\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanResponse(tt.in); got != tt.want {
				t.Errorf("CleanResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderTradeDocument(t *testing.T) {
	trade := sampleTrades()[1]
	doc := RenderTradeDocument(trade)

	for _, want := range []string{
		"СДЕЛКА:",
		"Дата=2025-07-10",
		"Символ=GBPUSD",
		"Результат=SL",
		"Комментарий=поспешил со входом",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}

	empty := sampleTrades()[0]
	if !strings.Contains(RenderTradeDocument(empty), "Комментарий=нет комментария") {
		t.Error("empty notes should render the default comment")
	}
}

func TestRenderNewsDocument(t *testing.T) {
	doc := RenderNewsDocument(models.NewsEvent{
		Date: "2025-07-10", Title: "NFP", Impact: models.ImpactHigh,
		Forecast: "200K", Previous: "180K",
	})
	for _, want := range []string{
		"НОВОСТЬ:",
		"Источник=ForexFactory",
		"Прогноз=200K",
		"Фактическое=ещё не вышло",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
}

func TestEmbedAllPreservesOrder(t *testing.T) {
	enc := &fakeEncoder{}
	docs := []string{"a", "bb", "ccc", "dddd", "eeeee", "ffffff"}

	vectors, err := embedAll(context.Background(), enc, docs, 3)
	if err != nil {
		t.Fatalf("embedAll: %v", err)
	}
	if len(vectors) != len(docs) {
		t.Fatalf("got %d vectors, want %d", len(vectors), len(docs))
	}
	for i, doc := range docs {
		if vectors[i][0] != float32(len(doc)) {
			t.Errorf("vector %d does not match document %q", i, doc)
		}
	}
}
