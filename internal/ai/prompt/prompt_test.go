package prompt

import (
	"strings"
	"testing"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

func TestTradesFallsBackWithoutEvidence(t *testing.T) {
	qi := models.QueryIntent{Topic: models.TopicAnalysis, NeedsTrades: true}

	got := Trades("покажи мои сделки", nil, qi)
	if !strings.Contains(got, "отсутствуют сделки для анализа") {
		t.Errorf("expected no-data fallback, got:\n%s", got)
	}
	if !strings.Contains(got, "покажи мои сделки") {
		t.Error("fallback prompt should quote the original query")
	}
}

func TestTradesNumbersEvidence(t *testing.T) {
	qi := models.QueryIntent{Topic: models.TopicAnalysis, NeedsTrades: true}
	trades := []string{
		"СДЕЛКА: Дата=2025-07-10, Символ=EURUSD",
		"СДЕЛКА: Дата=2025-07-09, Символ=GBPUSD",
	}

	got := Trades("анализ", trades, qi)
	if !strings.Contains(got, "1. СДЕЛКА: Дата=2025-07-10") {
		t.Error("first trade should be numbered 1")
	}
	if !strings.Contains(got, "2. СДЕЛКА: Дата=2025-07-09") {
		t.Error("second trade should be numbered 2")
	}
	if !strings.Contains(got, "трейдер-наставник") {
		t.Error("mentor persona missing from prompt")
	}
}

func TestTradesTopicInstruction(t *testing.T) {
	trades := []string{"СДЕЛКА: Дата=2025-07-10, Символ=EURUSD"}

	tests := []struct {
		topic models.Topic
		want  string
	}{
		{models.TopicAnalysis, "детальный анализ"},
		{models.TopicPsychology, "психологических аспектах"},
		{models.TopicMistakes, "системные ошибки"},
		{models.TopicGeneral, "контекст сделок для примеров"},
		// Unknown topics use the general instruction.
		{models.Topic("unknown"), "контекст сделок для примеров"},
	}
	for _, tt := range tests {
		qi := models.QueryIntent{Topic: tt.topic}
		got := Trades("вопрос", trades, qi)
		if !strings.Contains(got, tt.want) {
			t.Errorf("topic %q: prompt missing %q", tt.topic, tt.want)
		}
	}
}

func TestTradesDateFocus(t *testing.T) {
	trades := []string{"СДЕЛКА: Дата=2025-07-10, Символ=EURUSD"}
	qi := models.QueryIntent{Topic: models.TopicAnalysis, Date: "10.07.2025"}

	got := Trades("что было 10.07.2025", trades, qi)
	if !strings.Contains(got, "за дату 10.07.2025") {
		t.Error("date-focused instruction missing")
	}

	qi.Date = ""
	got = Trades("анализ", trades, qi)
	if strings.Contains(got, "за дату") {
		t.Error("date instruction should be absent without a date")
	}
}

func TestNews(t *testing.T) {
	t.Run("with events", func(t *testing.T) {
		news := []string{"НОВОСТЬ: Дата=2025-07-10, Заголовок=CPI"}
		got := News("новости", news)
		if !strings.Contains(got, "1. НОВОСТЬ: Дата=2025-07-10") {
			t.Error("news evidence should be numbered")
		}
		if !strings.Contains(got, "финансовый аналитик") {
			t.Error("analyst persona missing")
		}
	})

	t.Run("without events", func(t *testing.T) {
		got := News("новости", nil)
		if !strings.Contains(got, "новости не загружены") {
			t.Error("no-news fallback wording missing")
		}
	})
}
