// Package prompt renders language-model prompts for journal analysis.
//
// Every template degrades gracefully: missing evidence selects an
// explicit fallback wording instead of producing an empty context block.
package prompt

import (
	"fmt"
	"strings"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// Topic-specific instruction blocks for the trade-analysis prompt.
var topicInstructions = map[models.Topic]string{
	models.TopicAnalysis:   "Проведи детальный анализ представленных сделок. Выяви паттерны, сильные стороны и зоны роста. Будь конкретен и дай практические рекомендации.",
	models.TopicPsychology: "Сфокусируйся на психологических аспектах трейдинга. Проанализируй эмоциональные паттерны и дай советы по улучшению психологической устойчивости.",
	models.TopicMistakes:   "Выяви системные ошибки и слабые места. Предложи конкретные шаги по исправлению и улучшению торговой дисциплины.",
	models.TopicGeneral:    "Ответь на вопрос, используя контекст сделок для примеров. Будь поддерживающим и практичным.",
}

// Trades renders the adaptive trade-analysis prompt. When evidence is
// required but absent, the no-data fallback is returned instead.
func Trades(query string, trades []string, queryIntent models.QueryIntent) string {
	if len(trades) == 0 && queryIntent.NeedsTrades {
		return NoTradeData(query)
	}

	var context strings.Builder
	for i, trade := range trades {
		fmt.Fprintf(&context, "%d. %s\n", i+1, trade)
	}

	instruction, ok := topicInstructions[queryIntent.Topic]
	if !ok {
		instruction = topicInstructions[models.TopicGeneral]
	}

	if queryIntent.HasDate() {
		instruction += fmt.Sprintf("\n\nПользователь запросил анализ конкретно за дату %s. Сфокусируйся на сделках за эту дату и дай детальный разбор именно этих операций.", queryIntent.Date)
	}

	return fmt.Sprintf(`Ты - опытный трейдер-наставник с глубоким пониманием рынков и психологии трейдинга.

Пользовательский запрос: "%s"

Контекст сделок:
%s

%s

Требования к ответу:
- Используй естественный, поддерживающий тон общения
- Обращайся к пользователю на "ты"
- Будь конкретен и практичен
- Используй 2-3 эмодзи для эмоциональных акцентов
- Структурируй ответ логически, но без жестких шаблонов
- Сфокусируйся на самых важных insights
- Предлагай actionable рекомендации

Ответь так, как будто даешь совет коллеге-трейдеру.`, query, context.String(), instruction)
}

// News renders the news-analysis prompt, falling back to an explicit
// no-data wording when no events were retrieved.
func News(query string, news []string) string {
	if len(news) == 0 {
		return fmt.Sprintf(`Пользователь запросил: "%s"

В настоящий момент новости не загружены или отсутствуют релевантные данные.

Предложи пользователю:
- Уточнить период для анализа новостей
- Задать вопрос о текущей рыночной ситуации
- Обратиться к другим аспектам трейдинга`, query)
	}

	var context strings.Builder
	for i, item := range news {
		fmt.Fprintf(&context, "%d. %s\n", i+1, item)
	}

	return fmt.Sprintf(`Ты - опытный финансовый аналитик. Пользователь запросил: "%s"

Актуальные новости для анализа:
%s

Проанализируй эти новости и:
1. Выдели ключевые события, влияющие на рынки
2. Оцени потенциальное влияние на основные активы (акции, валюты, индексы)
3. Дай практические рекомендации для трейдеров
4. Укажи на возможные риски и возможности

Будь конкретен и используй только предоставленные данные.`, query, context.String())
}

// NoTradeData renders the fallback prompt for an empty trade journal.
func NoTradeData(query string) string {
	return fmt.Sprintf(`Пользователь запросил: "%s"

В настоящий момент в базе данных отсутствуют сделки для анализа.

Вежливо сообщи об этом пользователю и предложи:
- Добавить сделки в торговый журнал
- Уточнить критерии поиска
- Задать общий вопрос о трейдинге

Будь поддерживающим и предложи альтернативные варианты помощи.`, query)
}
