// Package ai implements the retrieval-augmented journal analysis engine.
package ai

import (
	"fmt"

	"github.com/KirillKCrypto/Trading-Journal-APP/internal/models"
)

// RenderTradeDocument produces the deterministic textual form of a trade
// used both as LLM context and as the indexed search unit. Field order
// and labels are fixed; date retrieval scans for the Дата= field.
func RenderTradeDocument(t models.Trade) string {
	notes := t.Notes
	if notes == "" {
		notes = "нет комментария"
	}
	return fmt.Sprintf(
		"СДЕЛКА: Дата=%s, Символ=%s, Направление=%s, R:R=%v, Профит=$%v, Результат=%s, Сессия=%s, Позиция=%s, Комментарий=%s",
		t.DateString(), t.Symbol, t.Direction, t.RR, t.Profit, t.ResultType,
		t.Session, t.Position, notes)
}

// RenderNewsDocument produces the textual form of a calendar event for
// indexing and LLM context.
func RenderNewsDocument(e models.NewsEvent) string {
	return fmt.Sprintf(
		"НОВОСТЬ: Дата=%s, Заголовок=%s, Источник=ForexFactory, Важность=%s, Прогноз=%s, Предыдущее=%s, Фактическое=%s",
		e.Date, e.Title, e.Impact,
		orDefault(e.Forecast, "нет данных"),
		orDefault(e.Previous, "нет данных"),
		orDefault(e.Actual, "ещё не вышло"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
