// Package analytics содержит ядро анализа филиалов: расчёт скользящего окна,
// агрегацию месячных записей, производные показатели и генерацию рекомендаций.
// Ядро не выполняет ввод-вывод: данные поступают через DataSource.
package analytics

import (
	"time"

	"github.com/akozadaev/go_branch_analytics/internal/models"
)

// DefaultWindowLength используется для любых недопустимых длин окна.
const DefaultWindowLength = 12

// NormalizeWindowLength приводит длину окна к допустимому значению (6 или 12).
func NormalizeWindowLength(length int) int {
	switch length {
	case 6, 12:
		return length
	default:
		return DefaultWindowLength
	}
}

// ResolveWindow вычисляет включающее окно из length месяцев.
// Если reference равен nil, окно заканчивается текущим месяцем (UTC).
func ResolveWindow(length int, reference *models.MonthIndex, now time.Time) models.Window {
	length = NormalizeWindowLength(length)

	end := models.CurrentMonthIndex(now)
	if reference != nil {
		end = *reference
	}

	return models.Window{
		Length: length,
		Start:  end - models.MonthIndex(length-1),
		End:    end,
	}
}
