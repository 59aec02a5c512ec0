package repository

import (
	"context"
	"time"
)

// AttemptCounter считает попытки в скользящем по первому обращению окне
type AttemptCounter interface {
	// Hit увеличивает счетчик key и возвращает его значение и время до сброса окна.
	// Окно длиной window начинается с первой попытки.
	Hit(ctx context.Context, key string, window time.Duration) (count int64, resetIn time.Duration, err error)
}
