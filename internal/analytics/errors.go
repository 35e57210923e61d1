package analytics

import (
	"errors"
	"fmt"
)

// ErrUpstreamFetch обозначает сбой источника данных.
// Это единственная фатальная ошибка ядра: она никогда не превращается в пустые данные.
var ErrUpstreamFetch = errors.New("upstream fetch failed")

// FetchError описывает сбой конкретной операции чтения.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrUpstreamFetch, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is сопоставляет FetchError с ErrUpstreamFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrUpstreamFetch
}

func fetchFailed(op string, err error) error {
	if err == nil {
		return nil
	}
	return &FetchError{Op: op, Err: err}
}
