// Package collation упорядочивает названия районов и филиалов по правилам локали,
// как это делает ORDER BY в базе данных.
package collation

import (
	"cmp"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Order сравнивает строки по таблице сопоставления локали.
// collate.Collator не допускает конкурентных вызовов, поэтому доступ к нему сериализован.
type Order struct {
	mu       sync.Mutex
	collator *collate.Collator
}

// New создает Order для локали tag.
func New(tag language.Tag) *Order {
	return &Order{collator: collate.New(tag)}
}

// Compare возвращает -1, 0 или 1. Строки, равные по сопоставлению,
// упорядочиваются побайтово, чтобы сортировка оставалась детерминированной.
func (o *Order) Compare(a, b string) int {
	o.mu.Lock()
	c := o.collator.CompareString(a, b)
	o.mu.Unlock()
	return cmp.Or(c, cmp.Compare(a, b))
}
