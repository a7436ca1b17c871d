package listing

import (
	"cmp"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparator orders two items; negative when a sorts before b.
type Comparator[T any] func(a, b T) int

// ByText compares a string key with English locale collation.
func ByText[T any](get func(T) string) Comparator[T] {
	var mu sync.Mutex
	col := collate.New(language.English)
	return func(a, b T) int {
		mu.Lock()
		defer mu.Unlock()
		return col.CompareString(get(a), get(b))
	}
}

func ByNumber[T any, N cmp.Ordered](get func(T) N) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(get(a), get(b))
	}
}

func ByDecimal[T any](get func(T) decimal.Decimal) Comparator[T] {
	return func(a, b T) int {
		return get(a).Cmp(get(b))
	}
}

func ByTime[T any](get func(T) time.Time) Comparator[T] {
	return func(a, b T) int {
		return get(a).Compare(get(b))
	}
}

// Desc reverses c.
func Desc[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}
