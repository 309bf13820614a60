package web

import "strings"

// PageSize - карточек на странице списка
const PageSize = 9

// ListView - состояние страницы списка: весь загруженный список,
// текущая страница и строка поиска. Поиск идет по всему списку
// на стороне страницы и заменяет постраничный вид.
type ListView[T any] struct {
	Items  []T
	Page   int
	Search string

	text func(T) string
}

// NewListView нормализует номер страницы в [1, TotalPages]
func NewListView[T any](items []T, page int, search string, text func(T) string) *ListView[T] {
	v := &ListView[T]{
		Items:  items,
		Search: strings.TrimSpace(search),
		text:   text,
	}
	if page < 1 {
		page = 1
	}
	if total := v.TotalPages(); page > total {
		page = total
	}
	v.Page = page
	return v
}

// SearchMode - непустая строка поиска
func (v *ListView[T]) SearchMode() bool {
	return v.Search != ""
}

// Visible - что показывать: совпадения поиска или срез текущей страницы
func (v *ListView[T]) Visible() []T {
	if v.SearchMode() {
		return v.filtered()
	}
	start := (v.Page - 1) * PageSize
	if start >= len(v.Items) {
		return []T{}
	}
	end := start + PageSize
	if end > len(v.Items) {
		end = len(v.Items)
	}
	return v.Items[start:end]
}

func (v *ListView[T]) filtered() []T {
	needle := strings.ToLower(v.Search)
	out := make([]T, 0)
	for _, item := range v.Items {
		if strings.Contains(strings.ToLower(v.text(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}

// TotalPages - не меньше 1, даже для пустого списка
func (v *ListView[T]) TotalPages() int {
	if len(v.Items) == 0 {
		return 1
	}
	return (len(v.Items) + PageSize - 1) / PageSize
}

func (v *ListView[T]) HasPrev() bool { return !v.SearchMode() && v.Page > 1 }
func (v *ListView[T]) HasNext() bool { return !v.SearchMode() && v.Page < v.TotalPages() }
func (v *ListView[T]) PrevPage() int { return v.Page - 1 }
func (v *ListView[T]) NextPage() int { return v.Page + 1 }

func (v *ListView[T]) Pages() []int {
	pages := make([]int, v.TotalPages())
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}
