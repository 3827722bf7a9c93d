package response

import "credito_tributario/internal/domain/entities"

// PageResponse wraps one page of a listing.
type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

func FromPage[E, T any](p entities.Page[E], conv func(E) T) PageResponse[T] {
	items := make([]T, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, conv(it))
	}
	pages := 0
	if p.Limit > 0 {
		pages = (p.Total + p.Limit - 1) / p.Limit
	}
	return PageResponse[T]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: pages,
	}
}
