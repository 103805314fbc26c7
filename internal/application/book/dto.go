package book

import (
	"github.com/xiebiao/bookstore-lite/internal/domain/book"
)

// BookView 图书输出DTO
// Availability：0册时为"Out of Stock"，否则为册数
type BookView struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Author       string `json:"author"`
	Copies       int    `json:"copies"`
	Availability string `json:"availability"`
}

func toView(b *book.Book) BookView {
	return BookView{
		ID:           b.ID,
		Name:         b.Name,
		Author:       b.Author,
		Copies:       b.Copies,
		Availability: b.Availability(),
	}
}

func toViews(books []*book.Book) []BookView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = toView(b)
	}
	return views
}
