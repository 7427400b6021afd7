package catalog

import (
	"slices"
	"strings"

	"github.com/aegislib/circulation/library/core"
)

// Catalog is an immutable, ordered set of books.
type Catalog struct {
	books map[core.BookIDString]core.Book
	order []core.BookIDString
}

// New validates every book and rejects duplicate ids with a ConflictError.
func New(books []core.Book) (*Catalog, error) {
	c := &Catalog{
		books: make(map[core.BookIDString]core.Book, len(books)),
		order: make([]core.BookIDString, 0, len(books)),
	}

	for _, book := range books {
		if err := book.Validate(); err != nil {
			return nil, err
		}

		if _, exists := c.books[book.ID]; exists {
			return nil, core.NewConflictError(core.EntityBook, "id", book.ID)
		}

		book.Mood = slices.Clone(book.Mood)
		c.books[book.ID] = book
		c.order = append(c.order, book.ID)
	}

	return c, nil
}

// Book returns the book with id.
func (c *Catalog) Book(id core.BookIDString) (core.Book, bool) {
	book, ok := c.books[id]
	if !ok {
		return core.Book{}, false
	}

	book.Mood = slices.Clone(book.Mood)

	return book, true
}

// TitleOf returns the title of the book with id, or core.UnknownBookTitle.
func (c *Catalog) TitleOf(id core.BookIDString) string {
	if book, ok := c.books[id]; ok && book.Title != "" {
		return book.Title
	}

	return core.UnknownBookTitle
}

// Books returns all books in insertion order.
func (c *Catalog) Books() []core.Book {
	books := make([]core.Book, 0, len(c.order))
	for _, id := range c.order {
		book, _ := c.Book(id)
		books = append(books, book)
	}

	return books
}

// Search is a case-insensitive partial match on title, author or ISBN, in insertion order.
func (c *Catalog) Search(text string, limit int) []core.Book {
	needle := strings.ToLower(strings.TrimSpace(text))
	books := make([]core.Book, 0)

	for _, id := range c.order {
		if limit > 0 && len(books) >= limit {
			break
		}

		book := c.books[id]
		if needle == "" ||
			strings.Contains(strings.ToLower(book.Title), needle) ||
			strings.Contains(strings.ToLower(book.Author), needle) ||
			strings.Contains(strings.ToLower(book.ISBN), needle) {

			found, _ := c.Book(id)
			books = append(books, found)
		}
	}

	return books
}

func (c *Catalog) Len() int {
	return len(c.order)
}
