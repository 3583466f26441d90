package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Book is a single catalog record. The persistent store owns the record and
// assigns its identity; cached copies are disposable snapshots and are never
// mutated after they have been written to the cache.
type Book struct {
	ID          string `json:"id" bun:"id,pk" msgpack:"id"`
	Title       string `json:"title" bun:"title,notnull" msgpack:"title"`
	Author      string `json:"author" bun:"author,notnull" msgpack:"author"`
	Genre       string `json:"genre" bun:"genre" msgpack:"genre"`
	Description string `json:"description" bun:"description" msgpack:"description"`
}

// MaxDescriptionLength bounds the free-form description field.
const MaxDescriptionLength = 2000

// Validate checks the field constraints of a record before it is accepted
// into the persistent store.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.ID, validation.Required),
		validation.Field(&b.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&b.Author, validation.Required, validation.Length(1, 255)),
		validation.Field(&b.Genre, validation.Length(0, 100)),
		validation.Field(&b.Description, validation.Length(0, MaxDescriptionLength)),
	)
}
