package domain

import "time"

// Collection is a user-named, user-ordered grouping of items.
// Names are not unique; the ID is.
type Collection struct {
	// ID is the unique identifier (UUID).
	ID string `json:"id"`

	// Name is the user-chosen name.
	Name string `json:"name"`

	// Color is the display colour in hex notation (e.g. "#ff8800").
	Color string `json:"color"`

	// ItemCount is the number of items in the collection.
	ItemCount int `json:"item_count"`

	// CreatedAt is when the collection was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the name or colour last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// CollectionParams holds user input for creating or editing a collection.
type CollectionParams struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required,hexcolor"`
}
