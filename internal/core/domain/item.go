package domain

import "time"

// Item is a cached catalog record describing an externally sourced entry.
// Items are created and refreshed by the item cache and never deleted explicitly.
type Item struct {
	// ID is the marketplace identifier. Unique and immutable.
	ID int64 `json:"id" validate:"gt=0"`

	// Name is the display name of the item.
	Name string `json:"name" validate:"required"`

	// Price is the listed price in yen. Zero means the item is free.
	Price int `json:"price" validate:"gte=0"`

	// Category is the marketplace category name, may be empty.
	Category string `json:"category_name"`

	// ShopName is the name of the shop selling the item.
	ShopName string `json:"shop_name"`

	// ShopURL links to the shop page.
	ShopURL string `json:"shop_url,omitempty"`

	// URL links to the item page.
	URL string `json:"url,omitempty"`

	// ThumbnailURL is the primary image used for list views.
	ThumbnailURL string `json:"thumbnail_url,omitempty"`

	// Images holds every image URL in display order.
	Images []string `json:"images"`

	// WishListsCount is the marketplace wish list count when it has been fetched.
	WishListsCount *int `json:"wish_lists_count,omitempty" validate:"omitempty,gte=0"`

	// LastCachedAt is when the record was last written by the cache.
	LastCachedAt time.Time `json:"last_cached_at"`
}

// IsFree returns true if the item has no price.
func (i *Item) IsFree() bool {
	return i.Price == 0
}

// Thumbnail returns the thumbnail URL, falling back to the first image.
func (i *Item) Thumbnail() string {
	if i.ThumbnailURL != "" {
		return i.ThumbnailURL
	}
	if len(i.Images) > 0 {
		return i.Images[0]
	}
	return ""
}
