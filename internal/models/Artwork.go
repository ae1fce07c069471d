package models

import "time"

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth,omitempty"`
	Unit   string  `json:"unit"`
}

// Artwork carries a denormalized copy of its artist, not a reference.
type Artwork struct {
	ID           ID          `json:"id"`
	Title        string      `json:"title" validate:"required"`
	Description  string      `json:"description"`
	Images       []string    `json:"images"`
	Thumbnail    string      `json:"thumbnail"`
	ArtistID     ID          `json:"artistId" validate:"required"`
	ArtistName   string      `json:"artistName"`
	ArtistAvatar string      `json:"artistAvatar"`
	Categories   []string    `json:"categories"`
	Tags         []string    `json:"tags"`
	Medium       string      `json:"medium"`
	Dimensions   *Dimensions `json:"dimensions,omitempty"`
	Price        *float64    `json:"price,omitempty"`
	Currency     string      `json:"currency,omitempty"`
	Likes        int         `json:"likes"`
	Views        int         `json:"views"`
	Comments     int         `json:"comments"`
	ForSale      bool        `json:"forSale"`
	CreatedAt    time.Time   `json:"createdAt"`
}

func (a *Artwork) Clone() *Artwork {
	if a == nil {
		return nil
	}
	c := *a
	c.Images = append([]string(nil), a.Images...)
	c.Categories = append([]string(nil), a.Categories...)
	c.Tags = append([]string(nil), a.Tags...)
	if a.Dimensions != nil {
		d := *a.Dimensions
		c.Dimensions = &d
	}
	if a.Price != nil {
		p := *a.Price
		c.Price = &p
	}
	return &c
}
