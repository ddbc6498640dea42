package model

import (
	"time"
)

type PostCategory string

const (
	CategoryArt        PostCategory = "art"
	CategoryTechnology PostCategory = "technology"
	CategoryFood       PostCategory = "food"
	CategoryDesign     PostCategory = "design"
	CategoryCinema     PostCategory = "cinema"
	CategoryScience    PostCategory = "science"
)

// Categories is the fixed set accepted on create and update. The list filter
// stays permissive and simply matches nothing for unknown values.
var Categories = []PostCategory{
	CategoryArt, CategoryTechnology, CategoryFood,
	CategoryDesign, CategoryCinema, CategoryScience,
}

func (c PostCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Post field tags follow the wire names the client expects: desc, img, cat,
// uid. Author fields are only populated by the single-post lookup join.
type Post struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Slug           string       `json:"slug"`
	Body           string       `json:"desc"`
	Image          string       `json:"img"`
	Category       PostCategory `json:"cat"`
	Date           time.Time    `json:"date"`
	AuthorID       string       `json:"uid"`
	AuthorUsername *string      `json:"username,omitempty"`
	AuthorImage    *string      `json:"userImg,omitempty"`
}
