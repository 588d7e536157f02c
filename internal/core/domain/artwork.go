package domain

import "encoding/json"

// Category is the artwork medium offered by the upload form. The server
// stores whatever string it receives.
type Category string

const (
	CategoryDigital   Category = "Digital"
	CategoryPainting  Category = "Painting"
	CategorySculpture Category = "Sculpture"
)

// PlaceholderArtworkImage is used for uploads submitted without an image.
const PlaceholderArtworkImage = "https://images.unsplash.com/photo-1549490349-8643362247b5?w=800"

// Artwork is the client's typed view of a stored artwork record.
type Artwork struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	Price    Price    `json:"price"`
	Category Category `json:"category"`
	Img      string   `json:"img"`
}

// SeedArtworks returns the records written to a freshly created artwork
// collection.
func SeedArtworks() []Document {
	return []Document{
		{
			"id":       json.Number("1"),
			"title":    "Cyber Punk City",
			"artist":   "Demo Artist",
			"price":    json.Number("2400"),
			"category": string(CategoryDigital),
			"img":      "https://images.unsplash.com/photo-1550684848-fac1c5b4e853?w=800",
		},
		{
			"id":       json.Number("2"),
			"title":    "Abstract Blue",
			"artist":   "Demo Artist",
			"price":    json.Number("1200"),
			"category": string(CategoryPainting),
			"img":      "https://images.unsplash.com/photo-1541963463532-d68292c34b19?w=800",
		},
	}
}
