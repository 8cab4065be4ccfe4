package domain

import "encoding/json"

// Post is an admin-curated showcase entry credited to a user.
type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	ImageURL    string `json:"imageUrl"`
	CreatorID   string `json:"creatorId"`
	CreatorName string `json:"creatorName"`
	CreatedAt   int64  `json:"createdAt"`
}

// Link is an inspiration link shown on the public site.
type Link struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"createdAt"`
}

// Bio is the singleton about-page copy.
type Bio struct {
	Title     string `json:"title"`
	Tagline   string `json:"tagline"`
	Content   string `json:"content"`
	UpdatedAt int64  `json:"updatedAt"`
}

const (
	DefaultBioTitle   = "Unique Nails"
	DefaultBioTagline = "Unique, That's What You Are"
	DefaultBioContent = "Step into my universe with Unique Nails, where every design is a cosmic celebration of individuality. " +
		"I've been painting my nails since I was a little dreamer, but my true journey began six years ago " +
		"when I unwrapped a nail art kit on Christmas morning. Thanks, Mum, for the best gift ever!"
)

func DefaultBio(now int64) *Bio {
	return &Bio{
		Title:     DefaultBioTitle,
		Tagline:   DefaultBioTagline,
		Content:   DefaultBioContent,
		UpdatedAt: now,
	}
}

func ParsePost(data string) (*Post, error) {
	var p Post
	if err := json.Unmarshal([]byte(data), &p); err != nil || p.ID == "" {
		return nil, ErrCorruptRecord
	}
	return &p, nil
}

func ParseLink(data string) (*Link, error) {
	var l Link
	if err := json.Unmarshal([]byte(data), &l); err != nil || l.ID == "" {
		return nil, ErrCorruptRecord
	}
	return &l, nil
}

func ParseBio(data string) (*Bio, error) {
	var b Bio
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, ErrCorruptRecord
	}
	return &b, nil
}
