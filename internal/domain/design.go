package domain

import "encoding/json"

// Known design types. Type is an open set; any non-empty string is valid.
const (
	DesignTypeHolographic = "holographic"
	DesignTypeGemstone    = "gemstone"
	DesignTypeGalaxy      = "galaxy"
	DesignTypeFloral      = "floral"
	DesignTypeFeatured    = "featured"
)

// FingerCount is the number of fingers a design covers, indexed 0..4.
const FingerCount = 5

// FingerDesigns maps a finger index to the design type painted on it.
type FingerDesigns map[int]string

func (f FingerDesigns) Validate() error {
	for idx := range f {
		if idx < 0 || idx >= FingerCount {
			return Validation("Finger index must be between 0 and 4")
		}
	}
	return nil
}

type Design struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          string        `json:"type"`
	OriginalType  string        `json:"originalType,omitempty"`
	CreatedAt     int64         `json:"createdAt"`
	UpdatedAt     int64         `json:"updatedAt"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	Likes         int           `json:"likes"`
	FingerDesigns FingerDesigns `json:"fingerDesigns"`
	Public        bool          `json:"public"`
}

func (d *Design) IsOwnedBy(userID string) bool {
	return userID != "" && d.UserID == userID
}

// ToggleFeatured moves the design into the featured type, remembering the
// type it had, or restores that type if it is already featured.
func (d *Design) ToggleFeatured() {
	if d.Type == DesignTypeFeatured {
		if d.OriginalType != "" {
			d.Type = d.OriginalType
		}
		d.OriginalType = ""
		return
	}
	d.OriginalType = d.Type
	d.Type = DesignTypeFeatured
}

// ParseDesign decodes a stored design record.
func ParseDesign(data string) (*Design, error) {
	var d Design
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, ErrCorruptRecord
	}
	if d.ID == "" || d.UserID == "" || d.Likes < 0 {
		return nil, ErrCorruptRecord
	}
	if err := d.FingerDesigns.Validate(); err != nil {
		return nil, ErrCorruptRecord
	}
	if d.FingerDesigns == nil {
		d.FingerDesigns = FingerDesigns{}
	}
	return &d, nil
}
