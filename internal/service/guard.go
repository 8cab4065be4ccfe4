package service

import "github.com/dom/unique-nails/internal/domain"

// CanReadDesign reports whether viewer may see d. A nil viewer is anonymous.
func CanReadDesign(viewer *domain.Identity, d *domain.Design) bool {
	return d.Public || CanModifyDesign(viewer, d)
}

// CanModifyDesign reports whether viewer owns d. Visibility plays no part.
func CanModifyDesign(viewer *domain.Identity, d *domain.Design) bool {
	return viewer != nil && d.IsOwnedBy(viewer.UserID)
}
