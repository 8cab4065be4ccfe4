package service

import (
	"cmp"
	"context"
	"errors"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/repository"
	"github.com/google/uuid"
)

var ErrNotOwner = domain.Unauthorized("Unauthorized")

type DesignService struct {
	designRepo repository.DesignRepository
	userRepo   repository.UserRepository
	likeRepo   repository.LikeRepository
}

func NewDesignService(designRepo repository.DesignRepository, userRepo repository.UserRepository, likeRepo repository.LikeRepository) *DesignService {
	return &DesignService{
		designRepo: designRepo,
		userRepo:   userRepo,
		likeRepo:   likeRepo,
	}
}

type DesignInput struct {
	Name          string
	Type          string
	FingerDesigns domain.FingerDesigns
	// Public defaults to true when nil.
	Public *bool
}

// DesignPatch holds optional changes. Empty strings and a nil map or
// pointer leave the field as it was.
type DesignPatch struct {
	Name          string
	Type          string
	FingerDesigns domain.FingerDesigns
	Public        *bool
}

type DesignQuery struct {
	Page   int
	Limit  int
	Type   string
	UserID string
}

type LikeResult struct {
	Liked bool
	Likes int
}

// List returns the public listing: exact-match filters first, then public
// designs only, newest first.
func (s *DesignService) List(ctx context.Context, q DesignQuery) (Page[*domain.Design], error) {
	all, err := s.designRepo.List(ctx)
	if err != nil {
		return Page[*domain.Design]{}, err
	}

	matched := make([]*domain.Design, 0, len(all))
	for _, d := range all {
		if q.Type != "" && d.Type != q.Type {
			continue
		}
		if q.UserID != "" && d.UserID != q.UserID {
			continue
		}
		if !d.Public {
			continue
		}
		matched = append(matched, d)
	}
	sortNewestFirst(matched)

	return Paginate(matched, q.Page, q.Limit)
}

func (s *DesignService) Get(ctx context.Context, viewer *domain.Identity, id string) (*domain.Design, error) {
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanReadDesign(viewer, design) {
		return nil, ErrNotOwner
	}
	return design, nil
}

func (s *DesignService) Create(ctx context.Context, viewer *domain.Identity, input DesignInput) (*domain.Design, error) {
	if viewer == nil {
		return nil, ErrInvalidSession
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Type) == "" {
		return nil, domain.Validation("Name and type are required")
	}
	return s.create(ctx, viewer.UserID, input)
}

func (s *DesignService) Update(ctx context.Context, viewer *domain.Identity, id string, patch DesignPatch) (*domain.Design, error) {
	if viewer == nil {
		return nil, ErrInvalidSession
	}
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanModifyDesign(viewer, design) {
		return nil, ErrNotOwner
	}
	return s.applyPatch(ctx, design, patch)
}

func (s *DesignService) Delete(ctx context.Context, viewer *domain.Identity, id string) error {
	if viewer == nil {
		return ErrInvalidSession
	}
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !CanModifyDesign(viewer, design) {
		return ErrNotOwner
	}
	return s.remove(ctx, design)
}

// ToggleLike flips the viewer's like marker and moves the counter by one,
// never below zero. The marker flip is undone if the counter write fails.
// The counter update is read-modify-write and can lose a concurrent toggle
// on the same design.
func (s *DesignService) ToggleLike(ctx context.Context, viewer *domain.Identity, id string) (*LikeResult, error) {
	if viewer == nil {
		return nil, ErrInvalidSession
	}
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanReadDesign(viewer, design) {
		return nil, ErrNotOwner
	}

	liked, err := s.likeRepo.Exists(ctx, design.ID, viewer.UserID)
	if err != nil {
		return nil, err
	}

	comp := repository.NewCompensator("service.DesignService.ToggleLike")
	defer comp.RollbackUnlessCommitted(ctx)

	if liked {
		if err := s.likeRepo.Delete(ctx, design.ID, viewer.UserID); err != nil {
			return nil, err
		}
		comp.Add(func(ctx context.Context) error {
			return s.likeRepo.Put(ctx, design.ID, viewer.UserID, time.Now().UnixMilli())
		})
		design.Likes = max(0, design.Likes-1)
	} else {
		if err := s.likeRepo.Put(ctx, design.ID, viewer.UserID, time.Now().UnixMilli()); err != nil {
			return nil, err
		}
		comp.Add(func(ctx context.Context) error {
			return s.likeRepo.Delete(ctx, design.ID, viewer.UserID)
		})
		design.Likes++
	}

	if err := s.designRepo.Update(ctx, design); err != nil {
		return nil, err
	}
	comp.Commit()

	return &LikeResult{Liked: !liked, Likes: design.Likes}, nil
}

// AdminList returns every design, public or not, newest first.
func (s *DesignService) AdminList(ctx context.Context) ([]*domain.Design, error) {
	all, err := s.designRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sortNewestFirst(all)
	return all, nil
}

func (s *DesignService) AdminGet(ctx context.Context, id string) (*domain.Design, error) {
	return s.designRepo.GetByID(ctx, id)
}

func (s *DesignService) AdminCreate(ctx context.Context, userID string, input DesignInput) (*domain.Design, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Type) == "" || userID == "" {
		return nil, domain.Validation("Name, type, and userId are required")
	}
	return s.create(ctx, userID, input)
}

func (s *DesignService) AdminUpdate(ctx context.Context, id string, patch DesignPatch) (*domain.Design, error) {
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyPatch(ctx, design, patch)
}

func (s *DesignService) AdminDelete(ctx context.Context, id string) error {
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, design)
}

// ToggleFeatured moves a design in or out of the featured type.
func (s *DesignService) ToggleFeatured(ctx context.Context, id string) (*domain.Design, error) {
	design, err := s.designRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	design.ToggleFeatured()
	design.UpdatedAt = time.Now().UnixMilli()

	if err := s.designRepo.Update(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

// create writes the design, then links it into the owner's designs list,
// then into design-ids. A failed step undoes the earlier ones.
func (s *DesignService) create(ctx context.Context, userID string, input DesignInput) (*domain.Design, error) {
	if err := input.FingerDesigns.Validate(); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UnixMilli()
	design := &domain.Design{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(input.Name),
		Type:          strings.TrimSpace(input.Type),
		CreatedAt:     now,
		UpdatedAt:     now,
		UserID:        owner.ID,
		UserName:      owner.Name,
		FingerDesigns: input.FingerDesigns,
		Public:        true,
	}
	if design.FingerDesigns == nil {
		design.FingerDesigns = domain.FingerDesigns{}
	}
	if input.Public != nil {
		design.Public = *input.Public
	}

	comp := repository.NewCompensator("service.DesignService.create")
	defer comp.RollbackUnlessCommitted(ctx)

	if err := s.designRepo.Create(ctx, design); err != nil {
		return nil, err
	}
	comp.Add(func(ctx context.Context) error { return s.designRepo.Delete(ctx, design.ID) })

	owner.AddDesign(design.ID)
	if err := s.userRepo.Save(ctx, owner); err != nil {
		return nil, err
	}
	comp.Add(func(ctx context.Context) error {
		owner.RemoveDesign(design.ID)
		return s.userRepo.Save(ctx, owner)
	})

	if err := s.designRepo.Track(ctx, design.ID); err != nil {
		return nil, err
	}

	comp.Commit()
	return design, nil
}

func (s *DesignService) applyPatch(ctx context.Context, design *domain.Design, patch DesignPatch) (*domain.Design, error) {
	if patch.FingerDesigns != nil {
		if err := patch.FingerDesigns.Validate(); err != nil {
			return nil, err
		}
		design.FingerDesigns = patch.FingerDesigns
	}
	if name := strings.TrimSpace(patch.Name); name != "" {
		design.Name = name
	}
	if typ := strings.TrimSpace(patch.Type); typ != "" {
		design.Type = typ
	}
	if patch.Public != nil {
		design.Public = *patch.Public
	}
	design.UpdatedAt = time.Now().UnixMilli()

	if err := s.designRepo.Update(ctx, design); err != nil {
		return nil, err
	}
	return design, nil
}

// remove deletes the design record first, then its dependents: the
// design-ids entry, like markers and the owner's designs list.
func (s *DesignService) remove(ctx context.Context, design *domain.Design) error {
	if err := s.purge(ctx, design.ID); err != nil {
		return err
	}

	owner, err := s.userRepo.GetByID(ctx, design.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	owner.RemoveDesign(design.ID)
	return s.userRepo.Save(ctx, owner)
}

func (s *DesignService) purge(ctx context.Context, id string) error {
	if err := s.designRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.designRepo.Untrack(ctx, id); err != nil {
		return err
	}
	if err := s.likeRepo.DeleteAllForDesign(ctx, id); err != nil {
		log.Printf("ERROR [service.DesignService.purge] failed to clear likes for %s: %v", id, err)
	}
	return nil
}

// purgeOwnedBy deletes every design owned by user, whether it is listed in
// user.Designs or only carries the user's id.
func (s *DesignService) purgeOwnedBy(ctx context.Context, user *domain.User) error {
	ids := slices.Clone(user.Designs)

	all, err := s.designRepo.List(ctx)
	if err != nil {
		return err
	}
	for _, d := range all {
		if d.UserID == user.ID && !slices.Contains(ids, d.ID) {
			ids = append(ids, d.ID)
		}
	}

	for _, id := range ids {
		if err := s.purge(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func sortNewestFirst(designs []*domain.Design) {
	slices.SortFunc(designs, func(a, b *domain.Design) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
