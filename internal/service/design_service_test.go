package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/service"
	"github.com/dom/unique-nails/internal/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignService_Create(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	viewer := &domain.Identity{UserID: alice.ID}

	tests := []struct {
		name    string
		viewer  *domain.Identity
		input   service.DesignInput
		wantErr error
		check   func(*testing.T, *domain.Design)
	}{
		{
			name:   "defaults to public with owner name copied",
			viewer: viewer,
			input: service.DesignInput{
				Name:          "Nova",
				Type:          domain.DesignTypeGalaxy,
				FingerDesigns: domain.FingerDesigns{0: domain.DesignTypeGalaxy},
			},
			check: func(t *testing.T, d *domain.Design) {
				assert.True(t, d.Public)
				assert.Equal(t, alice.ID, d.UserID)
				assert.Equal(t, "Alice", d.UserName)
				assert.Zero(t, d.Likes)
				assert.Equal(t, domain.DesignTypeGalaxy, d.FingerDesigns[0])
			},
		},
		{
			name:    "anonymous caller",
			input:   service.DesignInput{Name: "Nova", Type: domain.DesignTypeGalaxy},
			wantErr: service.ErrInvalidSession,
		},
		{
			name:    "missing type",
			viewer:  viewer,
			input:   service.DesignInput{Name: "Nova"},
			wantErr: domain.ErrValidation,
		},
		{
			name:   "finger index out of range",
			viewer: viewer,
			input: service.DesignInput{
				Name:          "Nova",
				Type:          domain.DesignTypeGalaxy,
				FingerDesigns: domain.FingerDesigns{5: domain.DesignTypeGalaxy},
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "owner no longer exists",
			viewer:  &domain.Identity{UserID: "ghost"},
			input:   service.DesignInput{Name: "Nova", Type: domain.DesignTypeGalaxy},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			design, err := e.services.Design.Create(ctx, tt.viewer, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, design)
		})
	}
}

func TestDesignService_CreateLinksOwnerAndIndex(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")

	design := e.createDesign(t, alice, "Nova", true)

	owner, err := e.repos.User.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{design.ID}, owner.Designs)

	tracked, err := e.repos.Design.TrackedIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{design.ID}, tracked)
}

func TestDesignService_Visibility(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")

	private := e.createDesign(t, alice, "Secret", false)
	public := e.createDesign(t, alice, "Open", true)

	page, err := e.services.Design.List(ctx, service.DesignQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, public.ID, page.Items[0].ID)
	assert.Equal(t, 1, page.Total)

	tests := []struct {
		name    string
		viewer  *domain.Identity
		id      string
		wantErr error
	}{
		{name: "owner reads private", viewer: &domain.Identity{UserID: alice.ID}, id: private.ID},
		{name: "other user cannot read private", viewer: &domain.Identity{UserID: bob.ID}, id: private.ID, wantErr: service.ErrNotOwner},
		{name: "anonymous cannot read private", id: private.ID, wantErr: service.ErrNotOwner},
		{name: "anonymous reads public", id: public.ID},
		{name: "missing design", id: "missing", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.services.Design.Get(ctx, tt.viewer, tt.id)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
		})
	}
}

func TestDesignService_ListFilters(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")

	e.createDesign(t, alice, "Nova", true)
	e.createDesign(t, bob, "Bloom", true)

	floral := true
	_, err := e.services.Design.Create(ctx, &domain.Identity{UserID: bob.ID}, service.DesignInput{
		Name:   "Petals",
		Type:   domain.DesignTypeFloral,
		Public: &floral,
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query service.DesignQuery
		want  int
	}{
		{name: "no filters", query: service.DesignQuery{Page: 1, Limit: 20}, want: 3},
		{name: "by user", query: service.DesignQuery{Page: 1, Limit: 20, UserID: bob.ID}, want: 2},
		{name: "by type", query: service.DesignQuery{Page: 1, Limit: 20, Type: domain.DesignTypeFloral}, want: 1},
		{name: "by user and type", query: service.DesignQuery{Page: 1, Limit: 20, UserID: alice.ID, Type: domain.DesignTypeFloral}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := e.services.Design.List(ctx, tt.query)
			require.NoError(t, err)
			assert.Len(t, page.Items, tt.want)
			assert.Equal(t, tt.want, page.Total)
		})
	}
}

func TestDesignService_PaginationIsExact(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")

	const total = 23
	for i := range total {
		e.createDesign(t, alice, fmt.Sprintf("design-%02d", i), true)
	}
	e.createDesign(t, alice, "hidden", false)

	full, err := e.services.Design.List(ctx, service.DesignQuery{Page: 1, Limit: 100})
	require.NoError(t, err)
	require.Len(t, full.Items, total)

	for _, limit := range []int{1, 5, 7, 23, 50} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			first, err := e.services.Design.List(ctx, service.DesignQuery{Page: 1, Limit: limit})
			require.NoError(t, err)
			assert.Equal(t, (total+limit-1)/limit, first.TotalPages)

			var ids []string
			for page := 1; page <= first.TotalPages; page++ {
				got, err := e.services.Design.List(ctx, service.DesignQuery{Page: page, Limit: limit})
				require.NoError(t, err)
				assert.Equal(t, total, got.Total)
				for _, d := range got.Items {
					ids = append(ids, d.ID)
				}
			}

			want := make([]string, 0, total)
			for _, d := range full.Items {
				want = append(want, d.ID)
			}
			assert.Equal(t, want, ids)
		})
	}

	beyond, err := e.services.Design.List(ctx, service.DesignQuery{Page: 99, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, total, beyond.Total)
}

func TestDesignService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	design := e.createDesign(t, alice, "Nova", true)
	viewer := &domain.Identity{UserID: bob.ID}

	liked, err := e.services.Design.ToggleLike(ctx, viewer, design.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, 1, liked.Likes)

	exists, err := e.repos.Like.Exists(ctx, design.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	unliked, err := e.services.Design.ToggleLike(ctx, viewer, design.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, 0, unliked.Likes)

	exists, err = e.repos.Like.Exists(ctx, design.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	stored, err := e.repos.Design.GetByID(ctx, design.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Likes)
}

func TestDesignService_ToggleLikeRules(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	private := e.createDesign(t, alice, "Secret", false)

	_, err := e.services.Design.ToggleLike(ctx, nil, private.ID)
	assert.ErrorIs(t, err, service.ErrInvalidSession)

	_, err = e.services.Design.ToggleLike(ctx, &domain.Identity{UserID: bob.ID}, private.ID)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	_, err = e.services.Design.ToggleLike(ctx, &domain.Identity{UserID: bob.ID}, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDesignService_OwnerOnlyWrites(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	design := e.createDesign(t, alice, "Nova", true)

	_, err := e.services.Design.Update(ctx, &domain.Identity{UserID: bob.ID}, design.ID, service.DesignPatch{Name: "Stolen"})
	assert.ErrorIs(t, err, service.ErrNotOwner)

	err = e.services.Design.Delete(ctx, &domain.Identity{UserID: bob.ID}, design.ID)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	private := false
	updated, err := e.services.Design.Update(ctx, &domain.Identity{UserID: alice.ID}, design.ID, service.DesignPatch{
		Name:   "Nova II",
		Public: &private,
	})
	require.NoError(t, err)
	assert.Equal(t, "Nova II", updated.Name)
	assert.Equal(t, domain.DesignTypeGalaxy, updated.Type, "empty patch fields keep their value")
	assert.False(t, updated.Public)

	require.NoError(t, e.services.Design.Delete(ctx, &domain.Identity{UserID: alice.ID}, design.ID))

	_, err = e.repos.Design.GetByID(ctx, design.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	owner, err := e.repos.User.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, owner.Designs)

	tracked, err := e.repos.Design.TrackedIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, tracked)
}

func TestDesignService_DeleteClearsLikes(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	bob := e.signup(t, "Bob", "bob@example.com")
	design := e.createDesign(t, alice, "Nova", true)

	_, err := e.services.Design.ToggleLike(ctx, &domain.Identity{UserID: bob.ID}, design.ID)
	require.NoError(t, err)

	require.NoError(t, e.services.Design.AdminDelete(ctx, design.ID))

	exists, err := e.repos.Like.Exists(ctx, design.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDesignService_AdminCreateAndList(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")

	_, err := e.services.Design.AdminCreate(ctx, "", service.DesignInput{Name: "Nova", Type: domain.DesignTypeGalaxy})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Name, type, and userId are required", domain.Message(err, ""))

	hidden := false
	created, err := e.services.Design.AdminCreate(ctx, alice.ID, service.DesignInput{
		Name:   "Nova",
		Type:   domain.DesignTypeGalaxy,
		Public: &hidden,
	})
	require.NoError(t, err)

	all, err := e.services.Design.AdminList(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "admin listing includes private designs")
	assert.Equal(t, created.ID, all[0].ID)
}

func TestDesignService_ToggleFeatured(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	alice := e.signup(t, "Alice", "alice@example.com")
	design := e.createDesign(t, alice, "Nova", true)

	featured, err := e.services.Design.ToggleFeatured(ctx, design.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DesignTypeFeatured, featured.Type)
	assert.Equal(t, domain.DesignTypeGalaxy, featured.OriginalType)

	restored, err := e.services.Design.ToggleFeatured(ctx, design.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DesignTypeGalaxy, restored.Type)
	assert.Empty(t, restored.OriginalType)

	_, err = e.services.Design.ToggleFeatured(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDesignService_ToggleLikeRestoresMarkerOnCounterFailure(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: memory.New()}
	e := newEnvWithStore(t, fs)

	owner := e.signup(t, "Owner", "owner@example.com")
	fan := e.signup(t, "Fan", "fan@example.com")
	design := e.createDesign(t, owner, "Nova", true)
	viewer := &domain.Identity{UserID: fan.ID}

	assertState := func(t *testing.T, wantLiked bool, wantLikes int) {
		t.Helper()
		liked, err := e.repos.Like.Exists(ctx, design.ID, fan.ID)
		require.NoError(t, err)
		assert.Equal(t, wantLiked, liked)

		stored, err := e.repos.Design.GetByID(ctx, design.ID)
		require.NoError(t, err)
		assert.Equal(t, wantLikes, stored.Likes)
	}

	fs.failKey = "design:" + design.ID
	_, err := e.services.Design.ToggleLike(ctx, viewer, design.ID)
	require.ErrorIs(t, err, domain.ErrStore)
	assertState(t, false, 0)

	fs.failKey = ""
	result, err := e.services.Design.ToggleLike(ctx, viewer, design.ID)
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assertState(t, true, 1)

	fs.failKey = "design:" + design.ID
	_, err = e.services.Design.ToggleLike(ctx, viewer, design.ID)
	require.ErrorIs(t, err, domain.ErrStore)
	assertState(t, true, 1)
}
