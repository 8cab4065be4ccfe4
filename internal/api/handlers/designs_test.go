package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/dom/unique-nails/internal/domain"
	"github.com/dom/unique-nails/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type designListResponse struct {
	Designs    []*domain.Design `json:"designs"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"totalPages"`
}

type designResponse struct {
	Success bool           `json:"success"`
	Design  *domain.Design `json:"design"`
}

func TestDesigns_CreateAndListByOwner(t *testing.T) {
	ts := testutil.NewTestServer(t)
	testutil.NewUserBuilder().
		WithName("Alice").
		WithEmail("alice@example.com").
		WithPassword("secret123").
		Build(t, ts)

	client := ts.NewClient(t)
	resp := client.Post("/api/auth/signin", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, client.Cookie("session_id"))

	var signin testutil.AuthResponse
	testutil.AssertJSONResponse(t, resp, &signin)
	alice := signin.User

	resp = client.Post("/api/designs", map[string]any{
		"name":          "Nova",
		"type":          "galaxy",
		"fingerDesigns": map[string]string{"0": "galaxy"},
		"public":        true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created designResponse
	testutil.AssertJSONResponse(t, resp, &created)
	assert.True(t, created.Success)
	assert.Equal(t, "Alice", created.Design.UserName)

	// Anyone can read the listing.
	anon := ts.NewClient(t)
	resp = anon.Get("/api/designs?userId=" + alice.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list designListResponse
	testutil.AssertJSONResponse(t, resp, &list)
	require.Len(t, list.Designs, 1)
	assert.Equal(t, "Nova", list.Designs[0].Name)
	assert.Equal(t, 0, list.Designs[0].Likes)
	assert.Equal(t, "galaxy", list.Designs[0].FingerDesigns[0])
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.Limit)
	assert.Equal(t, 1, list.TotalPages)
}

func TestDesigns_ListQueryValidation(t *testing.T) {
	ts := testutil.NewTestServer(t)
	client := ts.NewClient(t)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
	}{
		{name: "defaults", query: "", expectedStatus: http.StatusOK},
		{name: "explicit page and limit", query: "?page=2&limit=5", expectedStatus: http.StatusOK},
		{name: "non-integer page", query: "?page=abc", expectedStatus: http.StatusBadRequest},
		{name: "zero limit", query: "?limit=0", expectedStatus: http.StatusBadRequest},
		{name: "negative page", query: "?page=-1", expectedStatus: http.StatusBadRequest},
		{name: "huge page", query: "?page=4611686018427387903&limit=4", expectedStatus: http.StatusOK},
		{name: "max limit", query: "?limit=9223372036854775807", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := client.Get("/api/designs" + tt.query)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDesigns_Pagination(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, _ := testutil.NewUserBuilder().Build(t, ts)
	for i := range 12 {
		testutil.NewDesignBuilder().WithName(fmt.Sprintf("d%02d", i)).Build(t, ts, owner.ID)
	}

	client := ts.NewClient(t)
	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		resp := client.Get(fmt.Sprintf("/api/designs?page=%d&limit=5", page))
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list designListResponse
		testutil.AssertJSONResponse(t, resp, &list)
		assert.Equal(t, 12, list.Total)
		assert.Equal(t, 3, list.TotalPages)
		for _, d := range list.Designs {
			assert.False(t, seen[d.ID], "design %s returned twice", d.ID)
			seen[d.ID] = true
		}
	}
	assert.Len(t, seen, 12)
}

func TestDesigns_PrivateVisibility(t *testing.T) {
	ts := testutil.NewTestServer(t)
	alice, aliceClient := testutil.NewUserBuilder().BuildAndSignIn(t, ts)
	_, bobClient := testutil.NewUserBuilder().BuildAndSignIn(t, ts)

	private := testutil.NewDesignBuilder().WithName("Secret").Private().Build(t, ts, alice.ID)

	resp := ts.NewClient(t).Get("/api/designs")
	var list designListResponse
	testutil.AssertJSONResponse(t, resp, &list)
	assert.Empty(t, list.Designs)

	tests := []struct {
		name           string
		client         *testutil.Client
		expectedStatus int
	}{
		{name: "owner", client: aliceClient, expectedStatus: http.StatusOK},
		{name: "other user", client: bobClient, expectedStatus: http.StatusUnauthorized},
		{name: "anonymous", client: ts.NewClient(t), expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.client.Get("/api/designs/" + private.ID)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	resp = aliceClient.Get("/api/designs/missing")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDesigns_OwnerWrites(t *testing.T) {
	ts := testutil.NewTestServer(t)
	alice, aliceClient := testutil.NewUserBuilder().BuildAndSignIn(t, ts)
	_, bobClient := testutil.NewUserBuilder().BuildAndSignIn(t, ts)
	design := testutil.NewDesignBuilder().Build(t, ts, alice.ID)

	tests := []struct {
		name           string
		client         *testutil.Client
		method         string
		body           any
		expectedStatus int
	}{
		{name: "anonymous update", client: ts.NewClient(t), method: http.MethodPut, body: map[string]string{"name": "x"}, expectedStatus: http.StatusUnauthorized},
		{name: "other user update", client: bobClient, method: http.MethodPut, body: map[string]string{"name": "x"}, expectedStatus: http.StatusUnauthorized},
		{name: "other user delete", client: bobClient, method: http.MethodDelete, expectedStatus: http.StatusUnauthorized},
		{name: "owner bad finger", client: aliceClient, method: http.MethodPut, body: map[string]any{"fingerDesigns": map[string]string{"9": "x"}}, expectedStatus: http.StatusBadRequest},
		{name: "owner update", client: aliceClient, method: http.MethodPut, body: map[string]string{"name": "Renamed"}, expectedStatus: http.StatusOK},
		{name: "owner delete", client: aliceClient, method: http.MethodDelete, expectedStatus: http.StatusOK},
		{name: "delete again", client: aliceClient, method: http.MethodDelete, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.client.Do(tt.method, "/api/designs/"+design.ID, tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestDesigns_CreateRequiresSession(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := ts.NewClient(t).Post("/api/designs", map[string]string{"name": "Nova", "type": "galaxy"})
	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")

	_, client := testutil.NewUserBuilder().BuildAndSignIn(t, ts)
	resp = client.Post("/api/designs", map[string]string{"name": "Nova"})
	testutil.AssertErrorResponse(t, resp, http.StatusBadRequest, "Name and type are required")
}

func TestDesigns_LikeToggles(t *testing.T) {
	ts := testutil.NewTestServer(t)
	alice, _ := testutil.NewUserBuilder().Build(t, ts)
	design := testutil.NewDesignBuilder().Build(t, ts, alice.ID)
	_, bobClient := testutil.NewUserBuilder().BuildAndSignIn(t, ts)

	type likeResponse struct {
		Success bool `json:"success"`
		Liked   bool `json:"liked"`
		Likes   int  `json:"likes"`
	}

	var first likeResponse
	resp := bobClient.Post("/api/designs/"+design.ID+"/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertJSONResponse(t, resp, &first)
	assert.Equal(t, likeResponse{Success: true, Liked: true, Likes: 1}, first)

	var second likeResponse
	resp = bobClient.Post("/api/designs/"+design.ID+"/like", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	testutil.AssertJSONResponse(t, resp, &second)
	assert.Equal(t, likeResponse{Success: true, Liked: false, Likes: 0}, second)

	resp = ts.NewClient(t).Post("/api/designs/"+design.ID+"/like", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedPageRedirects(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := ts.NewClient(t).Get("/profile")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/sign-in", resp.Header.Get("Location"))
}
