package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veljkom/meetlite-api/internal/services"
	"github.com/veljkom/meetlite-api/tests/testutil"
)

func TestUserService_Integration_FindOrCreateFromOAuth_CreateNew(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	info := testutil.OAuthUserInfo("newuser@example.com", "New User", "google")

	user, err := svc.FindOrCreateFromOAuth(ctx, info)

	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, info.Email, user.Email)
	assert.Equal(t, info.Name, user.Name)
	assert.True(t, user.IsVerified)
	require.NotNil(t, user.ProfilePicture)
	assert.Equal(t, info.AvatarURL, *user.ProfilePicture)
}

func TestUserService_Integration_FindOrCreateFromOAuth_FindExisting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	info := testutil.OAuthUserInfo("existinguser@example.com", "Existing User", "github")

	user1, err := svc.FindOrCreateFromOAuth(ctx, info)
	require.NoError(t, err)

	// Second sign-in, even from another provider, resolves by email
	again := testutil.OAuthUserInfo("existinguser@example.com", "Other Name", "google")
	user2, err := svc.FindOrCreateFromOAuth(ctx, again)
	require.NoError(t, err)

	assert.Equal(t, user1.ID, user2.ID)
	assert.Equal(t, "Existing User", user2.Name)
}

func TestUserService_Integration_FindOrCreateFromOAuth_ConcurrentFirstSignIn(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	ctx := context.Background()

	const racers = 8
	ids := make([]string, racers)
	var wg sync.WaitGroup

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			info := testutil.OAuthUserInfo("racer@example.com", "Racer", "google")
			user, err := svc.FindOrCreateFromOAuth(ctx, info)
			if assert.NoError(t, err) {
				ids[i] = user.ID.String()
			}
		}(i)
	}
	wg.Wait()

	// All racers resolved to one and the same row
	for i := 1; i < racers; i++ {
		assert.Equal(t, ids[0], ids[i])
	}

	var count int
	err := tdb.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE email = $1`, "racer@example.com").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUserService_Integration_CRUDRoundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	tdb := setupTest(t)
	svc := services.NewUserService(tdb.DB)
	fixtures := testutil.NewFixtures(tdb.DB)
	ctx := context.Background()

	created := fixtures.CreateUser(t, testutil.WithName("Roundtrip"), testutil.WithProfilePicture("https://example.com/a.png"))

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, fetched.Email)

	newName := "Renamed"
	updated, err := svc.Update(ctx, created.ID, services.UserUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	// Fields not in the update are preserved
	require.NotNil(t, updated.ProfilePicture)
	assert.Equal(t, "https://example.com/a.png", *updated.ProfilePicture)
	assert.Equal(t, created.Email, updated.Email)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
