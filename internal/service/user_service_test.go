package service_test

import (
	"context"
	"testing"

	"github.com/sem/quill/internal/domain"
	"github.com/sem/quill/internal/repository/postgres"
	"github.com/sem/quill/internal/service"
	"github.com/sem/quill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (*service.UserService, *testutil.TestDB) {
	t.Helper()
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	return service.NewUserService(repos.User, repos.Post, repos.Session), testDB
}

func strptr(s string) *string { return &s }

func TestUserService_Update(t *testing.T) {
	userService, testDB := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithUsername("original").
		WithName("Original Name").
		WithFavoriteColor("green").
		Build(t, testDB.DB)

	// Partial update: untouched fields keep their values.
	updated, err := userService.Update(ctx, user.ID, service.UpdateProfileInput{
		Name:          strptr("New Name"),
		FavoriteColor: strptr("purple"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "purple", updated.FavoriteColor)
	assert.Equal(t, "original", updated.Username)
	assert.Equal(t, user.ID, updated.ID)

	// Missing user.
	_, err = userService.Update(ctx, user.ID+1000, service.UpdateProfileInput{
		Name: strptr("Ghost"),
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_UpdateDuplicateIdentity(t *testing.T) {
	userService, testDB := newUserService(t)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("taken").WithEmail("taken@example.com").Build(t, testDB.DB)
	victim, _ := testutil.NewUserBuilder().WithUsername("victim").Build(t, testDB.DB)

	_, err := userService.Update(ctx, victim.ID, service.UpdateProfileInput{
		Username: strptr("taken"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	_, err = userService.Update(ctx, victim.ID, service.UpdateProfileInput{
		Email: strptr("taken@example.com"),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

	// Re-submitting your own username is not a collision.
	_, err = userService.Update(ctx, victim.ID, service.UpdateProfileInput{
		Username: strptr("victim"),
	})
	require.NoError(t, err)
}

func TestUserService_Delete(t *testing.T) {
	userService, testDB := newUserService(t)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// A user with posts cannot be deleted.
	post := testutil.NewPostBuilder(user.ID).Build(t, testDB.DB)
	err := userService.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserHasPosts)

	// Still there.
	_, err = userService.GetByID(ctx, user.ID)
	require.NoError(t, err)

	// Once the posts are gone the deletion goes through.
	require.NoError(t, testDB.DB.Delete(&domain.Post{}, "id = ?", post.ID).Error)
	require.NoError(t, userService.Delete(ctx, user.ID))
	_, err = userService.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Deleting a missing user reports NotFound.
	err = userService.Delete(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserService_List(t *testing.T) {
	userService, testDB := newUserService(t)
	ctx := context.Background()

	testutil.NewUserBuilder().WithUsername("zfirst").Build(t, testDB.DB)
	testutil.NewUserBuilder().WithUsername("asecond").Build(t, testDB.DB)

	users, err := userService.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	// Ordered by date added, not by name.
	assert.Equal(t, "zfirst", users[0].Username)
	assert.Equal(t, "asecond", users[1].Username)
}
