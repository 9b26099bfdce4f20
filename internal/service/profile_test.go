package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/electramart-api/internal/utils"
)

func TestUpdateProfile(t *testing.T) {
	auth, st, _ := newAuth(t)
	ctx := context.Background()
	me, err := auth.Register(ctx, ada())
	require.NoError(t, err)
	other := ada()
	other.Username, other.Email = "gracehopper", "grace@example.com"
	_, err = auth.Register(ctx, other)
	require.NoError(t, err)

	svc := NewProfileService(st, bcrypt.MinCost, quietLogger())

	err = svc.UpdateProfile(ctx, ProfileInput{UserID: me.ID, Username: "ada"})
	assert.ErrorIs(t, err, ErrUsernameTooShort)

	err = svc.UpdateProfile(ctx, ProfileInput{UserID: me.ID, Username: "gracehopper"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	err = svc.UpdateProfile(ctx, ProfileInput{UserID: me.ID, Email: "GRACE@example.com"})
	assert.ErrorIs(t, err, ErrEmailExists)

	err = svc.UpdateProfile(ctx, ProfileInput{UserID: "missing", Username: "nobody2"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.UpdateProfile(ctx, ProfileInput{UserID: me.ID, ActualName: "gracehopper", Phone: "000"})
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, svc.UpdateProfile(ctx, ProfileInput{UserID: me.ID, ActualName: "adalove", Username: "countess", Phone: "111"}))
	u, err := st.Users.GetByUsername(ctx, "countess")
	require.NoError(t, err)
	assert.Equal(t, "111", u.Phone)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "1 Analytical St", u.Address)
	assert.True(t, utils.VerifyPassword(u.Password, "s3cret!"), "blank password keeps the hash")

	require.NoError(t, svc.UpdateProfile(ctx, ProfileInput{UserID: me.ID, Password: "changed"}))
	u, _ = st.Users.GetByUsername(ctx, "countess")
	assert.True(t, utils.VerifyPassword(u.Password, "changed"))

	err = svc.UpdateProfile(ctx, ProfileInput{UserID: me.ID, ActualName: "adalove", Phone: "222"})
	assert.ErrorIs(t, err, ErrNotOwner, "the old username no longer names this account")
}

func TestUpdateProfileFollowsIDAcrossRename(t *testing.T) {
	auth, st, _ := newAuth(t)
	ctx := context.Background()
	svc := NewProfileService(st, bcrypt.MinCost, quietLogger())

	alice, err := auth.Register(ctx, ada())
	require.NoError(t, err)
	require.NoError(t, svc.UpdateProfile(ctx, ProfileInput{UserID: alice.ID, Username: "adalove2"}))

	newcomer := ada()
	newcomer.Email = "newcomer@example.com"
	bob, err := auth.Register(ctx, newcomer)
	require.NoError(t, err, "the released username can be registered again")

	require.NoError(t, svc.UpdateProfile(ctx, ProfileInput{UserID: alice.ID, Password: "alice-new"}))

	b, err := st.Users.GetByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(b.Password, "s3cret!"), "the newcomer keeps their password")
	a, err := st.Users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "adalove2", a.Username)
	assert.True(t, utils.VerifyPassword(a.Password, "alice-new"))
}

func TestProfileLookups(t *testing.T) {
	auth, st, _ := newAuth(t)
	ctx := context.Background()
	created, err := auth.Register(ctx, ada())
	require.NoError(t, err)

	svc := NewProfileService(st, bcrypt.MinCost, quietLogger())

	require.NoError(t, svc.SetProfilePic(ctx, created.ID, "", "https://cdn.example.com/ada.png"))
	assert.ErrorIs(t, svc.SetProfilePic(ctx, created.ID, "someoneelse", "x"), ErrNotOwner)
	assert.ErrorIs(t, svc.SetProfilePic(ctx, "ghost", "", "x"), ErrUserNotFound)

	u, err := svc.ProfileDetails(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/ada.png", u.ProfilePic)
	assert.Empty(t, u.Password)

	u, err = svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "adalove", u.Username)
	assert.Empty(t, u.Password)

	_, err = svc.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = svc.ProfileDetails(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, created.ID, users[0].ID)
	assert.Empty(t, users[0].Password)
}
