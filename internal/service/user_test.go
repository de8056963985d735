package service

import (
	"context"
	"testing"
	"time"

	"github.com/dealmarket/bff/internal/identity"
	"github.com/dealmarket/bff/internal/model"
	"github.com/dealmarket/bff/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	svc       *UserService
	users     *fakeUserRepo
	avatars   *fakeImageRepo
	accounts  *fakeAccounts
	objects   *fakeObjects
	presigner *fakePresigner
}

func newUserFixture(users ...*model.User) *userFixture {
	f := &userFixture{
		users:     newFakeUserRepo(users...),
		avatars:   newFakeImageRepo(),
		accounts:  newFakeAccounts(),
		objects:   &fakeObjects{},
		presigner: &fakePresigner{},
	}
	f.svc = NewUserService(f.users, f.avatars, newIssuer(f.presigner), f.objects, f.accounts, time.Hour)
	return f
}

func marie() *model.User {
	return &model.User{
		ID:         "user-1",
		IdentityID: "kc-marie",
		FirstName:  "Marie",
		LastName:   "Curie",
		Email:      "marie@example.fr",
		Role:       model.RoleClient,
		Enabled:    true,
	}
}

func TestUserService_CreateProvisionsAccount(t *testing.T) {
	f := newUserFixture()

	user, err := f.svc.Create(context.Background(), &model.User{
		FirstName: "Paul",
		LastName:  "Martin",
		Email:     "paul@example.fr",
		Role:      model.RoleMerchant,
	}, "une phrase de passe longue")

	require.NoError(t, err)
	assert.Equal(t, "kc-1", user.IdentityID)
	assert.True(t, user.Enabled)
	require.Len(t, f.accounts.created, 1)
	assert.Equal(t, "paul@example.fr", f.accounts.created[0].Username)
	assert.Equal(t, model.RoleMerchant, f.accounts.roles["kc-1"])
	assert.Contains(t, f.users.users, user.ID)
}

func TestUserService_CreateDuplicateEmail(t *testing.T) {
	f := newUserFixture(marie())

	_, err := f.svc.Create(context.Background(), &model.User{FirstName: "M", LastName: "C", Email: "marie@example.fr"}, "")

	assert.Equal(t, "utilisateur.email.existant", conflictCode(t, err))
	assert.Empty(t, f.accounts.created)
}

func TestUserService_CreateAccountExistsAtProvider(t *testing.T) {
	f := newUserFixture()
	f.accounts.err = identity.ErrAccountExists

	_, err := f.svc.Create(context.Background(), &model.User{FirstName: "M", LastName: "C", Email: "new@example.fr"}, "")

	assert.Equal(t, "utilisateur.email.existant", conflictCode(t, err))
	assert.Len(t, f.users.users, 0)
}

func TestUserService_UpdatePatchKeepsNilFields(t *testing.T) {
	f := newUserFixture(marie())
	phone := "+33 6 12 34 56 78"

	updated, err := f.svc.Update(context.Background(), "user-1", &model.UserPatch{Phone: &phone})

	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Marie", updated.FirstName)
	assert.Equal(t, "marie@example.fr", updated.Email)
}

func TestUserService_UpdateEmailTaken(t *testing.T) {
	other := marie()
	other.ID, other.Email, other.IdentityID = "user-2", "pierre@example.fr", "kc-pierre"
	f := newUserFixture(marie(), other)
	email := "pierre@example.fr"

	_, err := f.svc.Update(context.Background(), "user-1", &model.UserPatch{Email: &email})

	assert.Equal(t, "utilisateur.email.existant", conflictCode(t, err))
}

func TestUserService_SetAvatarReplacesSingleSlot(t *testing.T) {
	f := newUserFixture(marie())
	ctx := context.Background()

	first, err := f.svc.SetAvatar(ctx, "user-1", &model.Image{StorageKey: "moi.png"})
	require.NoError(t, err)
	assert.Equal(t, "moi.png_1000", first.StorageKey)
	assert.NotEmpty(t, first.PresignURL)

	second, err := f.svc.SetAvatar(ctx, "user-1", &model.Image{StorageKey: "vacances.jpg"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "the avatar row is reused")
	assert.Equal(t, "vacances.jpg_1001", second.StorageKey)
	assert.Len(t, f.avatars.images, 1)
	assert.Equal(t, []string{"utilisateurs/moi.png_1000"}, f.objects.deleted)
	assert.Equal(t, []string{"utilisateurs/moi.png_1000", "utilisateurs/vacances.jpg_1001"}, f.presigner.keys)
}

func TestUserService_SetAvatarRejectsBadKey(t *testing.T) {
	f := newUserFixture(marie())

	_, err := f.svc.SetAvatar(context.Background(), "user-1", &model.Image{StorageKey: "../etc/passwd"})

	assert.Equal(t, "photoProfil.urlImage.invalide", validationCode(t, err))
}

func TestUserService_AvatarURL(t *testing.T) {
	f := newUserFixture(marie())
	ctx := context.Background()

	_, err := f.svc.AvatarURL(ctx, "user-1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	f.avatars.images["av-1"] = &model.Image{ID: "av-1", OwnerID: "user-1", StorageKey: "moi.png_1", Status: model.ImageStatusUploaded}

	url, err := f.svc.AvatarURL(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/utilisateurs/moi.png_1?get", url)
}

func TestUserService_IdentityDelegation(t *testing.T) {
	f := newUserFixture(marie())
	ctx := context.Background()

	user, err := f.svc.SetEnabled(ctx, "user-1", false)
	require.NoError(t, err)
	assert.False(t, user.Enabled)
	assert.False(t, f.accounts.enabled["kc-marie"])

	user, err = f.svc.AssignRole(ctx, "user-1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, model.RoleAdmin, f.accounts.roles["kc-marie"])

	_, err = f.svc.AssignRole(ctx, "user-1", "ROI")
	assert.Equal(t, "role.invalide", validationCode(t, err))

	require.NoError(t, f.svc.ResetPassword(ctx, "user-1", "une nouvelle phrase longue"))
	assert.Equal(t, "une nouvelle phrase longue", f.accounts.password["kc-marie"])

	err = f.svc.ResetPassword(ctx, "user-1", "court")
	assert.Equal(t, "motDePasse.tropCourt", validationCode(t, err))
}

func TestUserService_BySubject(t *testing.T) {
	f := newUserFixture(marie())

	user, err := f.svc.BySubject(context.Background(), "kc-marie")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = f.svc.BySubject(context.Background(), "kc-unknown")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
