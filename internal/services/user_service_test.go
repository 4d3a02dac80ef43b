package services

import (
	"context"
	"os"
	"testing"

	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/pkg/auth"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

// fakeUserRepo is an in-memory stand-in for the users collection.
type fakeUserRepo struct {
	users       map[primitive.ObjectID]*models.User
	createCalls int
	updateCalls int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	f.createCalls++
	user.ID = primitive.NewObjectID()
	stored := *user
	f.users[user.ID] = &stored
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, httperror.NewNotFound("user ID not found")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindUsersByField(_ context.Context, key string, value interface{}) ([]models.User, error) {
	var matches []models.User
	for _, user := range f.users {
		if key == "email" && user.Email == value {
			matches = append(matches, *user)
		}
	}
	return matches, nil
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error) {
	f.updateCalls++
	user, ok := f.users[id]
	if !ok {
		return nil, httperror.NewNotFound("user ID not found in update")
	}
	for key, value := range fields {
		switch key {
		case "email":
			user.Email = value.(string)
		case "username":
			user.Username = value.(string)
		case RelationFriends:
			user.Friends = value.([]primitive.ObjectID)
		case RelationEnemies:
			user.Enemies = value.([]primitive.ObjectID)
		}
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return httperror.NewNotFound("user ID not found in delete")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) GetAllUsers(_ context.Context) ([]*models.User, error) {
	var users []*models.User
	for _, user := range f.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

func (f *fakeUserRepo) AppendKnowledge(_ context.Context, userID, knowledgeID primitive.ObjectID) error {
	user, ok := f.users[userID]
	if !ok {
		return httperror.NewNotFound("user ID not found in knowledge append")
	}
	user.Knowledges = append(user.Knowledges, knowledgeID)
	return nil
}

func registerTestUser(t *testing.T, service *UserService, email string) *models.User {
	t.Helper()
	user, err := service.RegisterUser(context.Background(), email, "someone", "12345")
	require.NoError(t, err)
	return user
}

func TestRegisterUserMissingFields(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	_, err := service.RegisterUser(context.Background(), "", "bob", "pw")
	assert.True(t, httperror.IsStatus(err, 401))

	_, err = service.RegisterUser(context.Background(), "bob@test.com", "bob", "")
	assert.True(t, httperror.IsStatus(err, 401))

	assert.Zero(t, repo.createCalls)
}

func TestRegisterUserSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user, err := service.RegisterUser(context.Background(), "bob@test.com", "bob", "pw")
	require.NoError(t, err)

	assert.NotEqual(t, "pw", user.HashedPassword)
	assert.True(t, auth.ComparePassword("pw", user.HashedPassword))
	assert.Equal(t, "user", user.Role)
	assert.Empty(t, user.Friends)
	assert.Empty(t, user.Enemies)
	assert.Empty(t, user.Knowledges)
	assert.Equal(t, 1, repo.createCalls)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	registerTestUser(t, service, "bob@test.com")

	_, err := service.RegisterUser(context.Background(), "bob@test.com", "bob", "pw")
	assert.True(t, httperror.IsStatus(err, 401))
}

func TestAuthenticateUserUnknownEmail(t *testing.T) {
	service := NewUserService(newFakeUserRepo())

	_, err := service.AuthenticateUser(context.Background(), "nobody@test.com", "pw")
	assert.True(t, httperror.IsStatus(err, 401))
}

func TestAuthenticateUserWrongPassword(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	registerTestUser(t, service, "bob@test.com")

	_, err := service.AuthenticateUser(context.Background(), "bob@test.com", "wrong")
	assert.True(t, httperror.IsStatus(err, 401))
}

func TestAuthenticateUserSuccess(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	created := registerTestUser(t, service, "bob@test.com")

	user, err := service.AuthenticateUser(context.Background(), "bob@test.com", "12345")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestUpdateUserDetails(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)
	user := registerTestUser(t, service, "bob@test.com")
	other := registerTestUser(t, service, "alice@test.com")

	t.Run("missing authenticated id", func(t *testing.T) {
		_, err := service.UpdateUserDetails(context.Background(), "", user.ID.Hex(), &models.User{Username: "bobby"})
		assert.True(t, httperror.IsStatus(err, 404))
	})

	t.Run("cross-user update rejected", func(t *testing.T) {
		updates := repo.updateCalls
		_, err := service.UpdateUserDetails(context.Background(), user.ID.Hex(), other.ID.Hex(), &models.User{Username: "bobby"})
		assert.True(t, httperror.IsStatus(err, 401))
		assert.Equal(t, updates, repo.updateCalls)
	})

	t.Run("self update succeeds", func(t *testing.T) {
		updated, err := service.UpdateUserDetails(context.Background(), user.ID.Hex(), user.ID.Hex(), &models.User{Username: "bobby"})
		require.NoError(t, err)
		assert.Equal(t, "bobby", updated.Username)
		assert.Equal(t, user.ID, updated.ID)
	})
}

func TestAddFriend(t *testing.T) {
	repo := newFakeUserRepo()
	service := NewUserService(repo)
	user := registerTestUser(t, service, "bob@test.com")
	friend := registerTestUser(t, service, "alice@test.com")

	updated, err := service.AddFriend(context.Background(), user.ID.Hex(), friend.ID.Hex())
	require.NoError(t, err)
	require.Len(t, updated.Friends, 1)
	assert.Equal(t, friend.ID, updated.Friends[0])

	// one-directional: the candidate's own set stays empty
	friendRecord, err := repo.GetUserByID(context.Background(), friend.ID)
	require.NoError(t, err)
	assert.Empty(t, friendRecord.Friends)
}

func TestAddFriendTwiceIsRejected(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	user := registerTestUser(t, service, "bob@test.com")
	friend := registerTestUser(t, service, "alice@test.com")

	_, err := service.AddFriend(context.Background(), user.ID.Hex(), friend.ID.Hex())
	require.NoError(t, err)

	_, err = service.AddFriend(context.Background(), user.ID.Hex(), friend.ID.Hex())
	assert.True(t, httperror.IsStatus(err, 405))
}

func TestAddFriendSelfIsRejected(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	user := registerTestUser(t, service, "bob@test.com")

	_, err := service.AddFriend(context.Background(), user.ID.Hex(), user.ID.Hex())
	assert.True(t, httperror.IsStatus(err, 405))
}

func TestAddFriendUnknownCandidate(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	user := registerTestUser(t, service, "bob@test.com")

	_, err := service.AddFriend(context.Background(), user.ID.Hex(), primitive.NewObjectID().Hex())
	assert.True(t, httperror.IsStatus(err, 404))
}

func TestAddFriendMissingAuthenticatedID(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	friend := registerTestUser(t, service, "alice@test.com")

	_, err := service.AddFriend(context.Background(), "", friend.ID.Hex())
	assert.True(t, httperror.IsStatus(err, 404))
}

func TestRemoveFriendIsIdempotent(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	user := registerTestUser(t, service, "bob@test.com")
	friend := registerTestUser(t, service, "alice@test.com")

	_, err := service.AddFriend(context.Background(), user.ID.Hex(), friend.ID.Hex())
	require.NoError(t, err)

	updated, err := service.RemoveFriend(context.Background(), user.ID.Hex(), friend.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, updated.Friends)

	// removing again is a no-op, not an error
	updated, err = service.RemoveFriend(context.Background(), user.ID.Hex(), friend.ID.Hex())
	require.NoError(t, err)
	assert.Empty(t, updated.Friends)
}

func TestEnemiesAreSeparateFromFriends(t *testing.T) {
	service := NewUserService(newFakeUserRepo())
	user := registerTestUser(t, service, "bob@test.com")
	enemy := registerTestUser(t, service, "alice@test.com")

	updated, err := service.AddEnemy(context.Background(), user.ID.Hex(), enemy.ID.Hex())
	require.NoError(t, err)
	require.Len(t, updated.Enemies, 1)
	assert.Empty(t, updated.Friends)

	// the same candidate can still be added as a friend
	updated, err = service.AddFriend(context.Background(), user.ID.Hex(), enemy.ID.Hex())
	require.NoError(t, err)
	assert.Len(t, updated.Friends, 1)
	assert.Len(t, updated.Enemies, 1)
}
