package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/pkg/auth"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Relation set field names on the user document.
const (
	RelationFriends = "friends"
	RelationEnemies = "enemies"
)

// UserRepository is the persistence contract the user service depends on.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindUsersByField(ctx context.Context, key string, value interface{}) ([]models.User, error)
	UpdateUser(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.User, error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo UserRepository
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// RegisterUser registers a new user after hashing their password. The
// friend, enemy and knowledge sets start empty.
func (s *UserService) RegisterUser(ctx context.Context, email, username, password string) (*models.User, error) {
	logger.Log.Info("Registering new user")

	if email == "" || password == "" {
		logger.Log.Warn("Missing required fields during registration")
		return nil, httperror.NewUnauthorized("invalid email or password")
	}

	if !emailRegex.MatchString(email) {
		logger.Log.WithField("email", email).Warn("Invalid email format during registration")
		return nil, httperror.NewUnauthorized("invalid email format")
	}

	// Check if the email is already registered
	existing, err := s.repo.FindUsersByField(ctx, "email", email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %v", err)
	}
	if len(existing) > 0 {
		logger.Log.WithField("email", email).Warn("Email already in use")
		return nil, httperror.NewUnauthorized("email already in use")
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logger.Log.WithError(err).Error("Password hashing failed")
		return nil, err
	}

	user := &models.User{
		Email:          email,
		Username:       username,
		HashedPassword: hashed,
		Role:           "user",
		Friends:        []primitive.ObjectID{},
		Enemies:        []primitive.ObjectID{},
		Knowledges:     []primitive.ObjectID{},
	}

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Log.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"userID": createdUser.ID.Hex(),
		"role":   createdUser.Role,
	}).Info("User registered successfully")

	return createdUser, nil
}

// AuthenticateUser verifies the email and password and returns the user if
// the credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	logger.Log.WithField("email", email).Info("Authenticating user")

	if email == "" || password == "" {
		logger.Log.Warn("Missing credentials during login")
		return nil, httperror.NewUnauthorized("invalid email or password")
	}

	matches, err := s.repo.FindUsersByField(ctx, "email", email)
	if err != nil {
		return nil, fmt.Errorf("failed to search user by email: %v", err)
	}
	if len(matches) == 0 {
		logger.Log.WithField("email", email).Warn("User not found")
		return nil, httperror.NewUnauthorized("email not found")
	}

	user := matches[0]
	if !auth.ComparePassword(password, user.HashedPassword) {
		logger.Log.WithField("email", email).Warn("Invalid credentials")
		return nil, httperror.NewUnauthorized("password does not match")
	}

	logger.Log.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return &user, nil
}

// GetAllUsers returns every user. Flat listing, no pagination.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// UpdateUserDetails updates a user's own profile fields. Self-service
// only: the target id must match the authenticated id, and the persisted
// id always comes from the authenticated identity, never from the body.
func (s *UserService) UpdateUserDetails(ctx context.Context, authenticatedID, targetID string, details *models.User) (*models.User, error) {
	if authenticatedID == "" {
		logger.Log.Warn("Details update without authenticated user")
		return nil, httperror.NewNotFound("user ID not found in request context")
	}
	if targetID == "" {
		return nil, httperror.NewNotFound("user ID not found in request path")
	}
	if authenticatedID != targetID {
		logger.Log.WithFields(map[string]interface{}{
			"targetID": targetID,
			"userID":   authenticatedID,
		}).Warn("Cross-user details update attempt")
		return nil, httperror.NewUnauthorized("users can only update their own details")
	}

	objID, err := primitive.ObjectIDFromHex(authenticatedID)
	if err != nil {
		return nil, httperror.NewNotFound("invalid user ID")
	}

	fields := bson.M{}
	if details.Email != "" {
		fields["email"] = details.Email
	}
	if details.Username != "" {
		fields["username"] = details.Username
	}

	user, err := s.repo.UpdateUser(ctx, objID, fields)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to update user details")
		return nil, err
	}

	logger.Log.WithField("userID", user.ID.Hex()).Info("User details updated successfully")
	return user, nil
}

// AddFriend appends the candidate to the authenticated user's friend set.
func (s *UserService) AddFriend(ctx context.Context, authenticatedID, candidateID string) (*models.User, error) {
	return s.addRelation(ctx, authenticatedID, candidateID, RelationFriends)
}

// AddEnemy appends the candidate to the authenticated user's enemy set.
func (s *UserService) AddEnemy(ctx context.Context, authenticatedID, candidateID string) (*models.User, error) {
	return s.addRelation(ctx, authenticatedID, candidateID, RelationEnemies)
}

// RemoveFriend removes the candidate from the authenticated user's friend set.
func (s *UserService) RemoveFriend(ctx context.Context, authenticatedID, candidateID string) (*models.User, error) {
	return s.removeRelation(ctx, authenticatedID, candidateID, RelationFriends)
}

// RemoveEnemy removes the candidate from the authenticated user's enemy set.
func (s *UserService) RemoveEnemy(ctx context.Context, authenticatedID, candidateID string) (*models.User, error) {
	return s.removeRelation(ctx, authenticatedID, candidateID, RelationEnemies)
}

// addRelation adds a one-directional relation. Repeating the call for a
// candidate already in the set is an error, not a no-op.
func (s *UserService) addRelation(ctx context.Context, authenticatedID, candidateID, relation string) (*models.User, error) {
	user, candidate, err := s.loadRelationPair(ctx, authenticatedID, candidateID)
	if err != nil {
		return nil, err
	}

	if user.ID == candidate.ID {
		return nil, httperror.NewNotAllowed("users cannot relate to themselves")
	}

	set := user.Friends
	if relation == RelationEnemies {
		set = user.Enemies
	}

	for _, id := range set {
		if id == candidate.ID {
			logger.Log.WithFields(map[string]interface{}{
				"userID":      user.ID.Hex(),
				"candidateID": candidate.ID.Hex(),
				"relation":    relation,
			}).Warn("Relation already present")
			return nil, httperror.NewNotAllowed("user already added as " + relation)
		}
	}

	updated, err := s.repo.UpdateUser(ctx, user.ID, bson.M{relation: append(set, candidate.ID)})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"userID":      user.ID.Hex(),
		"candidateID": candidate.ID.Hex(),
		"relation":    relation,
	}).Info("Relation added")
	return updated, nil
}

// removeRelation filters the candidate out of the set unconditionally:
// removing an absent candidate succeeds with no effect.
func (s *UserService) removeRelation(ctx context.Context, authenticatedID, candidateID, relation string) (*models.User, error) {
	user, candidate, err := s.loadRelationPair(ctx, authenticatedID, candidateID)
	if err != nil {
		return nil, err
	}

	set := user.Friends
	if relation == RelationEnemies {
		set = user.Enemies
	}

	filtered := make([]primitive.ObjectID, 0, len(set))
	for _, id := range set {
		if id != candidate.ID {
			filtered = append(filtered, id)
		}
	}

	updated, err := s.repo.UpdateUser(ctx, user.ID, bson.M{relation: filtered})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"userID":      user.ID.Hex(),
		"candidateID": candidate.ID.Hex(),
		"relation":    relation,
	}).Info("Relation removed")
	return updated, nil
}

// loadRelationPair resolves the authenticated user and the candidate, both
// of which must exist.
func (s *UserService) loadRelationPair(ctx context.Context, authenticatedID, candidateID string) (*models.User, *models.User, error) {
	if authenticatedID == "" {
		logger.Log.Warn("Relation change without authenticated user")
		return nil, nil, httperror.NewNotFound("user ID not found in request context")
	}

	authID, err := primitive.ObjectIDFromHex(authenticatedID)
	if err != nil {
		return nil, nil, httperror.NewNotFound("invalid user ID")
	}

	candID, err := primitive.ObjectIDFromHex(candidateID)
	if err != nil {
		return nil, nil, httperror.NewNotFound("invalid candidate ID")
	}

	user, err := s.repo.GetUserByID(ctx, authID)
	if err != nil {
		return nil, nil, err
	}

	candidate, err := s.repo.GetUserByID(ctx, candID)
	if err != nil {
		return nil, nil, err
	}

	return user, candidate, nil
}
