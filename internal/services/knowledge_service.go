package services

import (
	"context"
	"fmt"

	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KnowledgeRepository is the persistence contract the knowledge service
// depends on.
type KnowledgeRepository interface {
	CreateKnowledge(ctx context.Context, knowledge *models.Knowledge) (*models.Knowledge, error)
	GetKnowledgeByID(ctx context.Context, id primitive.ObjectID) (*models.Knowledge, error)
	UpdateKnowledge(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Knowledge, error)
	DeleteKnowledge(ctx context.Context, id primitive.ObjectID) error
	GetAllKnowledges(ctx context.Context) ([]models.Knowledge, error)
}

// KnowledgeOwnerRepository is the slice of the user repository needed to
// keep the owner's knowledge list in sync.
type KnowledgeOwnerRepository interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	AppendKnowledge(ctx context.Context, userID, knowledgeID primitive.ObjectID) error
}

// KnowledgeService encapsulates the business logic for knowledges.
type KnowledgeService struct {
	repo     KnowledgeRepository
	userRepo KnowledgeOwnerRepository
}

// NewKnowledgeService creates a new instance of KnowledgeService.
func NewKnowledgeService(repo KnowledgeRepository, userRepo KnowledgeOwnerRepository) *KnowledgeService {
	return &KnowledgeService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// GetAllKnowledges returns every knowledge item.
func (s *KnowledgeService) GetAllKnowledges(ctx context.Context) ([]models.Knowledge, error) {
	return s.repo.GetAllKnowledges(ctx)
}

// GetKnowledge retrieves a knowledge by its ID.
func (s *KnowledgeService) GetKnowledge(ctx context.Context, id string) (*models.Knowledge, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		logger.Log.WithField("knowledge_id", id).WithError(err).Warn("Invalid knowledge ID")
		return nil, httperror.NewNotFound("invalid knowledge ID")
	}

	return s.repo.GetKnowledgeByID(ctx, objID)
}

// CreateKnowledge creates a knowledge owned by the authenticated user and
// appends it to the owner's knowledge list.
//
// The create and the owner update are two separate writes with no
// transaction around them: a failure in between leaves a knowledge that no
// user lists (standalone MongoDB offers no multi-document transactions).
func (s *KnowledgeService) CreateKnowledge(ctx context.Context, ownerID string, knowledge *models.Knowledge) (*models.Knowledge, error) {
	if ownerID == "" {
		logger.Log.Warn("Knowledge creation without authenticated user")
		return nil, httperror.NewNotFound("user ID not found in request context")
	}

	ownerObjID, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, httperror.NewNotFound("invalid user ID")
	}

	if _, err := s.userRepo.GetUserByID(ctx, ownerObjID); err != nil {
		logger.Log.WithField("userID", ownerID).WithError(err).Warn("Knowledge owner does not exist")
		return nil, err
	}

	if err := validateKnowledge(knowledge); err != nil {
		return nil, err
	}

	knowledge.Owner = ownerObjID

	created, err := s.repo.CreateKnowledge(ctx, knowledge)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create knowledge")
		return nil, fmt.Errorf("failed to create knowledge: %v", err)
	}

	if err := s.userRepo.AppendKnowledge(ctx, ownerObjID, created.ID); err != nil {
		logger.Log.WithError(err).Error("Failed to append knowledge to owner")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"knowledge_id": created.ID.Hex(),
		"ownerID":      ownerID,
	}).Info("Knowledge created")
	return created, nil
}

// UpdateKnowledge patches an existing knowledge. Only fields present in
// the patch are touched, so a provided zero (an interesting score of 0)
// persists. The owner reference is immutable and never part of the update.
func (s *KnowledgeService) UpdateKnowledge(ctx context.Context, id string, patch *models.KnowledgePatch) (*models.Knowledge, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, httperror.NewNotFound("invalid knowledge ID")
	}

	fields := bson.M{}
	if patch.Name != nil {
		if *patch.Name == "" {
			return nil, httperror.NewBadRequest("knowledge name is required")
		}
		fields["name"] = *patch.Name
	}
	if patch.InterestingScore != nil {
		if *patch.InterestingScore < models.MinInterestingScore || *patch.InterestingScore > models.MaxInterestingScore {
			return nil, httperror.NewBadRequest("interesting score out of range")
		}
		fields["interesting_score"] = *patch.InterestingScore
	}
	if patch.DifficultyLevel != nil {
		if *patch.DifficultyLevel < models.MinDifficultyLevel || *patch.DifficultyLevel > models.MaxDifficultyLevel {
			return nil, httperror.NewBadRequest("difficulty level out of range")
		}
		fields["difficulty_level"] = *patch.DifficultyLevel
	}

	knowledge, err := s.repo.UpdateKnowledge(ctx, objID, fields)
	if err != nil {
		logger.Log.WithField("knowledge_id", id).WithError(err).Error("Failed to update knowledge")
		return nil, err
	}

	return knowledge, nil
}

// DeleteKnowledge removes a knowledge by its ID.
func (s *KnowledgeService) DeleteKnowledge(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return httperror.NewNotFound("invalid knowledge ID")
	}

	return s.repo.DeleteKnowledge(ctx, objID)
}

func validateKnowledge(knowledge *models.Knowledge) error {
	if knowledge.Name == "" {
		return httperror.NewBadRequest("knowledge name is required")
	}
	if knowledge.InterestingScore < models.MinInterestingScore || knowledge.InterestingScore > models.MaxInterestingScore {
		return httperror.NewBadRequest("interesting score out of range")
	}
	if knowledge.DifficultyLevel < models.MinDifficultyLevel || knowledge.DifficultyLevel > models.MaxDifficultyLevel {
		return httperror.NewBadRequest("difficulty level out of range")
	}
	return nil
}
