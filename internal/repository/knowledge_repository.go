package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arman2205/Knowledge_Network/internal/models"
	"github.com/Arman2205/Knowledge_Network/pkg/httperror"
	"github.com/Arman2205/Knowledge_Network/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// KnowledgeRepository handles database operations related to knowledges.
type KnowledgeRepository struct {
	collection *mongo.Collection
}

// NewKnowledgeRepository creates a new instance of KnowledgeRepository.
func NewKnowledgeRepository(db *mongo.Database) *KnowledgeRepository {
	return &KnowledgeRepository{
		collection: db.Collection("knowledges"),
	}
}

// CreateKnowledge inserts a new knowledge into the database.
func (r *KnowledgeRepository) CreateKnowledge(ctx context.Context, knowledge *models.Knowledge) (*models.Knowledge, error) {
	knowledge.CreatedAt = time.Now()
	knowledge.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, knowledge)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert knowledge")
		return nil, fmt.Errorf("failed to insert knowledge: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	knowledge.ID = insertedID

	logger.Log.WithField("knowledge_id", knowledge.ID.Hex()).Info("Knowledge created successfully")
	return knowledge, nil
}

// GetKnowledgeByID fetches a knowledge by its ID.
func (r *KnowledgeRepository) GetKnowledgeByID(ctx context.Context, id primitive.ObjectID) (*models.Knowledge, error) {
	var knowledge models.Knowledge

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&knowledge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httperror.NewNotFound("knowledge ID not found")
	}
	if err != nil {
		logger.Log.WithError(err).WithField("knowledge_id", id.Hex()).Error("Failed to find knowledge by ID")
		return nil, fmt.Errorf("failed to find knowledge by id: %v", err)
	}

	return &knowledge, nil
}

// UpdateKnowledge applies the given fields to the knowledge document and
// returns the updated document.
func (r *KnowledgeRepository) UpdateKnowledge(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.Knowledge, error) {
	fields["updated_at"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var knowledge models.Knowledge
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&knowledge)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, httperror.NewNotFound("knowledge ID not found in update")
	}
	if err != nil {
		logger.Log.WithError(err).WithField("knowledge_id", id.Hex()).Error("Failed to update knowledge")
		return nil, fmt.Errorf("failed to update knowledge: %v", err)
	}

	logger.Log.WithField("knowledge_id", id.Hex()).Info("Knowledge updated successfully")
	return &knowledge, nil
}

// DeleteKnowledge deletes a knowledge from the database by its ID.
func (r *KnowledgeRepository) DeleteKnowledge(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("knowledge_id", id.Hex()).Error("Failed to delete knowledge")
		return fmt.Errorf("failed to delete knowledge: %v", err)
	}
	if result.DeletedCount == 0 {
		return httperror.NewNotFound("knowledge ID not found in delete")
	}

	logger.Log.WithField("knowledge_id", id.Hex()).Info("Knowledge deleted successfully")
	return nil
}

// GetAllKnowledges fetches all knowledges from the database.
func (r *KnowledgeRepository) GetAllKnowledges(ctx context.Context) ([]models.Knowledge, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch all knowledges")
		return nil, fmt.Errorf("failed to fetch knowledges: %v", err)
	}
	defer cursor.Close(ctx)

	var knowledges []models.Knowledge
	for cursor.Next(ctx) {
		var knowledge models.Knowledge
		if err := cursor.Decode(&knowledge); err != nil {
			logger.Log.WithError(err).Error("Failed to decode knowledge")
			return nil, fmt.Errorf("failed to decode knowledge: %v", err)
		}
		knowledges = append(knowledges, knowledge)
	}

	return knowledges, nil
}
