package mongodb

import (
	"context"

	"loyalty-rules/internal/rules/domain/model"
	apperrors "loyalty-rules/internal/shared/errors"
	"loyalty-rules/internal/shared/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoDocumentReader implements the DocumentReader port on top of a MongoDB
// database holding one Mongo collection per rule collection. Documents are
// keyed by their string id in _id.
type MongoDocumentReader struct {
	db  *mongo.Database
	log logger.Logger
}

// NewMongoDocumentReader creates a new MongoDB document reader
func NewMongoDocumentReader(db *mongo.Database, log logger.Logger) *MongoDocumentReader {
	return &MongoDocumentReader{
		db:  db,
		log: log,
	}
}

// Get fetches one document by id. A missing document is (nil, nil); only
// transport or decode failures surface as errors, and the caller treats
// those as deny.
func (r *MongoDocumentReader) Get(ctx context.Context, collection, documentID string) (model.Document, error) {
	var raw bson.M
	err := r.db.Collection(collection).FindOne(ctx, bson.M{"_id": documentID}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		r.log.Error("Failed to fetch document",
			zap.String("collection", collection),
			zap.String("documentID", documentID),
			zap.Error(err))
		return nil, apperrors.NewInfrastructureError("document lookup failed").
			WithComponent("mongodb").
			WithDetail("collection", collection).
			WithCause(err)
	}

	doc := make(model.Document, len(raw))
	for field, value := range raw {
		if field == "_id" {
			continue
		}
		doc[field] = normalizeBSON(value)
	}
	return doc, nil
}

// normalizeBSON maps driver-specific array and document types onto the plain
// Go shapes the rule evaluators understand.
func normalizeBSON(value interface{}) interface{} {
	switch v := value.(type) {
	case bson.A:
		out := make([]interface{}, len(v))
		for i, elem := range v {
			out[i] = normalizeBSON(elem)
		}
		return out
	case bson.M:
		out := make(map[string]interface{}, len(v))
		for k, elem := range v {
			out[k] = normalizeBSON(elem)
		}
		return out
	default:
		return v
	}
}
