package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/securelogin/auth-service/internal/core/domain"
)

const attemptsCollection = "login_attempts"

// AuditRepository persists login attempt records to the login_attempts
// collection.
type AuditRepository struct {
	db *mongo.Database
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record inserts one attempt record.
func (r *AuditRepository) Record(ctx context.Context, attempt domain.LoginAttempt) error {
	doc := bson.M{
		"client_key":      attempt.ClientKey,
		"identifier_type": string(attempt.IdentifierType),
		"success":         attempt.Success,
		"at":              attempt.At.UTC(),
		"recorded_at":     time.Now().UTC(),
	}
	if attempt.Reason != "" {
		doc["reason"] = attempt.Reason
	}

	_, err := r.db.Collection(attemptsCollection).InsertOne(ctx, doc)
	return err
}
