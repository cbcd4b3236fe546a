package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

const collectionRecordEvents = "record_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{col: db.Collection(collectionRecordEvents)}
}

// Insert persists an audit entry to the record_events collection.
func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"_id":          entry.ID,
		"kind":         string(entry.Kind),
		"record_id":    entry.RecordID,
		"action":       string(entry.Action),
		"at":           entry.At.UTC(),
		"processed_at": time.Now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
