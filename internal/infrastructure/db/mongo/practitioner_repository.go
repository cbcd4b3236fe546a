package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vollmed/registry-api/internal/core/domain"
	"github.com/vollmed/registry-api/internal/core/ports"
)

const collectionPractitioners = "practitioners"

type PractitionerRepository struct {
	col *mongo.Collection
}

func NewPractitionerRepository(db *mongo.Database) *PractitionerRepository {
	return &PractitionerRepository{col: db.Collection(collectionPractitioners)}
}

// Save inserts a new practitioner (assigning its ID) or replaces an existing one.
func (r *PractitionerRepository) Save(ctx context.Context, p *domain.Practitioner) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
		if _, err := r.col.InsertOne(ctx, p); err != nil {
			p.ID = ""
			return fmt.Errorf("insert practitioner: %w", err)
		}
		return nil
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("replace practitioner: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByID retrieves a practitioner whatever its lifecycle state.
func (r *PractitionerRepository) FindByID(ctx context.Context, id string) (*domain.Practitioner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Practitioner
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PractitionerRepository) FindAllActive(ctx context.Context, page ports.PageRequest) ([]*domain.Practitioner, int64, error) {
	return findPage[domain.Practitioner](ctx, r.col, bson.M{"active": true}, page)
}

func (r *PractitionerRepository) FindAll(ctx context.Context, page ports.PageRequest) ([]*domain.Practitioner, int64, error) {
	return findPage[domain.Practitioner](ctx, r.col, bson.M{}, page)
}

// EnsureIndexes creates the indexes backing the list queries.
func (r *PractitionerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "crm", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
