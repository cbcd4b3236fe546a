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

const collectionClients = "clients"

type ClientRepository struct {
	col *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{col: db.Collection(collectionClients)}
}

// Save inserts a new client (assigning its ID) or replaces an existing one.
func (r *ClientRepository) Save(ctx context.Context, c *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
		if _, err := r.col.InsertOne(ctx, c); err != nil {
			c.ID = ""
			return fmt.Errorf("insert client: %w", err)
		}
		return nil
	}

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("replace client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Client
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) FindAllActive(ctx context.Context, page ports.PageRequest) ([]*domain.Client, int64, error) {
	return findPage[domain.Client](ctx, r.col, bson.M{"active": true}, page)
}

func (r *ClientRepository) FindAll(ctx context.Context, page ports.PageRequest) ([]*domain.Client, int64, error) {
	return findPage[domain.Client](ctx, r.col, bson.M{}, page)
}

func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "cpf", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
