package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vollmed/registry-api/internal/core/ports"
)

// findOptions translates a page request into skip/limit/sort options.
// _id is appended as a tie-breaker so pages are stable.
func findOptions(p ports.PageRequest) *options.FindOptions {
	dir := 1
	if p.Descending {
		dir = -1
	}
	return options.Find().
		SetSort(bson.D{{Key: p.Sort, Value: dir}, {Key: "_id", Value: 1}}).
		SetSkip(int64(p.Page) * int64(p.Size)).
		SetLimit(int64(p.Size))
}

// findPage returns one page of documents matching filter plus the total match count.
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.M, p ports.PageRequest) ([]*T, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", col.Name(), err)
	}

	cur, err := col.Find(ctx, filter, findOptions(p))
	if err != nil {
		return nil, 0, fmt.Errorf("find %s: %w", col.Name(), err)
	}
	defer cur.Close(ctx)

	items := make([]*T, 0, p.Size)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", col.Name(), err)
	}
	return items, total, nil
}
