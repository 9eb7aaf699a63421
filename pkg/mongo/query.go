package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QueryBuilder provides a fluent interface for MongoDB queries
type QueryBuilder struct {
	collection *mongo.Collection
	filter     bson.M
	sort       bson.D
	limit      *int64
	skip       *int64
}

// NewQuery creates a new query builder for a collection
func (c *Client) NewQuery(collectionName string) *QueryBuilder {
	return &QueryBuilder{
		collection: c.Collection(collectionName),
		filter:     bson.M{},
	}
}

// Eq adds an equality filter
func (q *QueryBuilder) Eq(field string, value interface{}) *QueryBuilder {
	q.filter[field] = value
	return q
}

// Gt adds a greater-than filter
func (q *QueryBuilder) Gt(field string, value interface{}) *QueryBuilder {
	q.filter[field] = bson.M{"$gt": value}
	return q
}

// Sort sets the sort order
func (q *QueryBuilder) Sort(field string, ascending bool) *QueryBuilder {
	direction := 1
	if !ascending {
		direction = -1
	}
	q.sort = append(q.sort, bson.E{Key: field, Value: direction})
	return q
}

// Limit sets the limit
func (q *QueryBuilder) Limit(limit int64) *QueryBuilder {
	q.limit = &limit
	return q
}

// Skip sets the skip value
func (q *QueryBuilder) Skip(skip int64) *QueryBuilder {
	q.skip = &skip
	return q
}

// Find executes the query, decoding all results into out (a pointer to slice)
func (q *QueryBuilder) Find(ctx context.Context, out interface{}) error {
	opts := options.Find()
	if q.limit != nil {
		opts.SetLimit(*q.limit)
	}
	if q.skip != nil {
		opts.SetSkip(*q.skip)
	}
	if len(q.sort) > 0 {
		opts.SetSort(q.sort)
	}

	cursor, err := q.collection.Find(ctx, q.filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}

// FindOne executes a find-one query, decoding into out. Returns false when no
// document matches.
func (q *QueryBuilder) FindOne(ctx context.Context, out interface{}) (bool, error) {
	opts := options.FindOne()
	if len(q.sort) > 0 {
		opts.SetSort(q.sort)
	}

	err := q.collection.FindOne(ctx, q.filter, opts).Decode(out)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the count of matching documents
func (q *QueryBuilder) Count(ctx context.Context) (int64, error) {
	return q.collection.CountDocuments(ctx, q.filter)
}

// Insert inserts a document
func (q *QueryBuilder) Insert(ctx context.Context, document interface{}) error {
	_, err := q.collection.InsertOne(ctx, document)
	return err
}

// InsertMany inserts multiple documents
func (q *QueryBuilder) InsertMany(ctx context.Context, documents []interface{}) error {
	_, err := q.collection.InsertMany(ctx, documents)
	return err
}

// UpdateOne applies a $set update to a single matching document, reporting
// whether a document matched
func (q *QueryBuilder) UpdateOne(ctx context.Context, update interface{}) (bool, error) {
	result, err := q.collection.UpdateOne(ctx, q.filter, bson.M{"$set": update})
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// DeleteOne deletes a single matching document, reporting whether a document
// was removed
func (q *QueryBuilder) DeleteOne(ctx context.Context) (bool, error) {
	result, err := q.collection.DeleteOne(ctx, q.filter)
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// DeleteMany deletes all matching documents
func (q *QueryBuilder) DeleteMany(ctx context.Context) (int64, error) {
	result, err := q.collection.DeleteMany(ctx, q.filter)
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
