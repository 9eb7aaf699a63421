package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexabank/crm-insights/pkg/mongo"
)

const (
	customersCollection       = "customers"
	interactionsCollection    = "interactions"
	recommendationsCollection = "recommendations"
)

// ErrDuplicateEmail is returned when a customer email is already registered
var ErrDuplicateEmail = errors.New("email already registered")

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// Repository provides persistence for customers, interactions and
// recommendations
type Repository struct {
	db *mongo.Client
}

func NewRepository(db *mongo.Client) *Repository {
	return &Repository{db: db}
}

// ListCustomers returns all customers ordered by id
func (r *Repository) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := r.db.NewQuery(customersCollection).
		Sort("id", true).
		Find(ctx, &customers)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []Customer{}
	}
	return customers, nil
}

// GetCustomer returns one customer by id
func (r *Repository) GetCustomer(ctx context.Context, id int64) (*Customer, error) {
	var customer Customer
	found, err := r.db.NewQuery(customersCollection).
		Eq("id", id).
		FindOne(ctx, &customer)
	if err != nil {
		return nil, fmt.Errorf("failed to get customer %d: %w", id, err)
	}
	if !found {
		return nil, ErrNotFound
	}
	return &customer, nil
}

// CreateCustomer inserts a new customer, assigning its id and created date
func (r *Repository) CreateCustomer(ctx context.Context, customer *Customer) error {
	count, err := r.db.NewQuery(customersCollection).
		Eq("email", customer.Email).
		Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to check customer email: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	id, err := r.db.NextSequence(ctx, customersCollection)
	if err != nil {
		return err
	}
	customer.ID = id
	customer.CreatedDate = time.Now().UTC()

	if err := r.db.NewQuery(customersCollection).Insert(ctx, customer); err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}
	return nil
}

// UpdateCustomer applies a partial update to a customer
func (r *Repository) UpdateCustomer(ctx context.Context, id int64, updates map[string]interface{}) error {
	matched, err := r.db.NewQuery(customersCollection).
		Eq("id", id).
		UpdateOne(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to update customer %d: %w", id, err)
	}
	if !matched {
		return ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer and its dependent records
func (r *Repository) DeleteCustomer(ctx context.Context, id int64) error {
	deleted, err := r.db.NewQuery(customersCollection).
		Eq("id", id).
		DeleteOne(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}
	if !deleted {
		return ErrNotFound
	}

	if _, err := r.db.NewQuery(interactionsCollection).Eq("customer_id", id).DeleteMany(ctx); err != nil {
		return fmt.Errorf("failed to delete interactions for customer %d: %w", id, err)
	}
	if _, err := r.db.NewQuery(recommendationsCollection).Eq("customer_id", id).DeleteMany(ctx); err != nil {
		return fmt.Errorf("failed to delete recommendations for customer %d: %w", id, err)
	}
	return nil
}

// ListInteractions returns a customer's interactions, most recent first
func (r *Repository) ListInteractions(ctx context.Context, customerID int64) ([]Interaction, error) {
	var interactions []Interaction
	err := r.db.NewQuery(interactionsCollection).
		Eq("customer_id", customerID).
		Sort("date", false).
		Find(ctx, &interactions)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions for customer %d: %w", customerID, err)
	}
	if interactions == nil {
		interactions = []Interaction{}
	}
	return interactions, nil
}

// AddInteraction inserts a new interaction, assigning its id and date
func (r *Repository) AddInteraction(ctx context.Context, interaction *Interaction) error {
	id, err := r.db.NextSequence(ctx, interactionsCollection)
	if err != nil {
		return err
	}
	interaction.ID = id
	interaction.Date = time.Now().UTC()

	if err := r.db.NewQuery(interactionsCollection).Insert(ctx, interaction); err != nil {
		return fmt.Errorf("failed to insert interaction: %w", err)
	}
	return nil
}

// ListRecommendationsPage returns one page of a customer's recommendation
// history plus the total count
func (r *Repository) ListRecommendationsPage(ctx context.Context, customerID, limit, skip int64) ([]Recommendation, int64, error) {
	total, err := r.db.NewQuery(recommendationsCollection).
		Eq("customer_id", customerID).
		Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count recommendations for customer %d: %w", customerID, err)
	}

	var recommendations []Recommendation
	err = r.db.NewQuery(recommendationsCollection).
		Eq("customer_id", customerID).
		Sort("created_date", false).
		Skip(skip).
		Limit(limit).
		Find(ctx, &recommendations)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recommendations for customer %d: %w", customerID, err)
	}
	if recommendations == nil {
		recommendations = []Recommendation{}
	}
	return recommendations, total, nil
}

// SaveRecommendation persists a generated recommendation
func (r *Repository) SaveRecommendation(ctx context.Context, rec *Recommendation) error {
	id, err := r.db.NextSequence(ctx, recommendationsCollection)
	if err != nil {
		return err
	}
	rec.ID = id
	rec.CreatedDate = time.Now().UTC()
	if rec.Status == "" {
		rec.Status = RecommendationPending
	}

	if err := r.db.NewQuery(recommendationsCollection).Insert(ctx, rec); err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return nil
}

// Counts used by the analytics endpoints.

func (r *Repository) CountCustomers(ctx context.Context) (int64, error) {
	return r.db.NewQuery(customersCollection).Count(ctx)
}

func (r *Repository) CountInteractions(ctx context.Context) (int64, error) {
	return r.db.NewQuery(interactionsCollection).Count(ctx)
}

func (r *Repository) CountPositiveInteractions(ctx context.Context) (int64, error) {
	return r.db.NewQuery(interactionsCollection).
		Gt("sentiment_score", 0).
		Count(ctx)
}

func (r *Repository) CountRecommendations(ctx context.Context) (int64, error) {
	return r.db.NewQuery(recommendationsCollection).Count(ctx)
}

func (r *Repository) CountPendingRecommendations(ctx context.Context) (int64, error) {
	return r.db.NewQuery(recommendationsCollection).
		Eq("status", RecommendationPending).
		Count(ctx)
}
