package store

import (
	"context"
	"fmt"
	"time"
)

// Seed loads the demo dataset when the customers collection is empty
func (r *Repository) Seed(ctx context.Context) error {
	count, err := r.CountCustomers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check customer count: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	customers := []interface{}{
		Customer{ID: 1, Name: "John Smith", Email: "john@email.com", Phone: "123-456-7890", AccountType: "Savings", Balance: 5000.0, RiskScore: 2.5, CreatedDate: now},
		Customer{ID: 2, Name: "Sarah Johnson", Email: "sarah@email.com", Phone: "234-567-8901", AccountType: "Checking", Balance: 2500.0, RiskScore: 3.0, CreatedDate: now},
		Customer{ID: 3, Name: "Mike Wilson", Email: "mike@email.com", Phone: "345-678-9012", AccountType: "Premium", Balance: 15000.0, RiskScore: 1.5, CreatedDate: now},
		Customer{ID: 4, Name: "Emma Davis", Email: "emma@email.com", Phone: "456-789-0123", AccountType: "Business", Balance: 8500.0, RiskScore: 4.0, CreatedDate: now},
	}

	interactions := []interface{}{
		Interaction{ID: 1, CustomerID: 1, InteractionType: "Phone Call", Summary: "Customer inquired about loan options. Seemed interested in home loan.", SentimentScore: 0.5, Date: now},
		Interaction{ID: 2, CustomerID: 1, InteractionType: "Email", Summary: "Sent loan application documents. Customer responded positively.", SentimentScore: 1.0, Date: now},
		Interaction{ID: 3, CustomerID: 2, InteractionType: "Branch Visit", Summary: "Customer complained about monthly fees. Expressed frustration.", SentimentScore: -1.0, Date: now},
		Interaction{ID: 4, CustomerID: 3, InteractionType: "Phone Call", Summary: "Routine account review. Customer satisfied with current services.", SentimentScore: 1.0, Date: now},
	}

	if err := r.db.NewQuery(customersCollection).InsertMany(ctx, customers); err != nil {
		return fmt.Errorf("failed to seed customers: %w", err)
	}
	if err := r.db.NewQuery(interactionsCollection).InsertMany(ctx, interactions); err != nil {
		return fmt.Errorf("failed to seed interactions: %w", err)
	}

	// Keep the id sequences ahead of the seeded records.
	for i := 0; i < len(customers); i++ {
		if _, err := r.db.NextSequence(ctx, customersCollection); err != nil {
			return err
		}
	}
	for i := 0; i < len(interactions); i++ {
		if _, err := r.db.NextSequence(ctx, interactionsCollection); err != nil {
			return err
		}
	}

	return nil
}
