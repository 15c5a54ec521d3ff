package concierge_test

import (
	"context"
	"fmt"
	"log"

	"github.com/stepedge/concierge"
	"github.com/stepedge/concierge/pkg/catalog"
	"github.com/stepedge/concierge/pkg/domain"
)

// ExampleNew demonstrates a guided session over an in-memory catalog.
// This is useful for testing, embedded scenarios, or when you don't want to
// rely on a CSV file.
func ExampleNew() {
	// 1. Build a catalog. In production you would use catalog.Load with
	// a CSV path instead.
	cat := catalog.New([]domain.Product{
		{
			ID: 1, Name: "Dell XPS 13", Category: "Laptop", Brand: "Dell",
			Price: 1299.99, Specifications: "16GB RAM, 512GB SSD",
			Features: "InfinityEdge display", UserReviews: "Compact and powerful",
			PopularityScore: 93,
		},
	})

	// 2. Initialize the advisor. Without options it runs entirely in
	// memory with deterministic responses.
	advisor, err := concierge.New(cat)
	if err != nil {
		log.Fatal(err)
	}

	// 3. Drive the funnel one message at a time. The first response
	// assigns the session id.
	ctx := context.Background()
	resp, err := advisor.Chat(ctx, concierge.TurnRequest{Message: "laptop"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp.Reply)

	// 4. Later turns reuse the session id.
	resp, err = advisor.Chat(ctx, concierge.TurnRequest{SessionID: resp.SessionID, Message: "dell"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp.Reply)

	// Output:
	// Which brand do you prefer for your laptop? (options: Dell, Hp, Asus, Lenovo, Microsoft, Apple)
	// What's your budget range for your gadget? (options: $500-$1000, $1001-$1500, $1501-$2000, $2001-$3000)
}
