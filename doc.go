/*
Package concierge is a guided product-recommendation dialog engine.

It walks a user through a fixed funnel (category, brand, budget, sort order),
filters a small in-memory catalog against the accumulated preferences, and
lets the user compare, select, cart and check out the matched items. The
dialog core is a cyclic deterministic state machine; HTTP transport, catalog
loading, similarity search and LLM text generation sit behind narrow ports.

# Usage

	cat, err := catalog.Load("gadgets_dataset.csv")
	if err != nil {
		log.Fatal(err)
	}

	advisor, err := concierge.New(cat)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := advisor.Chat(ctx, concierge.TurnRequest{Message: "laptop"})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(resp.Reply)

	// Echo resp.Context (and resp.SessionID) back on the next turn.

Sessions default to process memory; pass WithStore / WithLocker with the
redis adapter for durable, multi-replica deployments, and WithGenerator /
WithEmbedder with the openai adapter to enable styled responses and vector
search. Every collaborator is optional: without them the engine produces its
deterministic responses and lexical search, degrading quality, never
availability.
*/
package concierge
