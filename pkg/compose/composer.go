package compose

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/stepedge/concierge/internal/logging"
	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/ports"
)

// Occasion distinguishes a fresh recommendation from a return to history.
type Occasion int

const (
	OccasionInitial Occasion = iota
	OccasionReturning
)

// Generation parameters, matching the tuning the service shipped with.
const (
	genMaxTokens   = 500
	genTemperature = 0.7
)

var genStop = []string{"\n\n"}

// Composer turns a shortlist into the text shown to the user. The
// deterministic fallback is always computed first; the optional generator
// only ever replaces it when its output passes the sanity check, so an
// unavailable or unfaithful collaborator degrades style, never correctness.
type Composer struct {
	gen      ports.Generator
	timeout  time.Duration
	logger   *slog.Logger
	fallback func(reason string)
}

// Option configures the Composer.
type Option func(*Composer)

// WithGenerator enables the text-generation collaborator.
func WithGenerator(gen ports.Generator) Option {
	return func(c *Composer) { c.gen = gen }
}

// WithTimeout bounds each generator call.
func WithTimeout(d time.Duration) Option {
	return func(c *Composer) { c.timeout = d }
}

// WithLogger configures a logger for collaborator failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) { c.logger = logger }
}

// WithFallbackHook registers a callback invoked whenever generated text is
// discarded, with the reason ("unavailable", "error", "missing_products").
func WithFallbackHook(hook func(reason string)) Option {
	return func(c *Composer) { c.fallback = hook }
}

// New creates a Composer. Without WithGenerator it always produces the
// deterministic text.
func New(opts ...Option) *Composer {
	c := &Composer{
		timeout:  10 * time.Second,
		logger:   logging.NewNop(),
		fallback: func(string) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Recommendation builds the product listing for a shortlist. The result
// always names every shortlisted product.
func (c *Composer) Recommendation(ctx context.Context, prefs domain.Preferences, items []domain.Product, occasion Occasion) string {
	deterministic := fallbackText(items, occasion)
	if c.gen == nil {
		c.fallback("unavailable")
		return deterministic
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.gen.Generate(ctx, prompt(prefs, items, occasion), genMaxTokens, genStop, genTemperature)
	if err != nil {
		c.logger.Warn("text generation failed, using deterministic response", "err", err)
		c.fallback("error")
		return deterministic
	}

	text = strings.TrimSpace(text)
	if !MentionsAll(text, items) {
		c.logger.Warn("generated text omitted products, using deterministic response")
		c.fallback("missing_products")
		return deterministic
	}
	return text
}

// MentionsAll reports whether text literally contains every product's name.
func MentionsAll(text string, items []domain.Product) bool {
	for _, p := range items {
		if !strings.Contains(text, p.Name) {
			return false
		}
	}
	return true
}

func fallbackText(items []domain.Product, occasion Occasion) string {
	var b strings.Builder
	if occasion == OccasionReturning {
		b.WriteString("Let's take a look at the previous options I found for you!\n")
		for _, p := range items {
			b.WriteString("- " + p.Line() + "\n")
		}
		b.WriteString("Which one of these devices catches your eye now? Let me know and I can provide more information!")
		return b.String()
	}

	b.WriteString("Let me show you some awesome options that fit your budget and preferences!\n")
	for _, p := range items {
		b.WriteString("- " + p.Line() + "\n")
	}
	b.WriteString("\nWhich one of these devices catches your eye? Let me know and I can provide more information!")
	return b.String()
}

func prompt(prefs domain.Preferences, items []domain.Product, occasion Occasion) string {
	var b strings.Builder
	if occasion == OccasionReturning {
		b.WriteString("Here are the previous recommendations:\n")
		for _, p := range items {
			b.WriteString("- " + p.Line() + "\n")
		}
		b.WriteString("Generate a friendly and inviting response reintroducing these gadgets to the user in a conversational tone. ")
		b.WriteString("Start with a warm greeting like 'Let's take a look at the previous options I found for you!' ")
		b.WriteString("Mention each gadget's name, price (with a dollar symbol), features, user reviews, and popularity score. ")
		b.WriteString("Encourage the user to engage further by asking 'Which one of these devices catches your eye now? Let me know and I can provide more information!'")
		return b.String()
	}

	b.WriteString("Based on the user's preferences (category: " + prefs.Category + ", brand: " + prefs.Brand)
	if prefs.Budget != nil {
		b.WriteString(", budget: " + prefs.Budget.Label())
	}
	b.WriteString("), I found the following gadgets:\n")
	for _, p := range items {
		b.WriteString("- " + p.Line() + "\n")
	}
	b.WriteString("Generate a friendly and inviting response introducing these gadgets to the user in a conversational tone. ")
	b.WriteString("Start with a warm greeting like 'Let me show you some awesome options that fit your budget and preferences!' ")
	b.WriteString("Mention each gadget's name, price (with a dollar symbol), features, user reviews, and popularity score. ")
	b.WriteString("Encourage the user to engage further by asking 'Which one of these devices catches your eye? Let me know and I can provide more information!' ")
	b.WriteString("Also, mention that these options fit within the user's budget.")
	return b.String()
}

// Comparison renders the full inline comparison of a shortlist.
func Comparison(items []domain.Product) string {
	if len(items) == 0 {
		return "No products available to compare."
	}
	var b strings.Builder
	for i, p := range items {
		fmt.Fprintf(&b,
			"- Product %d: %s, Category: %s, Brand: %s, Specifications: %s, Price: $%.2f, Features: %s, User Reviews: %s, Popularity Score: %d",
			i+1, p.Name, p.Category, p.Brand, p.Specifications, p.Price, p.Features, p.UserReviews, p.PopularityScore)
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}
