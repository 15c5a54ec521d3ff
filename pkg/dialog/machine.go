package dialog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/stepedge/concierge/internal/logging"
	"github.com/stepedge/concierge/pkg/catalog"
	"github.com/stepedge/concierge/pkg/compose"
	"github.com/stepedge/concierge/pkg/domain"
)

// ResetKeyword rewinds any state to the top of the funnel, pre-empting all
// per-step logic.
const ResetKeyword = "start"

// handler validates input against one step's vocabulary, mutates the session
// and returns the reply. Invalid input re-prompts without mutation.
type handler func(ctx context.Context, sess *domain.Session, input string) string

// Machine is the dialog state machine. It owns no session state itself: the
// caller loads a Session, runs exactly one Turn under the session lock, and
// persists the result.
type Machine struct {
	catalog  *catalog.Catalog
	composer *compose.Composer
	logger   *slog.Logger
	handlers map[domain.Step]handler
}

// Option configures the Machine.
type Option func(*Machine)

// WithLogger configures a structured logger for turn events.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// NewMachine creates a dialog machine over the given catalog and composer.
func NewMachine(cat *catalog.Catalog, composer *compose.Composer, opts ...Option) *Machine {
	m := &Machine{
		catalog:  cat,
		composer: composer,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.handlers = map[domain.Step]handler{
		domain.StepCategory:  m.handleCategory,
		domain.StepBrand:     m.handleBrand,
		domain.StepBudget:    m.handleBudget,
		domain.StepSort:      m.handleSort,
		domain.StepRecommend: m.handleRecommend,
		domain.StepCompare:   m.handleCompare,
		domain.StepSelect:    m.handleSelect,
		domain.StepFinalize:  m.handleFinalize,
	}
	return m
}

// Turn processes one inbound message against the session, mutating it in
// place, and returns the reply. The reply is never empty.
func (m *Machine) Turn(ctx context.Context, sess *domain.Session, message string) string {
	input := strings.ToLower(strings.TrimSpace(message))
	from := sess.Step

	if input == ResetKeyword {
		sess.ClearPreferences()
		m.logger.Debug("session reset", "from", from)
		return categoryPrompt()
	}

	h, ok := m.handlers[sess.Step]
	if !ok {
		// Unreachable given the enumerated step set; defensive fallback
		// that must not mutate state.
		m.logger.Warn("unrecognized dialog step", "step", sess.Step)
		return "I'm not sure how to proceed. Please select an option or say 'start' to begin again."
	}

	reply := h(ctx, sess, input)
	m.logger.Debug("turn handled", "from", from, "to", sess.Step)
	return reply
}

func (m *Machine) handleCategory(_ context.Context, sess *domain.Session, input string) string {
	if !catalog.ValidCategory(input) {
		return invalidCategoryPrompt()
	}
	sess.Preferences.Category = input
	sess.Step = domain.StepBrand
	return brandPrompt(input)
}

func (m *Machine) handleBrand(_ context.Context, sess *domain.Session, input string) string {
	category := sess.Preferences.Category
	if !catalog.ValidBrand(category, input) {
		return invalidBrandPrompt(category)
	}
	sess.Preferences.Brand = input
	sess.Step = domain.StepBudget
	return budgetPrompt(category)
}

func (m *Machine) handleBudget(_ context.Context, sess *domain.Session, input string) string {
	category := sess.Preferences.Category
	budget, ok := catalog.ParseBudget(category, input)
	if !ok {
		return invalidBudgetPrompt(category)
	}
	sess.Preferences.Budget = &budget
	sess.Step = domain.StepSort
	return sortPrompt()
}

func (m *Machine) handleSort(ctx context.Context, sess *domain.Session, input string) string {
	key, ok := catalog.ParseSort(input)
	if !ok {
		return invalidSortPrompt()
	}
	sess.Preferences.Sort = key

	// Zero matches leave the session in the recommend step: its explore
	// more / stop options are the recovery path.
	sess.Step = domain.StepRecommend

	shortlist := m.catalog.Shortlist(sess.Preferences)
	if len(shortlist) == 0 {
		m.logger.Info("no products matched preferences",
			"category", sess.Preferences.Category,
			"brand", sess.Preferences.Brand,
		)
		return noMatchPrompt(sess.Preferences)
	}

	sess.PushShortlist(shortlist)
	body := m.composer.Recommendation(ctx, sess.Preferences, shortlist, compose.OccasionInitial)
	return body + "\n" + budgetFitLine(sess.Preferences) + " " + recommendOptionsPrompt()
}

func (m *Machine) handleRecommend(ctx context.Context, sess *domain.Session, input string) string {
	switch input {
	case "compare":
		sess.Step = domain.StepCompare
		return comparePrompt(sess.Shortlist)
	case "proceed":
		return m.proceed(sess)
	case "stop":
		sess.Reset()
		return stopPrompt()
	case "explore more":
		sess.ClearPreferences()
		return exploreMorePrompt()
	case "go back to the previous recommendations":
		// In the recommend step, going back stays in recommend.
		return m.goBack(ctx, sess)
	}
	return "Please select an option: compare, proceed, stop, explore more, go back to the previous recommendations"
}

func (m *Machine) handleCompare(ctx context.Context, sess *domain.Session, input string) string {
	switch input {
	case "proceed":
		return m.proceed(sess)
	case "stop":
		sess.Reset()
		return stopPrompt()
	case "explore more":
		sess.ClearPreferences()
		return exploreMorePrompt()
	case "go back to the previous recommendations":
		// Unlike recommend, a pop here also moves back to the recommend
		// step: after leaving the comparison you are looking at a
		// recommendation list again.
		if len(sess.History) > 1 {
			sess.Step = domain.StepRecommend
		}
		return m.goBack(ctx, sess)
	}
	return "Please select an option: proceed, stop, explore more, go back to the previous recommendations"
}

func (m *Machine) handleSelect(_ context.Context, sess *domain.Session, input string) string {
	for _, p := range sess.Shortlist {
		if strings.EqualFold(p.Name, input) {
			selected := p
			sess.Selected = &selected
			sess.Step = domain.StepFinalize
			return selectedPrompt(selected)
		}
	}

	switch input {
	case "explore more":
		sess.ClearPreferences()
		return exploreMorePrompt()
	case "stop":
		sess.Reset()
		return stopPrompt()
	}
	return invalidSelectPrompt(sess.Shortlist)
}

func (m *Machine) handleFinalize(_ context.Context, sess *domain.Session, input string) string {
	switch input {
	case "add to cart":
		if sess.Selected == nil {
			sess.ClearPreferences()
			return "No product selected to add to cart. Let's explore more options. " + categoryPrompt()
		}
		sess.Cart = append(sess.Cart, *sess.Selected)
		return addedToCartPrompt(*sess.Selected)
	case "explore more":
		sess.ClearPreferences()
		return exploreMorePrompt()
	case "finalize my order":
		if len(sess.Cart) == 0 {
			sess.Step = domain.StepCategory
			return "Your cart is empty. Let's explore more gadgets! " + categoryPrompt()
		}
		receipt := receiptPrompt(sess.Cart)
		sess.Checkout()
		return receipt
	}
	return "Please select an option: add to cart, explore more, finalize my order"
}

// proceed moves to product selection when a shortlist exists; otherwise it
// redirects to the explore-more recovery without changing state.
func (m *Machine) proceed(sess *domain.Session) string {
	if len(sess.Shortlist) == 0 {
		return "Sorry, I don't have any recommendations to proceed with. Would you like to explore more options? (options: explore more, stop)"
	}
	sess.Step = domain.StepSelect
	return selectPrompt(sess.Shortlist)
}

// goBack pops the recommendation history when there is a previous entry.
func (m *Machine) goBack(ctx context.Context, sess *domain.Session) string {
	if !sess.PopShortlist() {
		return "There are no previous recommendations to go back to. Would you like to explore more options? (options: explore more, stop)"
	}
	body := m.composer.Recommendation(ctx, sess.Preferences, sess.Shortlist, compose.OccasionReturning)
	return body + "\n" + recommendOptionsPrompt()
}
