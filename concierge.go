package concierge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/stepedge/concierge/internal/logging"
	"github.com/stepedge/concierge/pkg/adapters/memory"
	"github.com/stepedge/concierge/pkg/catalog"
	"github.com/stepedge/concierge/pkg/compose"
	"github.com/stepedge/concierge/pkg/dialog"
	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/observability"
	"github.com/stepedge/concierge/pkg/ports"
	"github.com/stepedge/concierge/pkg/search"
	"github.com/stepedge/concierge/pkg/session"
)

// Version of the concierge module.
var Version = "0.3.0"

// TurnRequest is one inbound message. SessionID and Context are optional:
// without either, a new session is created. Context, when present, is the
// serialized session echoed back from a previous response and takes
// precedence over stored state, so clients may run fully stateless.
type TurnRequest struct {
	SessionID string         `json:"session_id,omitempty"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
}

// TurnResponse carries the reply and the opaque state to echo back on the
// next call.
type TurnResponse struct {
	SessionID string         `json:"session_id"`
	Reply     string         `json:"reply"`
	Context   map[string]any `json:"context"`
}

// Advisor is the high-level entry point: it wires the catalog, the dialog
// machine, the response composer, the similarity index and the session
// manager behind one Chat call.
type Advisor struct {
	catalog  *catalog.Catalog
	machine  *dialog.Machine
	composer *compose.Composer
	sessions *session.Manager
	index    *search.Index

	store      ports.SessionStore
	locker     ports.DistributedLocker
	generator  ports.Generator
	embedder   ports.Embedder
	genTimeout time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// Option configures the Advisor.
type Option func(*Advisor)

// WithStore injects a session store. Default is in-process memory.
func WithStore(store ports.SessionStore) Option {
	return func(a *Advisor) { a.store = store }
}

// WithLocker enables distributed session locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(a *Advisor) { a.locker = locker }
}

// WithGenerator enables the text-generation collaborator.
func WithGenerator(gen ports.Generator) Option {
	return func(a *Advisor) { a.generator = gen }
}

// WithEmbedder enables vector similarity search.
func WithEmbedder(embedder ports.Embedder) Option {
	return func(a *Advisor) { a.embedder = embedder }
}

// WithGenerationTimeout bounds each generator call.
func WithGenerationTimeout(d time.Duration) Option {
	return func(a *Advisor) { a.genTimeout = d }
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Advisor) { a.logger = logger }
}

// WithMetrics enables prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(a *Advisor) { a.metrics = m }
}

// New creates an Advisor over an already-loaded catalog. Without options it
// runs entirely in memory with deterministic responses and lexical search.
func New(cat *catalog.Catalog, opts ...Option) (*Advisor, error) {
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("catalog is required")
	}

	a := &Advisor{
		catalog:    cat,
		genTimeout: 10 * time.Second,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.store == nil {
		a.store = memory.NewStore()
	}

	composerOpts := []compose.Option{
		compose.WithTimeout(a.genTimeout),
		compose.WithLogger(a.logger),
		compose.WithFallbackHook(func(reason string) { a.metrics.IncFallback(reason) }),
	}
	if a.generator != nil {
		composerOpts = append(composerOpts, compose.WithGenerator(a.generator))
	}
	a.composer = compose.New(composerOpts...)

	a.machine = dialog.NewMachine(cat, a.composer, dialog.WithLogger(a.logger))

	sessionOpts := []session.Option{session.WithLogger(a.logger)}
	if a.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(a.locker))
	}
	a.sessions = session.NewManager(a.store, sessionOpts...)

	// Lexical index up front; BuildIndex upgrades it to vectors.
	index, err := search.Build(context.Background(), cat.Products(), nil)
	if err != nil {
		return nil, err
	}
	a.index = index

	return a, nil
}

// BuildIndex embeds the catalog for vector similarity search. Call it once
// at startup when an embedder is configured; on failure the lexical index
// stays in place.
func (a *Advisor) BuildIndex(ctx context.Context) error {
	if a.embedder == nil {
		return nil
	}
	index, err := search.Build(ctx, a.catalog.Products(), a.embedder)
	if err != nil {
		return fmt.Errorf("build search index: %w", err)
	}
	a.index = index
	return nil
}

// Chat processes one turn. The whole fetch-transition-compose-save sequence
// runs under the session lock, so turns for one session are serialized.
func (a *Advisor) Chat(ctx context.Context, req TurnRequest) (TurnResponse, error) {
	start := time.Now()

	id := req.SessionID
	if id == "" {
		id = session.NewID()
	}

	var resp TurnResponse
	err := a.sessions.Turn(ctx, id, func(ctx context.Context, sess *domain.Session) error {
		if len(req.Context) > 0 {
			decoded, err := DecodeSession(req.Context)
			if err != nil {
				a.logger.Warn("ignoring malformed turn context", "session_id", id, "err", err)
			} else {
				*sess = *decoded
			}
		}

		reply := a.machine.Turn(ctx, sess, req.Message)

		encoded, err := EncodeSession(sess)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		resp = TurnResponse{SessionID: id, Reply: reply, Context: encoded}
		return nil
	})
	if err != nil {
		return TurnResponse{}, err
	}

	if step, ok := resp.Context["step"].(string); ok {
		a.metrics.ObserveTurn(step, time.Since(start))
	}
	return resp, nil
}

// StartSession explicitly creates a fresh session and returns its id.
func (a *Advisor) StartSession(ctx context.Context) (string, error) {
	id := session.NewID()
	if err := a.sessions.Save(ctx, id, domain.NewSession()); err != nil {
		return "", fmt.Errorf("initialize session: %w", err)
	}
	return id, nil
}

// Search runs the similarity index over free text and picks the next guided
// question from the exchange so far.
func (a *Advisor) Search(ctx context.Context, query string, k int, questions, answers []string) ([]search.Match, string, error) {
	matches, err := a.index.Query(ctx, query, k)
	if err != nil {
		return nil, "", err
	}
	return matches, search.NextQuestion(questions, answers), nil
}

// Catalog returns the loaded product catalog.
func (a *Advisor) Catalog() *catalog.Catalog {
	return a.catalog
}

// Sessions returns the session manager.
func (a *Advisor) Sessions() *session.Manager {
	return a.sessions
}
