// ABOUTME: Orchestrates the full pipeline: route, retrieve, compose, reply
// ABOUTME: Short-circuit paths answer without touching retrieval or the model
package agent

import (
	"context"
	"fmt"
	"log"

	"github.com/rajulshakya777/AgentVerse/internal/chunker"
	"github.com/rajulshakya777/AgentVerse/internal/composer"
	"github.com/rajulshakya777/AgentVerse/internal/config"
	"github.com/rajulshakya777/AgentVerse/internal/index"
	"github.com/rajulshakya777/AgentVerse/internal/ingest"
	"github.com/rajulshakya777/AgentVerse/internal/llm"
	"github.com/rajulshakya777/AgentVerse/internal/models"
	"github.com/rajulshakya777/AgentVerse/internal/retriever"
	"github.com/rajulshakya777/AgentVerse/internal/router"
)

// vagueQueryTokenMax: a weak retrieval for a query shorter than this many
// tokens falls back to the general template instead of generation.
const vagueQueryTokenMax = 4

// Agent answers broker queries using the retrieval-augmented pipeline.
type Agent struct {
	cfg       *config.Config
	embedder  retriever.Embedder
	builder   *index.Builder
	templates *router.Templates
	composer  *composer.Composer
	extractor ingest.TextExtractor
}

// New wires the production agent: OpenAI client, sqlite and charm KV index
// backends ordered by preference, and the file extractor.
func New(cfg *config.Config) (*Agent, error) {
	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	sqlite := index.NewSQLiteBackend(cfg.IndexPath)
	kv := index.NewKVBackend(cfg.KVDBName)
	backends := []index.Backend{sqlite, kv}
	if cfg.PreferKVIndex {
		backends = []index.Backend{kv, sqlite}
	}

	templates := router.NewTemplates(cfg.AgentName, nil)
	return &Agent{
		cfg:       cfg,
		embedder:  client,
		builder:   index.NewBuilder(client, backends...),
		templates: templates,
		composer:  composer.New(client, templates, cfg.AgentName, cfg.MaxHistoryTurns),
		extractor: ingest.NewFileExtractor(),
	}, nil
}

// NewWithComponents assembles an agent from explicit parts. Used by tests and
// by callers that substitute capabilities.
func NewWithComponents(cfg *config.Config, embedder retriever.Embedder, builder *index.Builder,
	templates *router.Templates, comp *composer.Composer, extractor ingest.TextExtractor) *Agent {
	return &Agent{
		cfg:       cfg,
		embedder:  embedder,
		builder:   builder,
		templates: templates,
		composer:  comp,
		extractor: extractor,
	}
}

// Respond produces a reply for the query given the session's conversation
// history. The history is read-only; session ownership stays with the caller.
func (a *Agent) Respond(ctx context.Context, query string, history []models.Turn) (string, error) {
	intent := router.Classify(query)
	switch intent {
	case router.IntentIdentity:
		return a.templates.Identity(), nil
	case router.IntentPersonal:
		return a.templates.Empathy(), nil
	case router.IntentSmallTalk:
		return a.templates.Greeting(), nil
	}

	// Index failures (config, total backend exhaustion) propagate;
	// retrieval failures degrade to a templated reply.
	idx, err := a.EnsureIndex(ctx)
	if err != nil {
		return "", err
	}

	res, err := retriever.New(a.embedder, idx, a.cfg.WeakThreshold).Retrieve(ctx, query, a.cfg.TopK)
	if err != nil {
		log.Printf("warning: retrieval failed, using templated fallback: %v", err)
		return a.templates.GeneralWithError(err), nil
	}

	if res.Weak && (router.IsOutOfScope(query) || router.TokenCount(query) < vagueQueryTokenMax) {
		return a.templates.General(), nil
	}

	return a.composer.Compose(ctx, query, history, res.Chunks), nil
}

// Search runs raw top-k retrieval against the index, exposing the weak
// signal to callers that want it.
func (a *Agent) Search(ctx context.Context, query string, k int) (retriever.Result, error) {
	idx, err := a.EnsureIndex(ctx)
	if err != nil {
		return retriever.Result{}, err
	}
	return retriever.New(a.embedder, idx, a.cfg.WeakThreshold).Retrieve(ctx, query, k)
}

// EnsureIndex returns the process-wide index, building or loading it on
// first use. Later calls return the same cached instance.
func (a *Agent) EnsureIndex(ctx context.Context) (index.Index, error) {
	if idx := a.builder.Cached(); idx != nil {
		return idx, nil
	}

	chatChunks, policyChunks, err := a.loadCorpus()
	if err != nil {
		return nil, err
	}
	return a.builder.BuildOrLoad(ctx, chatChunks, policyChunks)
}

// loadCorpus ingests, chunks, and deduplicates the chat and policy batches.
// The two batches are deduplicated independently so their ordering stays
// reproducible.
func (a *Agent) loadCorpus() (chatChunks, policyChunks []models.Chunk, err error) {
	splitter := chunker.NewSplitter(a.cfg.ChunkSize, a.cfg.ChunkOverlap, a.cfg.MinChunkChars)

	chatDocs, err := ingest.LoadChatTranscripts(a.cfg.ChatDataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading chat data: %w", err)
	}
	for _, doc := range chatDocs {
		chatChunks = append(chatChunks, splitter.SplitDocument(doc, "chat")...)
	}
	chatChunks = chunker.Dedupe(chatChunks)

	policyDocs, err := ingest.LoadPolicyDocuments(a.cfg.PolicyDocsPath, a.extractor)
	if err != nil {
		return nil, nil, fmt.Errorf("loading policy documents: %w", err)
	}
	for _, doc := range policyDocs {
		policyChunks = append(policyChunks, splitter.SplitDocument(doc, doc.Source())...)
	}
	policyChunks = chunker.Dedupe(policyChunks)

	log.Printf("corpus ready: %d chat chunks, %d policy chunks", len(chatChunks), len(policyChunks))
	return chatChunks, policyChunks, nil
}
