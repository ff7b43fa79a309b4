// Package console holds the interactive application state and the commands
// that change it.
//
// Every command takes the lock, updates State and returns a snapshot. Network
// calls run outside the lock; a search response is applied only if no newer
// payload (search or manual paste) arrived while it was in flight.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/doeshing/synora-ui/internal/application/action"
	"github.com/doeshing/synora-ui/internal/application/command"
	"github.com/doeshing/synora-ui/internal/application/filter"
	"github.com/doeshing/synora-ui/internal/application/payload"
	"github.com/doeshing/synora-ui/internal/application/render"
	"github.com/doeshing/synora-ui/internal/application/search"
	"github.com/doeshing/synora-ui/internal/application/settings"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// Session keys in the session namespace.
const (
	SessionPayloadKey = "payload"
	SessionFiltersKey = "filters"
)

// Locale is a LocaleProvider whose language can be switched at runtime.
type Locale interface {
	ports.LocaleProvider
	Use(lang string)
}

// State is the full observable console state.
type State struct {
	Payload     *domain.ResultPayload
	Raw         string
	Filters     domain.FilterState
	Language    string
	SearchMeta  string
	ActionMeta  string
	PayloadErr  string
	LastCommand string
	View        domain.View
}

// Deps groups the collaborators of a Console.
type Deps struct {
	Search    *search.Client
	Executor  *action.Executor
	History   ports.HistoryRepository
	Settings  *settings.Service
	Clipboard ports.Clipboard
	KV        ports.KeyValueStore
	Builder   command.Builder
	Locale    Locale
	Logger    ports.Logger
}

// Console owns State.
type Console struct {
	deps Deps

	mu         sync.Mutex
	state      State
	generation uint64
	searching  bool
}

// New builds a Console and restores the persisted language and session.
func New(deps Deps) *Console {
	c := &Console{deps: deps}
	c.state.Filters = domain.DefaultFilterState()
	c.restore()
	return c
}

// Snapshot returns a copy of the current state.
func (c *Console) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Search runs a live query. Blank queries and overlapping searches are
// rejected before any network call.
func (c *Console) Search(ctx context.Context, query string) (State, error) {
	c.mu.Lock()
	if strings.TrimSpace(query) == "" {
		c.state.SearchMeta = c.text("prompts.enterQuery")
		defer c.mu.Unlock()
		return c.snapshot(), domain.ErrEmptyQuery
	}
	if c.searching {
		defer c.mu.Unlock()
		return c.snapshot(), domain.ErrSearchInFlight
	}
	c.searching = true
	c.generation++
	gen := c.generation
	prevMeta := c.state.SearchMeta
	c.state.SearchMeta = c.text("prompts.searching")
	c.mu.Unlock()

	result, err := c.deps.Search.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.searching = false
	if gen != c.generation {
		c.debug("discarding stale search response", map[string]interface{}{"query": query})
		c.state.SearchMeta = prevMeta
		return c.snapshot(), domain.ErrStaleResponse
	}
	if err != nil {
		c.state.SearchMeta = c.searchErrorText(err)
		return c.snapshot(), err
	}

	c.state.SearchMeta = c.format("prompts.liveOk", map[string]any{"groups": len(result.Payload.Groups)})
	c.setPayload(result.Payload, result.Raw)
	return c.snapshot(), nil
}

// RenderManual parses pasted text. On a parse error the previous payload
// stays in place and a search in flight is still applied.
func (c *Console) RenderManual(text string) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := payload.Parse(text)
	if err != nil {
		c.state.PayloadErr = c.format("prompts.invalidJson", map[string]any{"msg": cause(err)})
		return c.snapshot(), err
	}
	c.generation++
	c.setPayload(p, text)
	return c.snapshot(), nil
}

// ApplyFilter validates and applies a filter selection.
func (c *Console) ApplyFilter(risk, groupType string) (State, error) {
	fs, err := filter.ParseState(risk, groupType)
	if err != nil {
		return c.Snapshot(), err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filters = fs
	c.persistFilters()
	c.rerender()
	return c.snapshot(), nil
}

// ResetFilters restores all/all.
func (c *Console) ResetFilters() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filters = domain.DefaultFilterState()
	c.persistFilters()
	c.rerender()
	return c.snapshot()
}

// SetLanguage switches and persists the language, then re-renders.
func (c *Console) SetLanguage(lang string) (State, error) {
	stored, err := c.deps.Settings.SetLanguage(lang)
	if err != nil {
		return c.Snapshot(), err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deps.Locale.Use(stored)
	c.state.Language = stored
	c.rerender()
	return c.snapshot(), nil
}

// BuildCommand formats the command for req and remembers it as the last
// built command.
func (c *Console) BuildCommand(req domain.ActionRequest) (string, error) {
	cmd := c.deps.Builder.Build(req.ActionID, req.Risk())
	if cmd == "" {
		return "", domain.ErrEmptyAction
	}
	c.mu.Lock()
	c.state.LastCommand = cmd
	c.mu.Unlock()
	return cmd, nil
}

// RecordHistory adds cmd to the command history.
func (c *Console) RecordHistory(cmd string) error {
	return c.deps.History.Record(cmd)
}

// CopyToClipboard copies text, defaulting to the last built command.
func (c *Console) CopyToClipboard(text string) error {
	if text == "" {
		text = c.Snapshot().LastCommand
	}
	if text == "" {
		return domain.NewError(domain.ErrKindValidation, "nothing to copy", nil)
	}
	if c.deps.Clipboard == nil || !c.deps.Clipboard.Enabled() {
		return errors.New("clipboard unavailable")
	}
	return c.deps.Clipboard.Copy(text)
}

// Execute builds and records the command for req, then runs it. A cancelled
// confirmation leaves ActionMeta untouched.
func (c *Console) Execute(ctx context.Context, req domain.ActionRequest) (State, domain.ActionOutcome, error) {
	cmd, err := c.BuildCommand(req)
	if err != nil {
		return c.Snapshot(), domain.ActionOutcome{State: domain.ActionRejected, Err: err}, err
	}
	if err := c.RecordHistory(cmd); err != nil {
		c.warn("history record failed", err)
	}

	if !domain.RequiresConfirmation(req.Risk()) {
		c.setActionMeta(c.text("prompts.actionRunning"))
	}
	outcome, err := c.deps.Executor.Execute(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if meta, ok := c.actionText(outcome); ok {
		c.state.ActionMeta = meta
	}
	return c.snapshot(), outcome, err
}

// ItemAt returns the card at a 1-based position in the current view.
func (c *Console) ItemAt(n int) (domain.Card, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := 0
	for _, g := range c.state.View.Groups {
		for _, card := range g.Cards {
			i++
			if i == n {
				return card, true
			}
		}
	}
	return domain.Card{}, false
}

func (c *Console) setActionMeta(text string) {
	c.mu.Lock()
	c.state.ActionMeta = text
	c.mu.Unlock()
}

func (c *Console) actionText(o domain.ActionOutcome) (string, bool) {
	switch o.State {
	case domain.ActionSucceeded:
		return c.text("prompts.actionOk"), true
	case domain.ActionFailedWrongContentType:
		return c.text("prompts.actionHtmlError"), true
	case domain.ActionFailedMalformed:
		return c.text("prompts.actionNonJsonError"), true
	case domain.ActionFailedStructured:
		return c.format("prompts.actionFail", map[string]any{"code": o.ExitCodeText()}), true
	case domain.ActionFailedTransport, domain.ActionRejected:
		return c.format("prompts.actionException", map[string]any{"msg": cause(o.Err)}), true
	default:
		return "", false
	}
}

func (c *Console) searchErrorText(err error) string {
	kind, _ := domain.KindOf(err)
	switch kind {
	case domain.ErrKindWrongContentType:
		return c.text("prompts.liveHtmlError")
	case domain.ErrKindMalformedResponse:
		return c.text("prompts.liveNonJsonError")
	case domain.ErrKindStructuredFailure:
		var ce *domain.ConsoleError
		if errors.As(err, &ce) && ce.Message != "" {
			return ce.Message
		}
		return c.text("prompts.liveFailed")
	default:
		return c.format("prompts.liveException", map[string]any{"msg": cause(err)})
	}
}

// setPayload replaces the payload wholesale. Callers hold the lock.
func (c *Console) setPayload(p domain.ResultPayload, raw string) {
	c.state.Payload = &p
	c.state.Raw = raw
	c.state.PayloadErr = ""
	c.persistPayload(p)
	c.rerender()
}

func (c *Console) rerender() {
	if c.state.Payload == nil {
		c.state.View = domain.View{}
		return
	}
	c.state.View = render.Render(*c.state.Payload, c.state.Filters, c.deps.Locale)
}

func (c *Console) snapshot() State {
	s := c.state
	if s.Payload != nil {
		p := *s.Payload
		s.Payload = &p
	}
	return s
}

func (c *Console) restore() {
	lang := c.deps.Settings.Language()
	c.deps.Locale.Use(lang)
	c.state.Language = lang

	if data, ok := c.load(SessionFiltersKey); ok {
		var fs domain.FilterState
		if err := json.Unmarshal(data, &fs); err == nil {
			if parsed, err := filter.ParseState(fs.Risk, fs.GroupType); err == nil {
				c.state.Filters = parsed
			}
		}
	}
	if data, ok := c.load(SessionPayloadKey); ok {
		if p, err := payload.Parse(string(data)); err == nil {
			c.state.Payload = &p
			c.state.Raw = string(data)
		}
	}
	c.rerender()
}

func (c *Console) load(key string) ([]byte, bool) {
	if c.deps.KV == nil {
		return nil, false
	}
	data, ok, err := c.deps.KV.Get(domain.NamespaceSession, key)
	if err != nil {
		c.warn("session read failed", err)
		return nil, false
	}
	return data, ok
}

func (c *Console) persistPayload(p domain.ResultPayload) {
	c.persist(SessionPayloadKey, p)
}

func (c *Console) persistFilters() {
	c.persist(SessionFiltersKey, c.state.Filters)
}

func (c *Console) persist(key string, v any) {
	if c.deps.KV == nil {
		return
	}
	data, err := json.Marshal(v)
	if err == nil {
		err = c.deps.KV.Set(domain.NamespaceSession, key, data)
	}
	if err != nil {
		c.warn("session write failed", err)
	}
}

func (c *Console) text(key string) string {
	return c.deps.Locale.Resolve(key)
}

func (c *Console) format(key string, vars map[string]any) string {
	return c.deps.Locale.Format(key, vars)
}

func (c *Console) debug(msg string, fields map[string]interface{}) {
	if c.deps.Logger != nil {
		c.deps.Logger.Debug(msg, fields)
	}
}

func (c *Console) warn(msg string, err error) {
	if c.deps.Logger != nil {
		c.deps.Logger.Warn(msg, map[string]interface{}{"error": err.Error()})
	}
}

// cause returns the innermost message of a ConsoleError chain, or the error
// text itself.
func cause(err error) string {
	if err == nil {
		return ""
	}
	var ce *domain.ConsoleError
	if errors.As(err, &ce) && ce.Err != nil {
		return ce.Err.Error()
	}
	return err.Error()
}
