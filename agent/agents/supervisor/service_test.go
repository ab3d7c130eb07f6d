package supervisor

import (
	"context"
	"errors"
	"testing"
	"time"

	contractx "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/contract"
	statex "github.com/tanpawarit/Chinook-Music-Store-Supervisor/agent/state"
)

type fakeStore struct {
	loadState *statex.ConversationState
	loadErr   error
	saveErr   error
	saved     []*statex.ConversationState
}

func (f *fakeStore) Load(ctx context.Context, sessionID string) (*statex.ConversationState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.loadState == nil {
		return nil, statex.ErrStateNotFound
	}
	return f.loadState.Clone(), nil
}

func (f *fakeStore) Save(ctx context.Context, st *statex.ConversationState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, st.Clone())
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, sessionID string) error {
	return nil
}

type fakeRouter struct {
	decision contractx.RouteDecision
	err      error
	calls    int
	lastReqs []contractx.RouteRequest
}

func (f *fakeRouter) Route(ctx context.Context, req contractx.RouteRequest) (contractx.RouteDecision, error) {
	f.calls++
	f.lastReqs = append(f.lastReqs, req)
	if f.err != nil {
		return contractx.RouteDecision{}, f.err
	}
	return f.decision, nil
}

type fakeSpecialist struct {
	resp     contractx.SpecialistResponse
	err      error
	calls    int
	lastReqs []contractx.SpecialistRequest
}

func (f *fakeSpecialist) Run(ctx context.Context, req contractx.SpecialistRequest) (contractx.SpecialistResponse, error) {
	f.calls++
	f.lastReqs = append(f.lastReqs, req)
	if f.err != nil {
		return contractx.SpecialistResponse{}, f.err
	}
	return f.resp, nil
}

type fakeComposer struct {
	message  string
	err      error
	calls    int
	lastReqs []contractx.ComposeRequest
}

func (f *fakeComposer) Compose(ctx context.Context, req contractx.ComposeRequest) (string, error) {
	f.calls++
	f.lastReqs = append(f.lastReqs, req)
	if f.err != nil {
		return "", f.err
	}
	return f.message, nil
}

type fakeRegistry struct {
	router   contractx.Router
	composer contractx.Composer
	catalog  contractx.Specialist
	order    contractx.Specialist
	database contractx.Specialist
}

func (f *fakeRegistry) Router() contractx.Router {
	return f.router
}

func (f *fakeRegistry) Composer() contractx.Composer {
	return f.composer
}

func (f *fakeRegistry) Catalog() contractx.Specialist {
	return f.catalog
}

func (f *fakeRegistry) Order() contractx.Specialist {
	return f.order
}

func (f *fakeRegistry) Database() contractx.Specialist {
	return f.database
}

func TestHandleMessageInvalidInput(t *testing.T) {
	t.Parallel()

	s := newTestSupervisor(t,
		&fakeStore{},
		&fakeRegistry{
			router:   &fakeRouter{},
			composer: &fakeComposer{},
			catalog:  &fakeSpecialist{},
			order:    &fakeSpecialist{},
			database: &fakeSpecialist{},
		},
	)

	_, err := s.HandleMessage(context.Background(), "   ", "hello")
	if !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	_, err = s.HandleMessage(context.Background(), "s1", "    ")
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestHandleMessageCatalogPath(t *testing.T) {
	t.Parallel()

	store := &fakeStore{loadErr: statex.ErrStateNotFound}
	router := &fakeRouter{
		decision: contractx.RouteDecision{Agent: contractx.AgentTypeCatalog, Reason: "genre lookup"},
	}
	catalog := &fakeSpecialist{
		resp: contractx.SpecialistResponse{
			Message: "Found 5 Rock tracks.",
			ToolResults: []contractx.ToolResult{
				{Tool: "catalog.search", Result: []contractx.TrackHit{{TrackID: 1, Name: "Walk This Way"}}},
			},
		},
	}
	composer := &fakeComposer{message: "Here are 5 Rock tracks you might like."}

	s := newTestSupervisor(t,
		store,
		&fakeRegistry{
			router:   router,
			composer: composer,
			catalog:  catalog,
			order:    &fakeSpecialist{},
			database: &fakeSpecialist{},
		},
	)

	reply, err := s.HandleMessage(context.Background(), "session-1", "show me rock tracks")
	if err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if reply != "Here are 5 Rock tracks you might like." {
		t.Fatalf("unexpected reply: %q", reply)
	}
	if router.calls != 1 {
		t.Fatalf("expected router called once, got %d", router.calls)
	}
	if catalog.calls != 1 {
		t.Fatalf("expected catalog specialist called once, got %d", catalog.calls)
	}
	if composer.calls != 1 {
		t.Fatalf("expected composer called once, got %d", composer.calls)
	}
	if composer.lastReqs[0].Agent != contractx.AgentTypeCatalog {
		t.Fatalf("composer saw wrong agent: %s", composer.lastReqs[0].Agent)
	}
	if len(composer.lastReqs[0].ToolResults) != 1 {
		t.Fatalf("composer must see the specialist tool results, got %d", len(composer.lastReqs[0].ToolResults))
	}

	if len(store.saved) != 1 {
		t.Fatalf("expected one save, got %d", len(store.saved))
	}
	saved := store.saved[0]
	if len(saved.Turns) != 2 {
		t.Fatalf("expected user+assistant turns, got %d", len(saved.Turns))
	}
	if saved.Turns[0].Role != statex.RoleUser || saved.Turns[0].Content != "show me rock tracks" {
		t.Fatalf("unexpected user turn: %+v", saved.Turns[0])
	}
	if saved.Turns[1].Role != statex.RoleAssistant || saved.Turns[1].Agent != contractx.AgentTypeCatalog {
		t.Fatalf("unexpected assistant turn: %+v", saved.Turns[1])
	}
}

func TestHandleMessageRoutesByDecision(t *testing.T) {
	t.Parallel()

	order := &fakeSpecialist{resp: contractx.SpecialistResponse{Message: "Invoice 413 created."}}
	catalog := &fakeSpecialist{}
	database := &fakeSpecialist{}

	s := newTestSupervisor(t,
		&fakeStore{loadErr: statex.ErrStateNotFound},
		&fakeRegistry{
			router:   &fakeRouter{decision: contractx.RouteDecision{Agent: contractx.AgentTypeOrder}},
			composer: &fakeComposer{message: "Your invoice number is 413."},
			catalog:  catalog,
			order:    order,
			database: database,
		},
	)

	if _, err := s.HandleMessage(context.Background(), "session-2", "buy track 5 for customer 12"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if order.calls != 1 {
		t.Fatalf("expected order specialist called once, got %d", order.calls)
	}
	if catalog.calls != 0 || database.calls != 0 {
		t.Fatal("only the routed specialist may run")
	}
}

func TestHandleMessagePassesHistoryToSpecialist(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	st := statex.NewConversationState("session-3", now)
	st.AppendUserTurn("show me jazz tracks", now)
	st.AppendAssistantTurn(contractx.AgentTypeCatalog, "Here are 2 Jazz tracks.", now)

	database := &fakeSpecialist{resp: contractx.SpecialistResponse{Message: "There are 347 Rock tracks."}}
	router := &fakeRouter{decision: contractx.RouteDecision{Agent: contractx.AgentTypeDatabase}}

	s := newTestSupervisor(t,
		&fakeStore{loadState: st},
		&fakeRegistry{
			router:   router,
			composer: &fakeComposer{message: "347 tracks."},
			catalog:  &fakeSpecialist{},
			order:    &fakeSpecialist{},
			database: database,
		},
	)

	if _, err := s.HandleMessage(context.Background(), "session-3", "how many rock tracks exist?"); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	wantHistory := "user: show me jazz tracks\nassistant: Here are 2 Jazz tracks."
	if got := router.lastReqs[0].History; got != wantHistory {
		t.Fatalf("router history mismatch:\n got %q\nwant %q", got, wantHistory)
	}
	if got := database.lastReqs[0].History; got != wantHistory {
		t.Fatalf("specialist history mismatch:\n got %q\nwant %q", got, wantHistory)
	}
}

func TestHandleMessageEmptyComposedReply(t *testing.T) {
	t.Parallel()

	s := newTestSupervisor(t,
		&fakeStore{loadErr: statex.ErrStateNotFound},
		&fakeRegistry{
			router:   &fakeRouter{decision: contractx.RouteDecision{Agent: contractx.AgentTypeCatalog}},
			composer: &fakeComposer{message: "   "},
			catalog:  &fakeSpecialist{resp: contractx.SpecialistResponse{Message: "found tracks"}},
			order:    &fakeSpecialist{},
			database: &fakeSpecialist{},
		},
	)

	_, err := s.HandleMessage(context.Background(), "session-4", "hello")
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestHandleMessageSaveErrorPropagates(t *testing.T) {
	t.Parallel()

	saveErr := errors.New("save failed")
	store := &fakeStore{
		loadErr: statex.ErrStateNotFound,
		saveErr: saveErr,
	}

	s := newTestSupervisor(t,
		store,
		&fakeRegistry{
			router:   &fakeRouter{decision: contractx.RouteDecision{Agent: contractx.AgentTypeCatalog}},
			composer: &fakeComposer{message: "ok"},
			catalog:  &fakeSpecialist{resp: contractx.SpecialistResponse{Message: "ok"}},
			order:    &fakeSpecialist{},
			database: &fakeSpecialist{},
		},
	)

	if _, err := s.HandleMessage(context.Background(), "session-5", "hello"); !errors.Is(err, saveErr) {
		t.Fatalf("expected save error, got %v", err)
	}
}

func TestHandleMessageRouterErrorPropagates(t *testing.T) {
	t.Parallel()

	routeErr := errors.New("router unavailable")
	store := &fakeStore{loadErr: statex.ErrStateNotFound}

	s := newTestSupervisor(t,
		store,
		&fakeRegistry{
			router:   &fakeRouter{err: routeErr},
			composer: &fakeComposer{message: "ok"},
			catalog:  &fakeSpecialist{},
			order:    &fakeSpecialist{},
			database: &fakeSpecialist{},
		},
	)

	if _, err := s.HandleMessage(context.Background(), "session-6", "hello"); !errors.Is(err, routeErr) {
		t.Fatalf("expected router error, got %v", err)
	}
	if len(store.saved) != 0 {
		t.Fatalf("nothing may be saved when routing fails, got %d saves", len(store.saved))
	}
}

func newTestSupervisor(t *testing.T, store statex.Store, registry contractx.Registry) *Supervisor {
	t.Helper()
	s, err := New(store, registry)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}
