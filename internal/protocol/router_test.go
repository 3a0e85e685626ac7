package protocol

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/shrey0196/beatcoders-dev/internal/models"
	"github.com/shrey0196/beatcoders-dev/internal/service"
	"github.com/shrey0196/beatcoders-dev/pkg/judge"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("test", "error")
	os.Exit(m.Run())
}

// fakeNotifier records sent events per identity.
type fakeNotifier struct {
	mu     sync.Mutex
	events map[string][]interface{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{events: make(map[string][]interface{})}
}

func (f *fakeNotifier) Send(userID string, event interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[userID] = append(f.events[userID], event)
}

func (f *fakeNotifier) IsOnline(string) bool { return true }

func (f *fakeNotifier) eventTypes(userID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var types []string
	for _, e := range f.events[userID] {
		switch v := e.(type) {
		case models.MatchFoundEvent:
			types = append(types, v.Type)
		case models.SubmitResultEvent:
			types = append(types, v.Type)
		case models.AttackEvent:
			types = append(types, v.Type)
		case models.GameOverEvent:
			types = append(types, v.Type)
		case models.ChallengeReceivedEvent:
			types = append(types, v.Type)
		case models.MatchStartEvent:
			types = append(types, v.Type)
		}
	}
	return types
}

// passAllJudge passes every case.
type passAllJudge struct{}

func (passAllJudge) RunTests(_ context.Context, _ string, cases []judge.TestCase) []judge.CaseResult {
	results := make([]judge.CaseResult, len(cases))
	for i := range results {
		results[i].Passed = true
	}
	return results
}

// fakeRatingStore is an in-memory users table.
type fakeRatingStore struct {
	mu      sync.Mutex
	ratings map[string]int
}

func (f *fakeRatingStore) GetEloRating(username string) (int, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.ratings[username]
	return r, ok, nil
}

func (f *fakeRatingStore) UpdateEloRating(username string, rating int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratings[username] = rating
	return nil
}

type routerFixture struct {
	battleRouter *BattleRouter
	lobbyRouter  *LobbyRouter
	notifier     *fakeNotifier
	ratings      *service.RatingService
	store        *fakeRatingStore
}

func newRouterFixture() *routerFixture {
	notifier := newFakeNotifier()
	store := &fakeRatingStore{ratings: make(map[string]int)}
	ratings := service.NewRatingService(store)

	battle := service.NewBattleService(
		service.NewProblemRegistry(),
		passAllJudge{},
		ratings,
		service.NewEloService(),
		notifier,
	)
	lobby := service.NewLobbyService(notifier, battle)

	return &routerFixture{
		battleRouter: NewBattleRouter(service.NewQueueService(), battle, ratings),
		lobbyRouter:  NewLobbyRouter(lobby),
		notifier:     notifier,
		ratings:      ratings,
		store:        store,
	}
}

func mustMarshal(t *testing.T, msg models.ClientMessage) []byte {
	t.Helper()
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return data
}

func TestBattleRouter_QueuePairing(t *testing.T) {
	f := newRouterFixture()
	join := mustMarshal(t, models.ClientMessage{Type: models.MsgJoinQueue})

	f.battleRouter.HandleMessage("alice", join)

	if got := f.notifier.eventTypes("alice"); len(got) != 0 {
		t.Fatalf("A lone queued player should receive nothing, got %v", got)
	}

	f.battleRouter.HandleMessage("bob", join)

	for _, p := range []string{"alice", "bob"} {
		types := f.notifier.eventTypes(p)
		if len(types) != 1 || types[0] != models.EvtMatchFound {
			t.Errorf("%s events = %v, want [MATCH_FOUND]", p, types)
		}
	}

	// A third player waits for a fourth.
	f.battleRouter.HandleMessage("carol", join)
	if got := f.notifier.eventTypes("carol"); len(got) != 0 {
		t.Errorf("carol events = %v, want none", got)
	}
}

func TestBattleRouter_MalformedMessageDropped(t *testing.T) {
	f := newRouterFixture()

	f.battleRouter.HandleMessage("alice", []byte("not json at all"))
	f.battleRouter.HandleMessage("alice", mustMarshal(t, models.ClientMessage{Type: "NO_SUCH_TYPE"}))

	if got := f.notifier.eventTypes("alice"); len(got) != 0 {
		t.Errorf("Malformed input produced events: %v", got)
	}
}

func TestBattleRouter_SubmitFlowEndsMatch(t *testing.T) {
	f := newRouterFixture()
	join := mustMarshal(t, models.ClientMessage{Type: models.MsgJoinQueue})

	f.battleRouter.HandleMessage("alice", join)
	f.battleRouter.HandleMessage("bob", join)

	// Every seeded problem has at least five cases, so a full solve
	// deals at least 100 damage from full health.
	f.battleRouter.HandleMessage("alice", mustMarshal(t, models.ClientMessage{
		Type: models.MsgSubmitCode,
		Code: "def solve(): pass",
	}))

	aliceTypes := f.notifier.eventTypes("alice")
	want := []string{models.EvtMatchFound, models.EvtSubmitResult, models.EvtAttack, models.EvtGameOver}
	if len(aliceTypes) != len(want) {
		t.Fatalf("alice events = %v, want %v", aliceTypes, want)
	}
	for i := range want {
		if aliceTypes[i] != want[i] {
			t.Fatalf("alice events = %v, want %v", aliceTypes, want)
		}
	}

	bobTypes := f.notifier.eventTypes("bob")
	wantBob := []string{models.EvtMatchFound, models.EvtAttack, models.EvtGameOver}
	if len(bobTypes) != len(wantBob) {
		t.Fatalf("bob events = %v, want %v", bobTypes, wantBob)
	}
}

func TestBattleRouter_DisconnectLeavesQueue(t *testing.T) {
	f := newRouterFixture()
	join := mustMarshal(t, models.ClientMessage{Type: models.MsgJoinQueue})

	f.battleRouter.HandleMessage("alice", join)
	f.battleRouter.HandleDisconnect("alice")
	f.battleRouter.HandleMessage("bob", join)

	if got := f.notifier.eventTypes("bob"); len(got) != 0 {
		t.Errorf("bob should still be waiting after alice left the queue, got %v", got)
	}
}

func TestBattleRouter_ConnectLoadsRating(t *testing.T) {
	f := newRouterFixture()
	f.store.ratings["alice"] = 1380

	f.battleRouter.HandleConnect("alice_7777")

	if got := f.ratings.GetRating("alice_7777"); got != 1380 {
		t.Errorf("rating after connect = %d, want 1380", got)
	}

	f.battleRouter.HandleDisconnect("alice_7777")

	if got := f.ratings.GetRating("alice_7777"); got != models.DefaultRating {
		t.Errorf("rating after disconnect = %d, want default %d", got, models.DefaultRating)
	}
}

func TestLobbyRouter_ChallengeFlow(t *testing.T) {
	f := newRouterFixture()

	f.lobbyRouter.HandleMessage("alice", mustMarshal(t, models.ClientMessage{
		Type:     models.MsgSendChallenge,
		TargetID: "bob",
	}))

	bobTypes := f.notifier.eventTypes("bob")
	if len(bobTypes) != 1 || bobTypes[0] != models.EvtChallengeReceived {
		t.Fatalf("bob events = %v, want [CHALLENGE_RECEIVED]", bobTypes)
	}

	f.lobbyRouter.HandleMessage("bob", mustMarshal(t, models.ClientMessage{
		Type:         models.MsgAcceptChallenge,
		ChallengerID: "alice",
	}))

	// Both sides are told which match to connect to. The shared
	// notifier also delivers the battle MATCH_FOUND once the pending
	// match activates, since IsOnline is always true here.
	for _, p := range []string{"alice", "bob"} {
		types := f.notifier.eventTypes(p)
		var sawStart bool
		for _, ty := range types {
			if ty == models.EvtMatchStart {
				sawStart = true
			}
		}
		if !sawStart {
			t.Errorf("%s events = %v, want a MATCH_START", p, types)
		}
	}
}
