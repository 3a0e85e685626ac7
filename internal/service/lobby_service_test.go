package service

import (
	"testing"

	"github.com/shrey0196/beatcoders-dev/internal/models"
)

func TestLobbyService_InviteDeliveredWhenOnline(t *testing.T) {
	f := newBattleFixture()
	lobbyNotifier := newFakeNotifier()
	lobby := NewLobbyService(lobbyNotifier, f.battle)

	if err := lobby.Invite("alice", "Alice", "bob"); err != nil {
		t.Fatalf("Invite failed: %v", err)
	}

	events := lobbyNotifier.eventsFor("bob")
	if len(events) != 1 {
		t.Fatalf("bob should get exactly one event, got %d", len(events))
	}
	challenge, ok := events[0].(models.ChallengeReceivedEvent)
	if !ok {
		t.Fatalf("unexpected event type %T", events[0])
	}
	if challenge.FromID != "alice" || challenge.FromName != "Alice" {
		t.Errorf("unexpected challenge payload: %+v", challenge)
	}
}

func TestLobbyService_InviteToOfflinePlayerFails(t *testing.T) {
	f := newBattleFixture()
	lobbyNotifier := newFakeNotifier()
	lobbyNotifier.setOffline("bob")
	lobby := NewLobbyService(lobbyNotifier, f.battle)

	if err := lobby.Invite("alice", "Alice", "bob"); err != ErrUserNotFound {
		t.Errorf("Invite to offline player should return ErrUserNotFound, got %v", err)
	}
	if len(lobbyNotifier.eventsFor("bob")) != 0 {
		t.Error("No event should be queued for an offline target")
	}
}

func TestLobbyService_AcceptStartsPrivateMatch(t *testing.T) {
	f := newBattleFixture()
	// Neither player is on a battle connection yet.
	f.notifier.setOffline("alice")
	f.notifier.setOffline("bob")

	lobbyNotifier := newFakeNotifier()
	lobby := NewLobbyService(lobbyNotifier, f.battle)

	if err := lobby.Accept("bob", "alice"); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	var matchID string
	for _, pair := range []struct{ player, opponent string }{
		{"alice", "bob"},
		{"bob", "alice"},
	} {
		events := lobbyNotifier.eventsFor(pair.player)
		if len(events) != 1 {
			t.Fatalf("%s should get exactly one event, got %d", pair.player, len(events))
		}
		start, ok := events[0].(models.MatchStartEvent)
		if !ok {
			t.Fatalf("unexpected event type %T", events[0])
		}
		if start.Opponent != pair.opponent {
			t.Errorf("%s got opponent %q, want %q", pair.player, start.Opponent, pair.opponent)
		}
		if matchID == "" {
			matchID = start.MatchID
		} else if start.MatchID != matchID {
			t.Error("Both players must be pointed at the same match")
		}
	}

	// The match waits for both battle connections before starting.
	if _, ok := f.notifier.matchFoundFor("alice"); ok {
		t.Error("Match must stay pending until both players connect")
	}
	if !f.battle.InMatch("alice") || !f.battle.InMatch("bob") {
		t.Error("Both players should be reserved in the pending match")
	}
}
