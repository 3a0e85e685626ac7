package models

import "github.com/shrey0196/beatcoders-dev/pkg/judge"

// Inbound message types (battle socket)
const (
	MsgJoinQueue          = "JOIN_QUEUE"
	MsgCreatePrivateMatch = "CREATE_PRIVATE_MATCH"
	MsgJoinMatch          = "JOIN_MATCH"
	MsgSubmitCode         = "SUBMIT_CODE"
)

// Inbound message types (lobby socket)
const (
	MsgSendChallenge   = "SEND_CHALLENGE"
	MsgAcceptChallenge = "ACCEPT_CHALLENGE"
)

// Outbound event types
const (
	EvtMatchFound        = "MATCH_FOUND"
	EvtSubmitResult      = "SUBMIT_RESULT"
	EvtAttack            = "ATTACK"
	EvtGameOver          = "GAME_OVER"
	EvtChallengeReceived = "CHALLENGE_RECEIVED"
	EvtMatchStart        = "MATCH_START"
)

// ClientMessage 클라이언트가 보내는 메시지 (type 필드로 분기)
type ClientMessage struct {
	Type         string `json:"type"`
	MatchID      string `json:"match_id,omitempty"`
	Code         string `json:"code,omitempty"`
	TargetID     string `json:"target_id,omitempty"`
	ChallengerID string `json:"challenger_id,omitempty"`
}

// MatchFoundEvent sent individually to each player when a match activates.
// Opponent differs per recipient.
type MatchFoundEvent struct {
	Type           string         `json:"type"`
	MatchID        string         `json:"match_id"`
	Opponent       string         `json:"opponent"`
	Problem        ProblemSummary `json:"problem"`
	Health         int            `json:"health"`
	OpponentHealth int            `json:"opponent_health"`
}

// SubmitResultEvent private feedback to the submitter only.
type SubmitResultEvent struct {
	Type        string             `json:"type"`
	Passed      int                `json:"passed"`
	Total       int                `json:"total"`
	DamageDealt int                `json:"damage_dealt"`
	Results     []judge.CaseResult `json:"results"`
}

// AttackEvent broadcast to both players after damage lands.
type AttackEvent struct {
	Type      string `json:"type"`
	Attacker  string `json:"attacker"`
	Damage    int    `json:"damage"`
	Target    string `json:"target"`
	NewHealth int    `json:"new_health"`
}

// GameOverEvent terminal event, sent individually to each player.
// Result/rating fields are omitted on the disconnect-forfeit path.
type GameOverEvent struct {
	Type         string `json:"type"`
	Winner       string `json:"winner"`
	Result       string `json:"result,omitempty"` // "VICTORY" 또는 "DEFEAT"
	RatingChange *int   `json:"rating_change,omitempty"`
	NewRating    *int   `json:"new_rating,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

// ChallengeReceivedEvent lobby socket, delivered to the challenge target.
type ChallengeReceivedEvent struct {
	Type     string `json:"type"`
	FromID   string `json:"from_id"`
	FromName string `json:"from_name"`
}

// MatchStartEvent lobby socket, delivered to both sides of an accepted challenge.
type MatchStartEvent struct {
	Type     string `json:"type"`
	MatchID  string `json:"match_id"`
	Opponent string `json:"opponent"`
}
