package server

import (
	"encoding/json"
	"time"

	"github.com/lox/flipforbots/internal/deck"
	"github.com/lox/flipforbots/internal/game"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeAuth         MessageType = "auth"
	MessageTypePlayerAction MessageType = "player_action"

	// Server to client messages
	MessageTypeAuthResponse   MessageType = "auth_response"
	MessageTypeError          MessageType = "error"
	MessageTypeGameStart      MessageType = "game_start"
	MessageTypeRoundStart     MessageType = "round_start"
	MessageTypeActionRequired MessageType = "action_required"
	MessageTypeCardFlipped    MessageType = "card_flipped"
	MessageTypePlayerStayed   MessageType = "player_stayed"
	MessageTypePlayerTimeout  MessageType = "player_timeout"
	MessageTypeRoundEnd       MessageType = "round_end"
	MessageTypeGameEnd        MessageType = "game_end"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type AuthData struct {
	PlayerName string `json:"playerName"`
	GameName   string `json:"gameName,omitempty"`
}

type PlayerActionData struct {
	Action string `json:"action"` // "hit" or "stay"
}

// Server → Client Messages

type AuthResponseData struct {
	Success     bool   `json:"success"`
	PlayerName  string `json:"playerName"`
	GameName    string `json:"gameName"`
	TargetScore int    `json:"targetScore"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GameStartData struct {
	Players     []string `json:"players"`
	TargetScore int      `json:"targetScore"`
}

type RoundStartData struct {
	Round          int `json:"round"`
	CardsRemaining int `json:"cardsRemaining"`
}

// OpponentInfo mirrors game.OpponentView for the wire
type OpponentInfo struct {
	Name          string `json:"name"`
	TotalScore    int    `json:"totalScore"`
	BankScore     int    `json:"bankScore"`
	UniqueNumbers int    `json:"uniqueNumbers"`
	Busted        bool   `json:"busted"`
	Stayed        bool   `json:"stayed"`
}

// ActionRequiredData carries the full public state the client needs to
// decide hit-or-stay. Remaining is the multiset of undrawn cards; the
// order stays hidden.
type ActionRequiredData struct {
	Hand           []string       `json:"hand"`
	Remaining      []string       `json:"remaining"`
	BankScore      int            `json:"bankScore"`
	TotalScore     int            `json:"totalScore"`
	Round          int            `json:"round"`
	TargetScore    int            `json:"targetScore"`
	Opponents      []OpponentInfo `json:"opponents,omitempty"`
	TimeoutSeconds int            `json:"timeoutSeconds"`
}

type CardFlippedData struct {
	Player     string `json:"player"`
	Card       string `json:"card"`
	Busted     bool   `json:"busted"`
	SevenBonus bool   `json:"sevenBonus"`
	BankScore  int    `json:"bankScore"`
}

type PlayerStayedData struct {
	Player string `json:"player"`
	Banked int    `json:"banked"`
}

type PlayerTimeoutData struct {
	Player         string `json:"player"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	Action         string `json:"action"`
}

type RoundEndData struct {
	Round  int            `json:"round"`
	Scores map[string]int `json:"scores"`
	Totals map[string]int `json:"totals"`
}

type GameEndData struct {
	Winner string         `json:"winner"`
	Rounds int            `json:"rounds"`
	Totals map[string]int `json:"totals"`
}

// ActionRequiredFromView converts a turn view into its wire representation
func ActionRequiredFromView(view game.TurnView, timeoutSeconds int) ActionRequiredData {
	data := ActionRequiredData{
		Hand:           cardStrings(view.Hand),
		Remaining:      cardStrings(view.Remaining),
		BankScore:      view.BankScore,
		TotalScore:     view.TotalScore,
		Round:          view.Round,
		TargetScore:    view.TargetScore,
		TimeoutSeconds: timeoutSeconds,
	}
	for _, o := range view.Opponents {
		data.Opponents = append(data.Opponents, OpponentInfo{
			Name:          o.Name,
			TotalScore:    o.TotalScore,
			BankScore:     o.BankScore,
			UniqueNumbers: o.UniqueNumbers,
			Busted:        o.Busted,
			Stayed:        o.Stayed,
		})
	}
	return data
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
