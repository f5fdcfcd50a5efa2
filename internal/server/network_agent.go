package server

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/flipforbots/internal/game"
)

// messageSender is the slice of Connection the agent needs
type messageSender interface {
	SendMessage(msg *Message) error
}

// NetworkAgent proxies hit-or-stay decisions to a remote client. It
// implements game.Agent; a decision that doesn't arrive before the
// timeout banks the hand.
type NetworkAgent struct {
	playerName     string
	sender         messageSender
	logger         *log.Logger
	actionChan     chan game.Action
	timeoutSeconds int
	clock          quartz.Clock
}

// NewNetworkAgent creates a new network agent for a remote player
func NewNetworkAgent(playerName string, sender messageSender, logger *log.Logger, timeoutSeconds int, clock quartz.Clock) *NetworkAgent {
	return &NetworkAgent{
		playerName:     playerName,
		sender:         sender,
		logger:         logger.WithPrefix("network-agent").With("player", playerName),
		actionChan:     make(chan game.Action, 1),
		timeoutSeconds: timeoutSeconds,
		clock:          clock,
	}
}

// ChooseAction implements game.Agent by requesting a decision from the
// remote client and waiting for the response.
func (na *NetworkAgent) ChooseAction(view game.TurnView) game.Action {
	// Drop any action that arrived after a previous timeout
	select {
	case <-na.actionChan:
	default:
	}

	na.logger.Debug("Requesting decision from remote player",
		"bankScore", view.BankScore,
		"round", view.Round)

	msg, err := NewMessage(MessageTypeActionRequired, ActionRequiredFromView(view, na.timeoutSeconds))
	if err != nil {
		na.logger.Error("Failed to create action required message", "error", err)
		return game.ActionStay
	}

	if err := na.sender.SendMessage(msg); err != nil {
		na.logger.Error("Failed to send action request to player", "error", err)
		return game.ActionStay
	}

	timeoutFired := make(chan struct{})
	timer := na.clock.AfterFunc(time.Duration(na.timeoutSeconds)*time.Second, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	select {
	case action := <-na.actionChan:
		na.logger.Debug("Received decision from remote player", "action", action)
		return action

	case <-timeoutFired:
		na.logger.Warn("Decision timeout, banking hand")

		timeoutMsg, err := NewMessage(MessageTypePlayerTimeout, PlayerTimeoutData{
			Player:         na.playerName,
			TimeoutSeconds: na.timeoutSeconds,
			Action:         "stay",
		})
		if err == nil {
			_ = na.sender.SendMessage(timeoutMsg)
		}

		return game.ActionStay
	}
}

// HandleAction processes an action received from the remote client
func (na *NetworkAgent) HandleAction(data PlayerActionData) error {
	var action game.Action
	switch data.Action {
	case "hit", "h":
		action = game.ActionHit
	case "stay", "s":
		action = game.ActionStay
	default:
		return fmt.Errorf("invalid action: %s", data.Action)
	}

	select {
	case na.actionChan <- action:
		return nil
	default:
		return fmt.Errorf("no pending action request")
	}
}
