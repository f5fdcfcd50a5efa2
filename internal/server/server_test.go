package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "error",
		},
		Games: []GameConfig{
			{
				Name:            "main",
				Bots:            []string{"conservative", "threshold"},
				TargetScore:     50,
				DecisionTimeout: 30,
				Seed:            42,
			},
		},
	}
}

func startTestServer(t *testing.T) (*Server, *websocket.Conn) {
	t.Helper()

	srv := NewServer(testServerConfig(), testLogger(), quartz.NewReal())
	go srv.run()
	t.Cleanup(func() { _ = srv.Stop() })

	ts := httptest.NewServer(http.HandlerFunc(srv.HandleWebSocket))
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return srv, conn
}

func sendClientMessage(t *testing.T, conn *websocket.Conn, messageType MessageType, data interface{}) {
	t.Helper()
	msg, err := NewMessage(messageType, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

func readMessage(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(10*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return &msg
}

func TestServerRejectsEmptyPlayerName(t *testing.T) {
	_, conn := startTestServer(t)

	sendClientMessage(t, conn, MessageTypeAuth, AuthData{PlayerName: ""})

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)

	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "invalid_auth", data.Code)
}

func TestServerRejectsUnknownGame(t *testing.T) {
	_, conn := startTestServer(t)

	sendClientMessage(t, conn, MessageTypeAuth, AuthData{PlayerName: "tester", GameName: "nope"})

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)

	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "start_failed", data.Code)
}

func TestServerRejectsUnknownMessageType(t *testing.T) {
	_, conn := startTestServer(t)

	sendClientMessage(t, conn, MessageType("deal"), map[string]string{})

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)
}

func TestServerRejectsActionBeforeAuth(t *testing.T) {
	_, conn := startTestServer(t)

	sendClientMessage(t, conn, MessageTypePlayerAction, PlayerActionData{Action: "hit"})

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)

	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "not_authenticated", data.Code)
}

// TestServerPlaysFullGame drives a complete game over the wire acting as a
// simple threshold client.
func TestServerPlaysFullGame(t *testing.T) {
	_, conn := startTestServer(t)

	sendClientMessage(t, conn, MessageTypeAuth, AuthData{PlayerName: "tester"})

	var (
		sawGameStart  bool
		sawRoundStart bool
		sawCards      bool
		gameEnd       *GameEndData
	)

	for i := 0; i < 20000 && gameEnd == nil; i++ {
		msg := readMessage(t, conn)

		switch msg.Type {
		case MessageTypeAuthResponse:
			var data AuthResponseData
			require.NoError(t, json.Unmarshal(msg.Data, &data))
			assert.True(t, data.Success)
			assert.Equal(t, "tester", data.PlayerName)
			assert.Equal(t, "main", data.GameName)
			assert.Equal(t, 50, data.TargetScore)

		case MessageTypeGameStart:
			var data GameStartData
			require.NoError(t, json.Unmarshal(msg.Data, &data))
			assert.Equal(t, []string{"tester", "conservative-1", "threshold-2"}, data.Players)
			sawGameStart = true

		case MessageTypeRoundStart:
			sawRoundStart = true

		case MessageTypeActionRequired:
			var data ActionRequiredData
			require.NoError(t, json.Unmarshal(msg.Data, &data))
			action := "hit"
			if data.BankScore >= 15 {
				action = "stay"
			}
			sendClientMessage(t, conn, MessageTypePlayerAction, PlayerActionData{Action: action})

		case MessageTypeCardFlipped:
			sawCards = true

		case MessageTypeGameEnd:
			var data GameEndData
			require.NoError(t, json.Unmarshal(msg.Data, &data))
			gameEnd = &data

		case MessageTypeError:
			var data ErrorData
			require.NoError(t, json.Unmarshal(msg.Data, &data))
			t.Fatalf("unexpected error message: %s %s", data.Code, data.Message)
		}
	}

	require.NotNil(t, gameEnd, "game never finished")
	assert.True(t, sawGameStart)
	assert.True(t, sawRoundStart)
	assert.True(t, sawCards)
	assert.NotEmpty(t, gameEnd.Winner)
	assert.GreaterOrEqual(t, gameEnd.Totals[gameEnd.Winner], 50)
	assert.Len(t, gameEnd.Totals, 3)
}
