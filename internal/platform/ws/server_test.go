package ws

import (
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var _ Playable = (*t2048.Game)(nil)

func startServer(t *testing.T) (*httptest.Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "ws.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := NewServer("", store, log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func dial(t *testing.T, ts *httptest.Server, player string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/?player=" + player
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMsg) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
}

func readState(t *testing.T, conn *websocket.Conn) StateMsg {
	t.Helper()
	var st StateMsg
	if err := conn.ReadJSON(&st); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if st.Type != TypeState {
		t.Fatalf("reply type = %q, want state", st.Type)
	}
	return st
}

func readError(t *testing.T, conn *websocket.Conn) ErrorMsg {
	t.Helper()
	var e ErrorMsg
	if err := conn.ReadJSON(&e); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if e.Type != TypeError {
		t.Fatalf("reply type = %q, want error", e.Type)
	}
	return e
}

func TestNewGame(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "alice")

	send(t, conn, ClientMsg{Type: TypeNew, Seed: 7})
	st := readState(t, conn)

	if st.Game != DefaultVariant {
		t.Errorf("game = %q, want %q", st.Game, DefaultVariant)
	}
	if st.Board == nil || st.Board.Rows() != 4 || st.Board.Cols() != 4 {
		t.Fatalf("board = %v, want 4x4", st.Board)
	}
	if st.Board.Occupied() != 2 {
		t.Errorf("occupied = %d, want 2 start tiles", st.Board.Occupied())
	}
	if st.Moved || st.GameOver {
		t.Errorf("fresh game reports moved=%v gameOver=%v", st.Moved, st.GameOver)
	}

	send(t, conn, ClientMsg{Type: TypeNew, Variant: "2048_3x3", Seed: 7})
	st = readState(t, conn)
	if st.Board.Rows() != 3 {
		t.Errorf("3x3 variant board has %d rows", st.Board.Rows())
	}

	send(t, conn, ClientMsg{Type: TypeNew, Variant: "2048", Seed: 7})
	st = readState(t, conn)
	if st.Level != 1 || st.Target == 0 {
		t.Errorf("campaign level=%d target=%d", st.Level, st.Target)
	}
}

func TestProbeAndMove(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "bob")

	send(t, conn, ClientMsg{Type: TypeNew, Seed: 11})
	start := readState(t, conn)

	var movable, blocked []string
	for _, d := range engine.Directions() {
		send(t, conn, ClientMsg{Type: TypeProbe, Dir: d.String()})
		var p ProbeMsg
		if err := conn.ReadJSON(&p); err != nil {
			t.Fatalf("ReadJSON() failed: %v", err)
		}
		if p.Type != TypeProbe {
			t.Fatalf("reply type = %q, want probe", p.Type)
		}
		if p.CanMove {
			movable = append(movable, d.String())
		} else {
			blocked = append(blocked, d.String())
		}
	}
	if len(movable) == 0 {
		t.Fatal("two tiles on an empty board can always move somewhere")
	}

	// Blocked moves leave the board alone
	for _, dir := range blocked {
		send(t, conn, ClientMsg{Type: TypeMove, Dir: dir})
		st := readState(t, conn)
		if st.Moved || st.Spawn != nil || len(st.Moves) != 0 {
			t.Errorf("blocked move %s reported moved=%v spawn=%v moves=%d", dir, st.Moved, st.Spawn, len(st.Moves))
		}
		if !st.Board.Equal(start.Board) {
			t.Errorf("blocked move %s changed the board", dir)
		}
	}

	send(t, conn, ClientMsg{Type: TypeMove, Dir: movable[0]})
	st := readState(t, conn)
	if !st.Moved {
		t.Fatalf("move %s should be accepted", movable[0])
	}
	if len(st.Moves) == 0 {
		t.Error("accepted move should carry move records")
	}
	if st.Spawn == nil {
		t.Fatal("accepted move should spawn a tile")
	}
	if got, _ := st.Board.At(st.Spawn.At); int(got) != st.Spawn.Value {
		t.Errorf("board at spawn %v = %d, want %d", st.Spawn.At, got, st.Spawn.Value)
	}
}

func TestStateRequest(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "dave")

	send(t, conn, ClientMsg{Type: TypeState})
	if e := readError(t, conn); !strings.Contains(e.Message, "no game") {
		t.Errorf("state before new: message = %q", e.Message)
	}

	send(t, conn, ClientMsg{Type: TypeNew, Variant: "2048", Seed: 5})
	start := readState(t, conn)

	send(t, conn, ClientMsg{Type: TypeState})
	st := readState(t, conn)
	if st.Game != "2048" {
		t.Errorf("game = %q, want 2048", st.Game)
	}
	if !st.Board.Equal(start.Board) {
		t.Error("state request changed the board")
	}
	if st.Moved || len(st.Moves) != 0 || st.Spawn != nil {
		t.Errorf("state reported moved=%v moves=%d spawn=%v", st.Moved, len(st.Moves), st.Spawn)
	}
	if st.Level != 1 || st.Target != start.Target {
		t.Errorf("progress = level %d target %d, want level 1 target %d", st.Level, st.Target, start.Target)
	}
}

func TestRequestErrors(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts, "carol")

	send(t, conn, ClientMsg{Type: TypeMove, Dir: "left"})
	if e := readError(t, conn); !strings.Contains(e.Message, "no game") {
		t.Errorf("message = %q", e.Message)
	}

	send(t, conn, ClientMsg{Type: TypeNew, Seed: 3})
	readState(t, conn)

	send(t, conn, ClientMsg{Type: TypeMove, Dir: "sideways"})
	readError(t, conn)

	send(t, conn, ClientMsg{Type: "jump"})
	readError(t, conn)

	send(t, conn, ClientMsg{Type: TypeNew, Variant: "tetris"})
	readError(t, conn)

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("WriteMessage() failed: %v", err)
	}
	if e := readError(t, conn); e.Message != "malformed message" {
		t.Errorf("message = %q", e.Message)
	}

	// The connection survives rejected requests
	send(t, conn, ClientMsg{Type: TypeProbe, Dir: "up"})
	var p ProbeMsg
	if err := conn.ReadJSON(&p); err != nil || p.Type != TypeProbe {
		t.Errorf("probe after errors: %+v, %v", p, err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	ts, store := startServer(t)
	conn := dial(t, ts, "dave")

	send(t, conn, ClientMsg{Type: TypeNew, Variant: "2048_5x5", Seed: 21})
	orig := readState(t, conn)

	send(t, conn, ClientMsg{Type: TypeSave})
	var saved SavedMsg
	if err := conn.ReadJSON(&saved); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if saved.Type != TypeSaved || saved.ID == "" {
		t.Fatalf("saved = %+v", saved)
	}

	// Saving again reuses the slot
	send(t, conn, ClientMsg{Type: TypeSave})
	var again SavedMsg
	if err := conn.ReadJSON(&again); err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if again.ID != saved.ID {
		t.Errorf("second save id = %s, want %s", again.ID, saved.ID)
	}

	saves, err := store.ListSaves("dave", 10)
	if err != nil || len(saves) != 1 {
		t.Fatalf("ListSaves() = %d saves, %v", len(saves), err)
	}

	other := dial(t, ts, "dave")
	send(t, other, ClientMsg{Type: TypeLoad, ID: saved.ID})
	loaded := readState(t, other)
	if loaded.Game != "2048_5x5" {
		t.Errorf("loaded game = %q", loaded.Game)
	}
	if !loaded.Board.Equal(orig.Board) {
		t.Errorf("loaded board differs:\n%v\nvs\n%v", loaded.Board, orig.Board)
	}

	send(t, other, ClientMsg{Type: TypeLoad, ID: "missing"})
	readError(t, other)
}
