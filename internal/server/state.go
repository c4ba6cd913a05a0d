package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/janpfeifer/GoShuffle/internal/protocol"
	"github.com/janpfeifer/GoShuffle/internal/sim"
	"k8s.io/klog/v2"
)

// WriteTimeout for a single message to a client.
const WriteTimeout = 5 * time.Second

// ServerState holds the runner and the connected clients.
type ServerState struct {
	Address string
	Runner  *sim.Runner

	mu      sync.RWMutex
	clients map[*client]struct{}
}

// client is one connected browser. Only the latest state is kept for it: slow clients
// skip intermediate states instead of slowing down the runner.
type client struct {
	conn *websocket.Conn

	mu      sync.Mutex
	pending *sim.State
	pushed  bool
	seq     uint64        // Seq of the latest state pushed.
	ready   chan struct{} // Signaled when pending is set.
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, ready: make(chan struct{}, 1)}
}

// push replaces the pending state, unless state is older than the last one pushed.
func (c *client) push(state sim.State) {
	c.mu.Lock()
	if c.pushed && state.Seq <= c.seq {
		c.mu.Unlock()
		return
	}
	c.pushed = true
	c.seq = state.Seq
	c.pending = &state
	c.mu.Unlock()
	select {
	case c.ready <- struct{}{}:
	default:
	}
}

// take returns the pending state, or nil if there is none.
func (c *client) take() *sim.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.pending
	c.pending = nil
	return state
}

// NewServerState creates the server state, and subscribes it to the runner's updates.
func NewServerState(runner *sim.Runner) *ServerState {
	s := &ServerState{
		Runner:  runner,
		clients: make(map[*client]struct{}),
	}
	runner.Subscribe(s.broadcast)
	return s
}

// NumClients returns the number of connected clients.
func (s *ServerState) NumClients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *ServerState) broadcast(state sim.State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for c := range s.clients {
		c.push(state)
	}
}

// HandleWS serves one client: it streams the runner's state, and handles the
// pause/resume controls sent by the client.
func (s *ServerState) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		klog.Errorf("HandleWS: failed to accept: %v", err)
		return
	}
	defer conn.CloseNow()

	c := newClient(conn)
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	c.push(s.Runner.State())
	klog.V(1).Infof("HandleWS: client connected from %s", r.RemoteAddr)
	defer func() {
		s.mu.Lock()
		delete(s.clients, c)
		s.mu.Unlock()
		klog.V(1).Infof("HandleWS: client from %s disconnected", r.RemoteAddr)
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		defer cancel()
		s.readLoop(ctx, c)
	}()

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-c.ready:
			state := c.take()
			if state == nil {
				continue
			}
			msg, err := protocol.NewWsMessage(protocol.MsgTypeState, protocol.StateMessage{State: *state})
			if err != nil {
				klog.Errorf("HandleWS: %v", err)
				return
			}
			if err := s.write(ctx, c, msg); err != nil {
				klog.V(1).Infof("HandleWS: write failed: %v", err)
				return
			}
		}
	}
}

func (s *ServerState) write(ctx context.Context, c *client, msg protocol.WsMessage) error {
	ctx, cancel := context.WithTimeout(ctx, WriteTimeout)
	defer cancel()
	return wsjson.Write(ctx, c.conn, msg)
}

func (s *ServerState) readLoop(ctx context.Context, c *client) {
	for {
		var msg protocol.WsMessage
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			klog.V(1).Infof("readLoop: WS read error: %v", err)
			return
		}
		s.handleMessage(ctx, c, msg)
	}
}

func (s *ServerState) handleMessage(ctx context.Context, c *client, msg protocol.WsMessage) {
	klog.V(1).Infof("handleMessage: received message type: %s", msg.Type)
	switch msg.Type {
	case protocol.MsgTypeToggle:
		s.Runner.Toggle()
	case protocol.MsgTypePause:
		s.Runner.Pause()
	case protocol.MsgTypeResume:
		s.Runner.Resume()
	default:
		klog.Warningf("handleMessage: unexpected message type %q", msg.Type)
		errMsg, err := protocol.NewWsMessage(protocol.MsgTypeError, protocol.ErrorMessage{
			Message: "unexpected message type " + string(msg.Type),
		})
		if err != nil {
			return
		}
		if err := s.write(ctx, c, errMsg); err != nil {
			klog.V(1).Infof("handleMessage: failed to send error: %v", err)
		}
	}
}
