package grasp

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// remoteHello is the handshake sent after dialing a tracking daemon.
type remoteHello struct {
	V        int    `json:"v"`
	ClientID string `json:"client_id"`
}

// remoteHand is one hand's landmark payload on the wire. A nil hand in a
// frame means the tracker does not see it.
type remoteHand struct {
	Points [][3]float64 `json:"points"`
	Score  float64      `json:"score"`
}

// remoteFrame is one tracking frame on the wire.
type remoteFrame struct {
	Left  *remoteHand `json:"left,omitempty"`
	Right *remoteHand `json:"right,omitempty"`
}

// defaultStaleAfter is how long a hand stays visible after its last frame.
const defaultStaleAfter = 250 * time.Millisecond

// RemoteProvider is a HandProvider fed by a hand-tracking daemon streaming
// JSON landmark frames over a websocket.
//
// Frames are consumed on a background goroutine; Hand returns the latest
// snapshot and reports a hand invisible once its data goes stale. This is
// the only concurrency seam in the package — the gesture components stay
// single-threaded.
type RemoteProvider struct {
	// StaleAfter is the age past which a hand's last frame no longer
	// counts as visible. Set before Start.
	StaleAfter time.Duration

	url  string
	log  *zap.Logger
	conn *websocket.Conn
	done chan struct{}

	mu       sync.RWMutex
	states   [numHandSides]HandState
	lastSeen [numHandSides]time.Time
}

// NewRemoteProvider creates a provider that will dial the given websocket
// URL on Start.
func NewRemoteProvider(url string, log *zap.Logger) *RemoteProvider {
	if log == nil {
		log = zap.NewNop()
	}
	return &RemoteProvider{
		StaleAfter: defaultStaleAfter,
		url:        url,
		log:        log,
	}
}

// Start dials the daemon, sends the handshake, and begins consuming frames.
func (r *RemoteProvider) Start() error {
	conn, _, err := websocket.DefaultDialer.Dial(r.url, nil)
	if err != nil {
		return fmt.Errorf("remote hands: dial %s: %w", r.url, err)
	}

	hello := remoteHello{V: 1, ClientID: uuid.NewString()}
	if err := conn.WriteJSON(hello); err != nil {
		conn.Close()
		return fmt.Errorf("remote hands: handshake: %w", err)
	}

	r.conn = conn
	r.done = make(chan struct{})
	go r.readLoop()
	r.log.Info("remote hands connected",
		zap.String("url", r.url),
		zap.String("client_id", hello.ClientID))
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (r *RemoteProvider) Stop() error {
	if r.conn == nil {
		return nil
	}
	err := r.conn.Close()
	<-r.done
	r.conn = nil
	return err
}

// Hand implements HandProvider from the latest snapshot.
func (r *RemoteProvider) Hand(side HandSide) HandState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state := r.states[side]
	if state.Visible && time.Since(r.lastSeen[side]) > r.StaleAfter {
		return HandState{}
	}
	return state
}

// readLoop consumes frames until the connection drops.
func (r *RemoteProvider) readLoop() {
	defer close(r.done)

	for {
		var frame remoteFrame
		if err := r.conn.ReadJSON(&frame); err != nil {
			r.log.Warn("remote hands stream closed", zap.Error(err))
			r.mu.Lock()
			r.states[HandLeft] = HandState{}
			r.states[HandRight] = HandState{}
			r.mu.Unlock()
			return
		}
		now := time.Now()

		r.mu.Lock()
		r.apply(HandLeft, frame.Left, now)
		r.apply(HandRight, frame.Right, now)
		r.mu.Unlock()
	}
}

// apply folds one hand's wire payload into the snapshot. Callers hold mu.
func (r *RemoteProvider) apply(side HandSide, h *remoteHand, now time.Time) {
	if h == nil {
		r.states[side] = HandState{}
		return
	}
	if len(h.Points) < NumLandmarks {
		// Short frames happen when the tracker loses keypoints mid-hand;
		// treat them like a missing hand rather than guessing.
		r.states[side] = HandState{}
		return
	}

	var lm Landmarks
	for i := 0; i < NumLandmarks; i++ {
		lm.Points[i] = mgl64.Vec3{h.Points[i][0], h.Points[i][1], h.Points[i][2]}
	}
	lm.Score = h.Score

	r.states[side] = lm.State()
	r.lastSeen[side] = now
}
