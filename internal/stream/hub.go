// Package stream serves a running battle to browsers: a small JSON API and a
// websocket that pushes every frame.
package stream

import (
	"encoding/binary"
	"image"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Garsondee/grid-battle/internal/logs"
)

// clientBuffer is how many frames may queue for one client before it is dropped.
const clientBuffer = 8

// EncodeFrame packs img as [width uint16][height uint16][R G B ...], big endian,
// row-major without alpha.
func EncodeFrame(img *image.RGBA) []byte {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	out := make([]byte, 4, 4+3*w*h)
	binary.BigEndian.PutUint16(out[0:], uint16(w))
	binary.BigEndian.PutUint16(out[2:], uint16(h))
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := 0; x < w; x++ {
			out = append(out, row[4*x], row[4*x+1], row[4*x+2])
		}
	}
	return out
}

type client struct {
	conn      *websocket.Conn
	out       chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{conn: conn, out: make(chan []byte, clientBuffer), done: make(chan struct{})}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// Hub fans frames out to websocket clients. A client whose queue is full is
// disconnected rather than allowed to stall the broadcaster.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	latest   []byte
	closed   bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and streams frames until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logs.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	c := newClient(conn)
	if !h.add(c) {
		c.close()
		return
	}
	logs.Debug("viewer connected", zap.String("remote", conn.RemoteAddr().String()))
	go h.readLoop(c)
	go h.writeLoop(c)
}

// add registers c and queues the latest frame so new viewers see the grid at once.
func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.latest != nil {
		c.out <- h.latest
	}
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	c.close()
}

// readLoop discards client messages; its only job is noticing disconnects.
func (h *Hub) readLoop(c *client) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer h.remove(c)
	for {
		select {
		case <-c.done:
			return
		case frame := <-c.out:
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				logs.Debug("viewer write failed", zap.Error(err))
				return
			}
		}
	}
}

// Broadcast queues frame for every client and keeps it for late joiners.
func (h *Hub) Broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = frame
	for c := range h.clients {
		select {
		case c.out <- frame:
		default:
			delete(h.clients, c)
			c.close()
			logs.Warn("dropping slow viewer")
		}
	}
}

// Clients reports the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects everyone and refuses new clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}
