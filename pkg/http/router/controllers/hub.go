package controllers

import (
	"encoding/json"
	"io"
	"net"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/joejanuszk/CarND-Capstone/pkg/concurrent"
)

// User is one connected websocket subscriber of the stop-waypoint stream.
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

// Receive consumes the next incoming frame. subscribers never send data
// frames; anything but a control frame is drained and ignored.
func (u *User) Receive() error {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return err
	}
	if h.OpCode.IsControl() {
		return wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	_, err = io.Copy(io.Discard, r)
	return err
}

func (u *User) write(x interface{}) error {
	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	encoder := json.NewEncoder(w)

	u.io.Lock()
	defer u.io.Unlock()

	if err := encoder.Encode(x); err != nil {
		return err
	}

	return w.Flush()
}

// Hub fans the published stop waypoint index out to every subscriber, once
// per processed camera frame.
type Hub struct {
	mu  sync.RWMutex
	seq uint
	ns  map[uint]*User

	pool *concurrent.WorkerPool
}

func NewHub(pool *concurrent.WorkerPool) *Hub {
	return &Hub{
		pool: pool,
		ns:   make(map[uint]*User),
	}
}

func (h *Hub) Register(conn net.Conn) *User {
	user := &User{
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	user.id = h.seq
	h.ns[user.id] = user
	h.seq++
	h.mu.Unlock()

	return user
}

func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ns[user.id]; !ok {
		return
	}
	delete(h.ns, user.id)
	user.conn.Close()
}

// Broadcast sends the published waypoint index to every subscriber. writes
// are fanned out through the worker pool; subscribers whose write fails are
// dropped.
func (h *Hub) Broadcast(waypointIdx int) {
	h.mu.RLock()
	users := make([]*User, 0, len(h.ns))
	for _, u := range h.ns {
		users = append(users, u)
	}
	h.mu.RUnlock()

	payload := envelope{"data": NewWaypointResponse(waypointIdx)}
	for _, u := range users {
		user := u
		h.pool.Schedule(func() {
			if err := user.write(payload); err != nil {
				h.Remove(user)
			}
		})
	}
}

func (h *Hub) RemoveAllUsers() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, user := range h.ns {
		delete(h.ns, id)
		user.conn.Close()
	}
}
