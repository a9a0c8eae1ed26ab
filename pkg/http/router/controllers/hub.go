package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/compassx/pkg/animator"
	"github.com/lintang-b-s/compassx/pkg/compass"
	"github.com/lintang-b-s/compassx/pkg/concurrent"
)

type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint
	hub *Hub
}

func (u *User) readRequest() (*positionRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &positionRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ReceivePosition reads one position fix from the client, validates it and
// feeds it into the heading pipeline. the resulting heading is echoed back to
// this client; the animation frames themselves go out through the broadcast.
func (u *User) ReceivePosition() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	validate := validator.New()

	if err := validate.Struct(req); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		errResp := envelope{"error": map[string]string{
			"code":    http.StatusText(http.StatusBadRequest),
			"message": fmt.Sprintf("validation error: %v", vvString),
		}}
		return u.write(errResp)
	}

	heading := u.hub.compassService.UpdatePosition(req.Lat, req.Lon)
	return u.write(envelope{"data": NewHeadingResponse(heading)})
}

func (u *User) write(v interface{}) error {
	u.io.Lock()
	defer u.io.Unlock()

	w := wsutil.NewWriter(u.conn, ws.StateServerSide, ws.OpText)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return err
	}
	return w.Flush()
}

// Hub tracks websocket subscribers and fans animation frames out to them
// through a bounded goroutine pool.
type Hub struct {
	mu    sync.Mutex
	seq   uint
	users map[uint]*User

	pool           *concurrent.Pool
	compassService CompassService
}

func NewHub(pool *concurrent.Pool, compassService CompassService) *Hub {
	h := &Hub{
		users:          make(map[uint]*User),
		pool:           pool,
		compassService: compassService,
	}
	compassService.AddFrameListener(h.Broadcast)
	return h
}

func (h *Hub) Register(conn io.ReadWriteCloser) *User {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seq++
	user := &User{
		conn: conn,
		id:   h.seq,
		hub:  h,
	}
	h.users[user.id] = user
	return user
}

func (h *Hub) Remove(u *User) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.users, u.id)
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, u := range h.users {
		u.conn.Close()
		delete(h.users, id)
	}
}

// Broadcast pushes one animation frame to every subscriber. a failed write
// drops the subscriber.
func (h *Hub) Broadcast(frame animator.Frame) {
	h.mu.Lock()
	users := make([]*User, 0, len(h.users))
	for _, u := range h.users {
		users = append(users, u)
	}
	h.mu.Unlock()

	msg := frameMessage{
		Angle:      frame.Angle,
		Target:     frame.Target,
		Direction:  compass.DirectionFromBearing(frame.Target).String(),
		Converging: frame.Converging,
	}

	for _, u := range users {
		u := u
		h.pool.Schedule(func() {
			if err := u.write(envelope{"frame": msg}); err != nil {
				h.Remove(u)
				u.conn.Close()
			}
		})
	}
}
