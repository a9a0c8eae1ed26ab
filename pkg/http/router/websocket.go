package router

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/compassx/pkg/concurrent"
	"github.com/lintang-b-s/compassx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/compassx/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
)

/*
handleWebsocket runs the frame-stream endpoint: clients connect, optionally
push position fixes, and receive every animation frame as JSON. connections
are multiplexed over an epoll poller and served from a bounded goroutine pool
instead of one goroutine per connection.
*/
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	compassService controllers.CompassService,
	errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("compass frame-stream websocket run on port %d", config.WebsocketPort))

	acceptDesc := netpoll.Must(netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		errChan <- err
		return
	}

	api.pool = concurrent.NewPool(15, 10)

	api.hub = controllers.NewHub(api.pool, compassService)

	api.pool.Spawn(10)

	// accept is a channel to signal about next incoming connection Accept()
	// results.
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(conn netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(1000*time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			/*
				if the goroutine pool is full for 1 s and there are incoming
				connections, cooldown the accept loop for 5 ms
			*/
			if err == concurrent.ErrScheduleTimeout {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else if ne, ok := err.(net.Error); ok && ne.Timeout() {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else {
				api.log.Sugar().Errorf("accept error: %v", err)
			}
		}

	})

	<-ctx.Done()

	ln.Close()
	api.hub.RemoveAllUser()
	api.poller.Stop(acceptDesc)
	api.pool.Close()
}

// handle upgrades one accepted tcp connection and wires it into the hub and
// the read poller.
func (api *API) handle(conn net.Conn) {
	if _, err := ws.Upgrade(conn); err != nil {
		api.log.Sugar().Infof("websocket upgrade error: %v", err)
		conn.Close()
		return
	}

	user := api.hub.Register(conn)

	desc := netpoll.Must(netpoll.HandleRead(conn))

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			api.poller.Stop(desc)
			api.hub.Remove(user)
			conn.Close()
			return
		}
		api.pool.Schedule(func() {
			if err := user.ReceivePosition(); err != nil {
				api.poller.Stop(desc)
				api.hub.Remove(user)
				conn.Close()
			}
		})
	})
}
