package router

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/joejanuszk/CarND-Capstone/pkg/concurrent"
	http_server "github.com/joejanuszk/CarND-Capstone/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
)

// handleWebsocket runs the raw stop-waypoint stream listener. connections
// are accepted and read through an epoll poller so idle subscribers cost no
// goroutine; actual reads run on the shared worker pool.
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	errChan chan error,
) {
	var err error

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("stop waypoint stream websocket run on port %d", config.WebsocketPort))

	acceptDesc := netpoll.Must(netpoll.HandleListener(
		ln, netpoll.EventRead|netpoll.EventOneShot,
	))

	api.poller, err = netpoll.New(nil)
	if err != nil {
		errChan <- err
		return
	}

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
			// pool saturated or transient accept error: cool the
			// listener down briefly instead of spinning
			if err != concurrent.ErrScheduleTimeout {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			} else if ne, ok := err.(net.Error); ok && ne.Timeout() {
				delay := 5 * time.Millisecond
				api.log.Sugar().Infof("accept error: %v; retrying in %s", err, delay)
				time.Sleep(delay)
			}
		}
	})

	<-ctx.Done()
	_ = api.poller.Stop(acceptDesc)
	_ = ln.Close()
}

// handle upgrades one raw tcp connection and registers it as a stream
// subscriber until it hangs up.
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
			_ = api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		api.pool.Schedule(func() {
			if err := user.Receive(); err != nil {
				_ = api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
	})
}
