package router

import (
	"io"
	"net"
	"net/http"

	"go.uber.org/zap"
)

// upstream tunnels an incoming http connection to the raw websocket listener
// so clients can reach the stream on the regular http port.
func (api *API) upstream(name, network, addr string) func(w http.ResponseWriter, r *http.Request) {

	return func(w http.ResponseWriter, r *http.Request) {

		backend, err := net.Dial(network, addr)
		if err != nil {
			api.log.Error("dial upstream error", zap.String("upstream", name), zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		if err := r.Write(backend); err != nil {
			api.log.Error("write request to upstream error", zap.String("upstream", name), zap.Error(err))
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		hj, ok := w.(http.Hijacker)
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		conn, _, err := hj.Hijack() // get tcp socket
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		go func() {
			defer backend.Close()
			defer conn.Close()
			io.Copy(backend, conn)
		}()
		go func() {
			defer backend.Close()
			defer conn.Close()
			io.Copy(conn, backend)
		}()
	}
}
