package player

import (
	"bufio"
	"net"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeIPCServer accepts exactly one connection and records every command
// line it receives, replying with property-change events on demand.
type fakeIPCServer struct {
	listener net.Listener
	commands chan string
	conn     chan net.Conn
}

func newFakeIPCServer(socketPath string) (*fakeIPCServer, error) {
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, err
	}

	server := &fakeIPCServer{
		listener: listener,
		commands: make(chan string, 16),
		conn:     make(chan net.Conn, 1),
	}

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		server.conn <- conn

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			server.commands <- scanner.Text()
		}
	}()

	return server, nil
}

func (s *fakeIPCServer) close() {
	_ = s.listener.Close()
}

func TestEventListener(t *testing.T) {
	Convey("EventListener", t, func() {
		socket := filepath.Join(t.TempDir(), "engine-test.sock")
		server, err := newFakeIPCServer(socket)
		So(err, ShouldBeNil)
		defer server.close()

		received := make(chan string, 16)
		listener := NewEventListener(socket, func(property string, data interface{}) {
			received <- property
		})

		So(listener.Start(), ShouldBeNil)
		defer listener.Stop()

		Convey("registers all lifecycle observers on the listening connection", func() {
			// The server accepts a single connection, so the observers can
			// only have arrived on the same one the read loop listens on.
			var observed []string
			for len(observed) < 4 {
				select {
				case command := <-server.commands:
					if strings.Contains(command, "observe_property") {
						observed = append(observed, command)
					}
				case <-time.After(2 * time.Second):
					t.Fatal("observer registration not received")
				}
			}

			joined := strings.Join(observed, "\n")
			for _, property := range []string{"pause", "seeking", "paused-for-cache", "eof-reached"} {
				So(joined, ShouldContainSubstring, property)
			}
		})

		Convey("delivers property changes pushed by the engine", func() {
			conn := <-server.conn
			_, err := conn.Write([]byte(`{"event":"property-change","id":1,"name":"pause","data":true}` + "\n"))
			So(err, ShouldBeNil)

			select {
			case property := <-received:
				So(property, ShouldEqual, "pause")
			case <-time.After(2 * time.Second):
				t.Fatal("property change not delivered")
			}
		})
	})
}
