// Package session implements the controller that owns one TCP
// connection, runs the PROXY-preamble/framing pipeline over inbound
// bytes, dispatches decoded messages to a Consumer in strict order,
// and serializes outbound writes behind a backpressure gate. It is
// family-agnostic; a protocol.Decoder supplies the tag space and
// decode logic for whichever family (game, coordinator, content,
// stun, turn) the connection speaks.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/OpenTTD/openttd-net/backpressure"
	"github.com/OpenTTD/openttd-net/framing"
	"github.com/OpenTTD/openttd-net/metrics"
	"github.com/OpenTTD/openttd-net/protocol"
	"github.com/OpenTTD/openttd-net/proxyproto"
	"github.com/OpenTTD/openttd-net/source"
	"github.com/OpenTTD/openttd-net/wire"
)

// Consumer is the embedding application's callback object. Connected
// and Disconnected are optional in spirit but always present here as a
// fixed contract rather than dynamically-looked-up hooks; a no-op
// implementation costs the caller nothing.
type Consumer interface {
	// Connected is invoked once, after the session captures the
	// remote Source and before any packet is dispatched.
	Connected(src source.Source)

	// Disconnected is invoked exactly once when the session tears
	// down, for any reason.
	Disconnected(src source.Source)

	// Receive handles one decoded message. Returning wire.ErrSocketClosed
	// (or any error wrapping it) tells the session the peer is already
	// known gone; any other non-nil error is treated as an unexpected
	// failure. Both cases hard-abort the connection; they are logged
	// differently.
	Receive(src source.Source, msg protocol.Message) error
}

const defaultQueueSize = 64

// Session owns one TCP connection's lifecycle.
type Session struct {
	id       xid.ID
	conn     net.Conn
	decoder  protocol.Decoder
	consumer Consumer

	proxyEnabled  bool
	proxyConsumed bool

	baseLog   *logrus.Entry
	metrics   *metrics.Registry
	tracer    func(name string, d time.Duration)
	queueSize int
	prober    backpressure.Prober

	gate     *backpressure.Gate
	watchdog *backpressure.Watchdog

	src source.Source

	closeOnce sync.Once
	closed    chan struct{}
}

// New constructs a Session for an already-accepted (or dialed)
// connection. Call Serve to run it.
func New(conn net.Conn, decoder protocol.Decoder, consumer Consumer, opts ...Option) *Session {
	s := &Session{
		id:        xid.New(),
		conn:      conn,
		decoder:   decoder,
		consumer:  consumer,
		gate:      backpressure.NewGate(),
		closed:    make(chan struct{}),
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.baseLog == nil {
		s.baseLog = logrus.NewEntry(logrus.StandardLogger())
	}
	s.baseLog = s.baseLog.WithFields(logrus.Fields{
		"session_id":  s.id.String(),
		"remote_addr": conn.RemoteAddr().String(),
		"protocol":    decoder.Name(),
	})
	return s
}

// ID returns the session's compact sortable identifier.
func (s *Session) ID() string { return s.id.String() }

// Serve runs the session's read loop, inbound dispatch worker, and
// backpressure watchdog until the connection closes or ctx is
// cancelled. If the remote address cannot be turned into a Source,
// Serve returns that error without calling Connected or Disconnected;
// otherwise it returns only after Disconnected has been called.
func (s *Session) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	addr, ip, port, err := splitHostPort(s.conn.RemoteAddr())
	if err != nil {
		return fmt.Errorf("session: resolving remote address: %w", err)
	}
	s.src, err = source.New(s.conn, s.conn.RemoteAddr(), ip, port)
	if err != nil {
		return fmt.Errorf("session: %s: parsing remote address %q: %w", addr, ip, err)
	}

	if s.metrics != nil {
		s.metrics.SessionOpened()
	}
	s.consumer.Connected(s.src)
	defer func() {
		s.consumer.Disconnected(s.src)
		if s.metrics != nil {
			s.metrics.SessionClosed()
		}
	}()

	s.watchdog = backpressure.NewWatchdog(s.conn, s.gate, s.prober, s.baseLog)
	if s.metrics != nil {
		s.watchdog.OnEngaged = s.metrics.BackpressureEngaged
	}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.watchdog.Run(ctx)
	}()

	packets := make(chan []byte, s.queueSize)
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.dispatchLoop(ctx, packets)
	}()

	readErr := s.readLoop(ctx, packets)
	close(packets)
	cancel()
	wg.Wait()
	s.markClosed()
	// Release any Send blocked on the gate; it will observe closed
	// and fail with SocketClosed.
	s.gate.Open()

	if readErr != nil && !errors.Is(readErr, io.EOF) && !errors.Is(readErr, net.ErrClosed) {
		s.baseLog.WithError(readErr).Info("session: connection ended")
	}
	return nil
}

func (s *Session) markClosed() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// readLoop reads raw bytes off the connection, runs the PROXY
// preamble detector once, feeds the framer, and pushes each framed
// packet onto packets. It returns the terminal read error.
func (s *Session) readLoop(ctx context.Context, packets chan<- []byte) error {
	framer := framing.New()
	buf := make([]byte, 64*1024)
	first := true

	for {
		n, err := s.conn.Read(buf)
		if n > 0 {
			data := buf[:n]
			if first && s.proxyEnabled && !s.proxyConsumed {
				s.proxyConsumed = true
				if stripped, updated, ok, perr := proxyproto.Detect(s.src, data); perr != nil {
					s.baseLog.WithError(perr).Warn("session: malformed PROXY protocol preamble")
				} else if ok {
					s.src = updated
					data = stripped
				}
			}
			first = false

			framed, ferr := framer.Push(data)
			if ferr != nil {
				s.baseLog.WithError(ferr).Info("session: dropping connection, invalid framing")
				s.conn.Close()
				return ferr
			}
			for _, p := range framed {
				select {
				case packets <- p:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
		if err != nil {
			return err
		}
	}
}

// dispatchLoop consumes framed packets strictly in order: header
// check, family decode, consumer dispatch. Any wire.PacketInvalid or
// consumer error hard-aborts the connection.
func (s *Session) dispatchLoop(ctx context.Context, packets <-chan []byte) {
	for {
		select {
		case packet, ok := <-packets:
			if !ok {
				return
			}
			if !s.handleOne(packet) {
				s.conn.Close()
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handleOne(packet []byte) bool {
	tag, body, err := framing.ValidateHeader(packet, s.decoder.End())
	if err != nil {
		s.recordDecodeError(err)
		s.baseLog.WithError(err).Info("session: invalid packet header")
		return false
	}

	msg, err := s.decoder.Decode(tag, body)
	if err != nil {
		s.recordDecodeError(err)
		s.baseLog.WithError(err).Info("session: invalid packet body")
		return false
	}
	if s.metrics != nil {
		s.metrics.PacketDecoded(s.decoder.Name())
	}

	start := time.Now()
	err = s.consumer.Receive(s.src, msg)
	if s.tracer != nil {
		s.tracer("receive_"+msg.PacketName(), time.Since(start))
	}
	if err != nil {
		if errors.Is(err, wire.ErrSocketClosed) {
			s.baseLog.Debug("session: consumer observed peer close")
		} else {
			s.baseLog.WithError(err).Warn("session: consumer handler failed")
		}
		return false
	}
	return true
}

func (s *Session) recordDecodeError(err error) {
	if s.metrics == nil {
		return
	}
	var (
		invalidSize *wire.PacketInvalidSize
		invalidType *wire.PacketInvalidType
		invalidData *wire.PacketInvalidData
		tooShort    *wire.PacketTooShort
	)
	switch {
	case errors.As(err, &invalidSize):
		s.metrics.DecodeError("PacketInvalidSize")
	case errors.As(err, &invalidType):
		s.metrics.DecodeError("PacketInvalidType")
	case errors.As(err, &invalidData):
		s.metrics.DecodeError("PacketInvalidData")
	case errors.As(err, &tooShort):
		s.metrics.DecodeError("PacketTooShort")
	default:
		s.metrics.DecodeError("unknown")
	}
}

// Send finalizes-agnostic write: body must already be a finalized
// packet (wire.Builder.Finish output). It blocks on the writable-gate
// and fails with wire.ErrSocketClosed if the session has already torn
// down.
func (s *Session) Send(ctx context.Context, body []byte) error {
	start := time.Now()
	if err := s.gate.Wait(ctx); err != nil {
		return err
	}
	select {
	case <-s.closed:
		return wire.ErrSocketClosed
	default:
	}
	_, err := s.conn.Write(body)
	if s.tracer != nil {
		s.tracer("send_packet", time.Since(start))
	}
	return err
}

// Source returns the session's current remote endpoint, updated by
// any PROXY preamble processed during Serve.
func (s *Session) Source() source.Source { return s.src }

func splitHostPort(addr net.Addr) (string, string, uint16, error) {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return addr.String(), tcpAddr.IP.String(), uint16(tcpAddr.Port), nil
	}
	host, portStr, err := net.SplitHostPort(addr.String())
	if err != nil {
		return addr.String(), "", 0, err
	}
	var port int
	_, err = fmt.Sscanf(portStr, "%d", &port)
	return addr.String(), host, uint16(port), err
}
