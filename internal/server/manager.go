package server

import (
	"fmt"
	"io"
	"net"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultStartupTimeout = 30 * time.Second
	readinessProbeEvery   = 100 * time.Millisecond
	stopGracePeriod       = 5 * time.Second
)

// Manager runs one embedded TensorBoard process for the lifetime of the
// dashboard. Start and Stop are safe to call from different goroutines.
type Manager struct {
	binary         string
	startupTimeout time.Duration
	log            logrus.FieldLogger

	mu   sync.Mutex
	cmd  *exec.Cmd
	url  string
	done chan struct{}
}

// NewManager builds a Manager that launches the "tensorboard" binary from
// PATH. A nil logger discards all output.
func NewManager(startupTimeout time.Duration, logger logrus.FieldLogger) *Manager {
	if startupTimeout <= 0 {
		startupTimeout = defaultStartupTimeout
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Manager{
		binary:         "tensorboard",
		startupTimeout: startupTimeout,
		log:            logger,
	}
}

// URL returns the address of the running server, empty if none.
func (m *Manager) URL() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.url
}

// Start launches TensorBoard serving logdir on a free localhost port and
// blocks until the port accepts connections or the startup timeout expires.
// Returns the server URL.
func (m *Manager) Start(logdir string) (string, error) {
	m.mu.Lock()
	if m.cmd != nil {
		m.mu.Unlock()
		return "", fmt.Errorf("embedded server already running at %s", m.url)
	}
	m.mu.Unlock()

	port, err := freePort()
	if err != nil {
		return "", fmt.Errorf("find free port: %w", err)
	}

	cmd := exec.Command(m.binary,
		"--logdir", logdir,
		"--port", strconv.Itoa(port),
		"--host", "localhost",
		"--reload_interval", "1",
	)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	m.log.WithFields(logrus.Fields{"logdir": logdir, "port": port}).Info("starting tensorboard")
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start tensorboard: %w", err)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()

	addr := net.JoinHostPort("localhost", strconv.Itoa(port))
	if err := waitListening(addr, m.startupTimeout, done); err != nil {
		_ = cmd.Process.Kill()
		<-done
		return "", fmt.Errorf("tensorboard did not become ready: %w", err)
	}

	url := "http://" + addr
	m.mu.Lock()
	m.cmd = cmd
	m.url = url
	m.done = done
	m.mu.Unlock()

	m.log.WithField("url", url).Info("tensorboard ready")
	return url, nil
}

// Stop terminates the embedded server, escalating SIGTERM to SIGKILL after a
// grace period. Stopping an already-stopped manager is a no-op.
func (m *Manager) Stop() error {
	m.mu.Lock()
	cmd := m.cmd
	done := m.done
	m.cmd = nil
	m.url = ""
	m.done = nil
	m.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}

	m.log.Info("stopping tensorboard")
	_ = cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-done:
	case <-time.After(stopGracePeriod):
		_ = cmd.Process.Kill()
		<-done
	}
	return nil
}

// freePort asks the kernel for an unused TCP port.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// waitListening polls addr until it accepts a TCP connection, the process
// exits, or the timeout expires.
func waitListening(addr string, timeout time.Duration, processExited <-chan struct{}) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-processExited:
			return fmt.Errorf("process exited before listening on %s", addr)
		default:
		}
		conn, err := net.DialTimeout("tcp", addr, time.Second)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(readinessProbeEvery)
	}
	return fmt.Errorf("timed out after %s waiting for %s", timeout, addr)
}
