package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/retrosnake/internal/game"
	"github.com/Mshel/retrosnake/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "6996"

	defaultMaxConnectionsPerIP = 2
	shutdownTimeout            = 30 * time.Second
)

type serverConfig struct {
	Host                string
	Port                string
	PrivateKeyPath      string
	MaxConnectionsPerIP int
	Game                game.Config
}

func loadServerConfig() (serverConfig, error) {
	gameConfig, err := game.ConfigFromEnv()
	if err != nil {
		return serverConfig{}, err
	}

	cfg := serverConfig{
		Host:                envOr("SNAKE_HOST", defaultHost),
		Port:                envOr("SNAKE_PORT", defaultPort),
		PrivateKeyPath:      envOr("SNAKE_PRIVATE_KEY_PATH", ".ssh/id_ed25519"),
		MaxConnectionsPerIP: defaultMaxConnectionsPerIP,
		Game:                gameConfig,
	}

	if raw := os.Getenv("SNAKE_MAX_CONNECTIONS_PER_IP"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return cfg, fmt.Errorf("%w: SNAKE_MAX_CONNECTIONS_PER_IP=%q must be a positive integer", game.ErrInvalidConfig, raw)
		}
		cfg.MaxConnectionsPerIP = limit
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// connectionLimiter caps concurrent sessions per remote IP.
type connectionLimiter struct {
	mu        sync.Mutex
	ipCounter map[string]int
	limit     int
}

func newConnectionLimiter(limit int) *connectionLimiter {
	return &connectionLimiter{ipCounter: make(map[string]int), limit: limit}
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire reports the count before the attempt and whether a slot was taken.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := l.ipCounter[ip]
	if current >= l.limit {
		return current, false
	}
	l.ipCounter[ip]++
	return current, true
}

func (l *connectionLimiter) release(ip string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
	return l.ipCounter[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		currentCount, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", currentCount+1, "current_limit", l.limit)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", currentCount+1, l.limit)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", currentCount+1, "limit", l.limit)
		next(s)
		log.Info("Connection closed and counter decremented", "ip", ip, "count_after", l.release(ip))
	}
}

// viewHandler gives every SSH session its own round; sessions share nothing.
func viewHandler(gameConfig game.Config) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		logger := log.With("ip", getIP(sshSession), "user", sshSession.User())

		// there is no speaker on the far side of an SSH session
		gameManager, closeSession, err := game.NewSession(gameConfig, game.NopSound{}, logger)
		if err != nil {
			logger.Error("Could not start round", "error", err)
			return nil, nil
		}

		go func() {
			defer closeSession()
			if err := gameManager.Run(sshSession.Context()); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Game loop failed", "error", err)
			}
		}()

		controllerModel := ui.NewControllerModel(gameManager, pty.Window.Width, pty.Window.Height)
		return controllerModel, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

func main() {
	log.SetLevel(log.DebugLevel)

	cfg, err := loadServerConfig()
	if err != nil {
		log.Fatal("Bad configuration", "error", err)
	}

	limiter := newConnectionLimiter(cfg.MaxConnectionsPerIP)
	sshServer, serverCreateErr := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(cfg.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(viewHandler(cfg.Game)),
			activeterm.Middleware(),
			limiter.Middleware,
			logging.Middleware(),
		),
	)
	if serverCreateErr != nil {
		log.Fatal("Failed to create ssh server", "error", serverCreateErr)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGTERM)
	log.Info("Starting SSH server", "host", cfg.Host, "port", cfg.Port)
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}
