package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/praylink/internal/client/cache"
	"github.com/dmitrijs2005/praylink/internal/client/client"
	"github.com/dmitrijs2005/praylink/internal/client/config"
	"github.com/dmitrijs2005/praylink/internal/client/session"
	"github.com/dmitrijs2005/praylink/internal/feed"
	"github.com/dmitrijs2005/praylink/internal/filex"
	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger
	remote client.Client
	cache  *cache.Cache
	reader *bufio.Reader
	out    io.Writer

	mu       sync.Mutex
	Mode     Mode
	session  *session.Session
	feedMode feed.Mode
	listed   []*models.Post
	pulse    *session.PrayerPulse
}

// NewApp opens the offline cache under cfg.DataDir and connects the client.
func NewApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	logger, err := logging.New(cfg.LogFormat, out)
	if err != nil {
		return nil, err
	}

	mode, err := feed.ParseMode(cfg.FeedMode)
	if err != nil {
		return nil, err
	}

	dir, err := filex.EnsureSubdDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	c, err := cache.Open(ctx, filepath.Join(dir, cache.FileName))
	if err != nil {
		return nil, fmt.Errorf("error initializing cache: %w", err)
	}

	remote, err := client.NewPrayLinkClient(cfg.ServerEndpointAddr)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	return &App{
		config:   cfg,
		log:      logger.With("module", "cli"),
		remote:   remote,
		cache:    c,
		reader:   bufio.NewReader(in),
		out:      out,
		feedMode: mode,
	}, nil
}

func (a *App) sessionOptions() session.Options {
	opts := session.Options{Logger: a.log}
	if a.cache != nil {
		opts.Cache = a.cache.Posts
		opts.Metadata = a.cache.Metadata
	}
	return opts
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.Mode != mode
	a.Mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "Switched mode", "mode", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) current() *session.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *App) setSession(s *session.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = s
	a.listed = nil
}

func (a *App) isLoggedIn() bool {
	return a.current() != nil
}

// Run starts the watchers and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	a.pulse = session.StartPrayerPulse(ctx, session.PulseStart, session.PulseInterval)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to PrayLink (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	if a.remote != nil {
		_ = a.remote.Close()
	}
	if a.cache != nil {
		_ = a.cache.Close()
	}
}

func (a *App) getStatus() string {
	s := ""
	if sess := a.current(); sess != nil {
		if v := sess.Viewer(); v != nil {
			s = v.Name() + " "
			if v.IsPremium {
				s += "premium "
			}
		}
	}
	s += string(a.mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.remote.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
