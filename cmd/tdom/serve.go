package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/tdom"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:     "serve [dir]",
	Aliases: []string{"s"},
	Short:   "Preview a directory of markup documents with live reload",
	Long: `Serve renders every .html document in the directory through the
engine's parser and serializer and previews the result in the browser.
Documents are re-rendered on each request, and a filesystem watcher
pushes a reload to connected browsers whenever a document changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "host to bind")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to bind")
	viper.BindPFlag("serve.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}

// reloadHub tracks connected preview browsers and pushes reload
// messages.
type reloadHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	log   *tdom.Logger
}

func newReloadHub(log *tdom.Logger) *reloadHub {
	return &reloadHub{conns: make(map[*websocket.Conn]struct{}), log: log}
}

func (h *reloadHub) add(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *reloadHub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

func (h *reloadHub) broadcast(ctx context.Context) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		wctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := c.Write(wctx, websocket.MessageText, []byte("reload")); err != nil {
			h.log.Debug("dropping stale preview connection", "error", err.Error())
			h.remove(c)
			c.Close(websocket.StatusGoingAway, "write failed")
		}
		cancel()
	}
}

const reloadScript = `<script>
(function() {
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function() { location.reload(); };
})();
</script>`

func runServe(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	log := newLogger().WithComponent("serve")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := newReloadHub(log)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	go watchLoop(ctx, watcher, hub, log)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			log.Debug("websocket accept failed", "error", err.Error())
			return
		}
		hub.add(conn)
		// Hold the connection open until the client goes away.
		conn.Reader(r.Context())
		hub.remove(conn)
		conn.Close(websocket.StatusNormalClosure, "")
	})
	mux.HandleFunc("/view/", func(w http.ResponseWriter, r *http.Request) {
		serveDocument(w, r, dir, log)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		serveIndex(w, dir)
	})

	addr := fmt.Sprintf("%s:%d", viper.GetString("serve.host"), viper.GetInt("serve.port"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info("preview server started", "addr", addr, "dir", dir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func watchLoop(ctx context.Context, watcher *fsnotify.Watcher, hub *reloadHub, log *tdom.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.HasSuffix(event.Name, ".html") {
				continue
			}
			log.Debug("document changed", "file", event.Name)
			hub.broadcast(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error(err, "watcher error")
		}
	}
}

// serveDocument re-renders one document through the engine and injects
// the live-reload script.
func serveDocument(w http.ResponseWriter, r *http.Request, dir string, log *tdom.Logger) {
	name := strings.TrimPrefix(r.URL.Path, "/view/")
	if name == "" || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	input, err := os.ReadFile(filepath.Join(dir, filepath.Clean(name)))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	node, err := tdom.Parse(string(input))
	if err != nil {
		log.Error(err, "parse failed", "file", name)
		http.Error(w, fmt.Sprintf("parse error in %s: %v", name, err), http.StatusUnprocessableEntity)
		return
	}

	markup := node.String()
	if i := strings.LastIndex(markup, "</body>"); i >= 0 {
		markup = markup[:i] + reloadScript + markup[i:]
	} else {
		markup += reloadScript
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(markup))
}

// serveIndex lists the previewable documents with display titles derived
// from their file names.
func serveIndex(w http.ResponseWriter, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	titler := cases.Title(language.English)
	var items []tdom.Node
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".html") {
			continue
		}
		base := strings.TrimSuffix(name, ".html")
		title := titler.String(strings.NewReplacer("-", " ", "_", " ").Replace(base))
		link := tdom.NewElement("a", tdom.NewText(title))
		link.SetAttr("href", "/view/"+name)
		items = append(items, tdom.NewElement("li", link))
	}

	page := tdom.NewFragment(
		tdom.NewDocumentType("html"),
		tdom.NewElement("html",
			tdom.NewElement("head", tdom.NewElement("title", tdom.NewText("tdom preview"))),
			tdom.NewElement("body",
				tdom.NewElement("h1", tdom.NewText("Documents")),
				tdom.NewElement("ul", items...),
			),
		),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page.String()))
}
