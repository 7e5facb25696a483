// Package server exposes the catalog lookup API over HTTP. It is a thin
// layer: handlers delegate to the catalog resolvers and translate their
// typed not-found results into HTTP responses.
package server

import (
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/regcat/regcat/internal/utils"
	"github.com/regcat/regcat/pkg/catalog"
	"github.com/regcat/regcat/pkg/storage"
)

// reloadDebounce is how long the catalog file must stay quiet after a
// change before it is reloaded.
const reloadDebounce = 250 * time.Millisecond

type Server struct {
	store atomic.Pointer[catalog.Store]
}

// New creates a server over an initial store snapshot.
func New(store *catalog.Store) *Server {
	s := &Server{}
	s.store.Store(store)
	return s
}

// Store returns the current snapshot. Handlers resolve the snapshot once
// per request, so a concurrent swap never exposes a half-merged catalog.
func (s *Server) Store() *catalog.Store {
	return s.store.Load()
}

// Swap atomically publishes a new snapshot.
func (s *Server) Swap(store *catalog.Store) {
	s.store.Store(store)
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /docs", s.handleDocs)
	mux.HandleFunc("GET /semesters", s.handleSemesters)
	mux.HandleFunc("GET /semesters/{semester}", s.handleSemester)
	mux.HandleFunc("GET /semesters/{semester}/{fieldOfStudy}", s.handleFieldOfStudy)
	mux.HandleFunc("GET /semesters/{semester}/{fieldOfStudy}/{course}", s.handleCourse)
	mux.HandleFunc("GET /semesters/{semester}/{fieldOfStudy}/{course}/{section}", s.handleSection)
	mux.HandleFunc("GET /semesters/{semester}/{fieldOfStudy}/{course}/topics", s.handleTopics)
	mux.HandleFunc("GET /semesters/{semester}/{fieldOfStudy}/{course}/topics/{topic}", s.handleTopic)
	mux.HandleFunc("GET /semesters/{semester}/{fieldOfStudy}/{course}/topics/{topic}/{section}", s.handleTopicSection)

	return mux
}

// Start serves the API on addr and blocks.
func (s *Server) Start(addr string) error {
	utils.Log.Infof("serving catalog API on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// WatchCatalog reloads the catalog file whenever it changes, publishing
// the new store with an atomic swap. The parent directory is watched
// because saves rename a temp file into place, which replaces the inode.
// The returned stop function shuts the watcher down.
func (s *Server) WatchCatalog(path string) (func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		var timer *time.Timer
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(reloadDebounce, func() {
					s.reload(abs)
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				utils.Log.Warnf("catalog watcher error: %v", err)
			}
		}
	}()

	utils.Log.Infof("watching %s for catalog updates", abs)
	return func() { watcher.Close() }, nil
}

// reload loads the catalog file fully before swapping it in; a load
// failure keeps the previous snapshot serving.
func (s *Server) reload(path string) {
	store, err := storage.Load(path)
	if err != nil {
		utils.Log.Warnf("catalog reload failed, keeping previous snapshot: %v", err)
		return
	}
	s.Swap(store)
	utils.Log.Infof("catalog reloaded: %d semester(s)", store.Len())
}
