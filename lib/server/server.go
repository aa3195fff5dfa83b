package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pescuma/scmchanges/lib/consoles"
	"github.com/pescuma/scmchanges/lib/model"
	"github.com/pescuma/scmchanges/lib/storages"
)

const defaultPort = 2427

type Options struct {
	Port uint
}

// Run serves the imported repositories until the listener fails. Data is loaded once at startup.
func Run(console consoles.Console, storage storages.Storage, opts *Options) error {
	console.Printf("Loading existing data...\n")

	s, err := newServer(storage, opts)
	if err != nil {
		return err
	}

	console.Printf("Starting server on port %v...\n", s.port)

	gin.SetMode(gin.ReleaseMode)
	return s.router(gin.Logger()).Run(fmt.Sprintf(":%v", s.port))
}

type server struct {
	port    uint
	storage storages.Storage
	repos   *model.Repositories
}

func newServer(storage storages.Storage, opts *Options) (*server, error) {
	repos, err := storage.LoadRepositories()
	if err != nil {
		return nil, err
	}

	s := &server{
		port:    defaultPort,
		storage: storage,
		repos:   repos,
	}
	if opts != nil && opts.Port != 0 {
		s.port = opts.Port
	}

	return s, nil
}

func (s *server) router(middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(append([]gin.HandlerFunc{gin.Recovery()}, middleware...)...)

	s.initRepos(r)
	s.initChanges(r)

	return r
}
