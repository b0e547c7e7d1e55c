// Package server exposes the interpreter and the trace store over HTTP.
// Runs are stateless and content-addressed: submitting the same program,
// input, and ceilings twice yields the same digest, so there are no
// sessions to manage.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tliron/commonlog"

	"github.com/chazu/turmite/store"
	"github.com/chazu/turmite/vm"
)

var log = commonlog.GetLogger("turmite.server")

// Server runs submitted programs and serves their stored traces.
type Server struct {
	router *gin.Engine
	store  *store.Store
}

// New creates a Server backed by the given trace store.
func New(st *store.Store) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		router: gin.New(),
		store:  st,
	}
	s.router.Use(gin.Recovery())

	s.router.GET("/healthz", s.health)

	v1 := s.router.Group("/v1")
	v1.POST("/runs", s.createRun)
	v1.GET("/runs", s.listRuns)
	v1.GET("/runs/:digest", s.getRun)
	v1.GET("/runs/:digest/trace", s.getTrace)

	return s
}

// Handler returns the underlying HTTP handler; tests mount it directly.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen serves requests on addr until the listener fails.
func (s *Server) Listen(addr string) error {
	log.Infof("listening on %s", addr)
	return s.router.Run(addr)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) createRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Source == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "source is required"})
		return
	}

	limits := vm.Limits{Steps: req.Limits.Steps, Cells: req.Limits.Cells}
	res := vm.NewWithLimits(req.Source, req.Input, limits).Run()

	digest, err := s.store.Save(req.Source, req.Input, limits, res)
	if err != nil {
		log.Errorf("persisting run: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot persist run"})
		return
	}

	log.Infof("run %s: %s after %d instructions", digest, res.State, res.Executed)
	c.JSON(http.StatusOK, summarize(digest, res))
}

func (s *Server) listRuns(c *gin.Context) {
	infos, err := s.store.List()
	if err != nil {
		log.Errorf("listing runs: %s", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list runs"})
		return
	}

	runs := make([]RunListing, len(infos))
	for i, info := range infos {
		runs[i] = RunListing{
			Digest:   info.Digest,
			State:    info.State,
			Executed: info.Executed,
			Created:  info.Created,
		}
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

func (s *Server) getRun(c *gin.Context) {
	digest := c.Param("digest")
	res, err := s.store.Load(digest)
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		log.Errorf("loading run %s: %s", digest, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load run"})
		return
	}

	detail := RunDetail{
		RunSummary: summarize(digest, res),
		Snapshots:  make([]SnapshotView, len(res.Snapshots)),
	}
	for i, snap := range res.Snapshots {
		detail.Snapshots[i] = SnapshotView{
			Cells:        snap.Cells,
			DataPointer:  snap.DataPointer,
			InstrPointer: snap.InstrPointer,
			InputPointer: snap.InputPointer,
			Output:       snap.Output,
			IsError:      snap.IsError,
			Cause:        causeName(snap.Cause),
			Status:       snap.Status,
		}
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) getTrace(c *gin.Context) {
	digest := c.Param("digest")
	blob, err := s.store.LoadTrace(digest)
	if errors.Is(err, store.ErrRunNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}
	if err != nil {
		log.Errorf("loading trace %s: %s", digest, err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load trace"})
		return
	}
	c.Data(http.StatusOK, "application/cbor", blob)
}

func summarize(digest string, res *vm.ExecutionResult) RunSummary {
	return RunSummary{
		Digest:    digest,
		State:     res.State.String(),
		Executed:  res.Executed,
		Recorded:  len(res.Snapshots),
		Output:    res.Output,
		Fault:     causeName(res.Fault()),
		ElapsedUS: res.Elapsed.Microseconds(),
	}
}

func causeName(kind vm.FaultKind) string {
	if kind == vm.FaultNone {
		return ""
	}
	return kind.String()
}
