package main

import (
	"errors"
	"log"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"

	"github.com/funny-falcon/ownership/alloc"
)

const (
	defaultItems   = 1000
	maxItems       = 1 << 20
	defaultWorkers = 4
	maxWorkers     = 256
)

var jsonConfig = jsoniter.Config{
	OnlyTaggedField: true,
	CaseSensitive:   true,
}.Froze()

type server struct {
	cfg   Config
	arena *alloc.Arena
}

func newServer(cfg Config) *server {
	s := &server{cfg: cfg}
	if cfg.Allocator == "arena" {
		s.arena = alloc.NewArena(cfg.arenaConfig())
	}
	return s
}

func (s *server) Close() {
	if s.arena == nil {
		return
	}
	if err := s.arena.Release(); err != nil {
		log.Print(err)
	}
}

func (s *server) handler(ctx *fasthttp.RequestCtx) {
	if !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		return
	}
	switch string(ctx.Path()) {
	case "/stats":
		s.doStats(ctx)
	case "/run":
		s.doRun(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

type statsOut struct {
	Allocator string       `json:"allocator"`
	Heap      alloc.Stats  `json:"heap"`
	Arena     *alloc.Stats `json:"arena,omitempty"`
}

func (s *server) doStats(ctx *fasthttp.RequestCtx) {
	out := statsOut{Allocator: s.cfg.Allocator, Heap: alloc.Heap{}.Stats()}
	if s.arena != nil {
		st := s.arena.Stats()
		out.Arena = &st
	}
	writeJSON(ctx, fasthttp.StatusOK, &out)
}

type runOut struct {
	Allocator string    `json:"allocator"`
	Elapsed   string    `json:"elapsed"`
	Result    runResult `json:"result"`
	Error     string    `json:"error,omitempty"`
}

func (s *server) doRun(ctx *fasthttp.RequestCtx) {
	args := ctx.QueryArgs()
	n, ok := intArg(args, "n", defaultItems, maxItems)
	if !ok {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}
	workers, ok := intArg(args, "workers", defaultWorkers, maxWorkers)
	if !ok || workers == 0 {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		return
	}

	start := time.Now()
	var (
		res runResult
		err error
	)
	if s.arena != nil {
		res, err = runWorkload(s.arena, n, workers)
	} else {
		res, err = runWorkload(alloc.Heap{}, n, workers)
	}
	out := runOut{
		Allocator: s.cfg.Allocator,
		Elapsed:   time.Since(start).String(),
		Result:    res,
	}
	status := fasthttp.StatusOK
	if err != nil {
		log.Printf("run n=%d workers=%d: %v", n, workers, err)
		out.Error = err.Error()
		status = fasthttp.StatusInternalServerError
		if errors.Is(err, alloc.ErrExhausted) {
			status = fasthttp.StatusServiceUnavailable
		}
	}
	if res.Leaks != "" {
		log.Printf("run n=%d workers=%d leaked: %s", n, workers, res.Leaks)
	}
	writeJSON(ctx, status, &out)
}

// intArg reads a non-negative integer query argument no larger than max.
// A missing argument gives def.
func intArg(args *fasthttp.Args, key string, def, max int) (int, bool) {
	v, err := args.GetUint(key)
	if err == fasthttp.ErrNoArgValue {
		return def, true
	}
	if err != nil || v > max {
		return 0, false
	}
	return v, true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	stream := jsonConfig.BorrowStream(nil)
	defer jsonConfig.ReturnStream(stream)
	stream.WriteVal(v)
	if stream.Error != nil {
		log.Print(stream.Error)
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(stream.Buffer())
}
