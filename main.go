// Command ownstat runs ownership workloads against a configured allocator and
// serves allocator statistics over HTTP.
package main

import (
	"flag"
	"log"

	"github.com/valyala/fasthttp"

	"github.com/funny-falcon/ownership/alloc"
)

var port = flag.String("port", "8080", "port to listen")
var allocator = flag.String("allocator", "heap", "allocator for workloads: heap or arena")
var chunk = flag.Int("chunk", alloc.DefaultChunkSize, "arena chunk size")
var slab = flag.Int("slab", alloc.DefaultSlabChunks, "arena chunks mapped at once")
var limit = flag.Int64("limit", 0, "arena limit in bytes, 0 for none")

func main() {
	log.SetFlags(log.Lmicroseconds | log.Lshortfile)
	flag.Parse()

	cfg, err := LoadConfig(Config{
		Port:       *port,
		Allocator:  *allocator,
		ChunkSize:  *chunk,
		SlabChunks: *slab,
		Limit:      *limit,
	})
	if err != nil {
		log.Fatal(err)
	}

	srv := newServer(cfg)
	defer srv.Close()
	log.Printf("listening on :%s, allocator %s", cfg.Port, cfg.Allocator)

	err = fasthttp.ListenAndServe(":"+cfg.Port, srv.handler)
	if err != nil {
		log.Fatal(err)
	}
}
