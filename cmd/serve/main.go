// serve exposes the querier pipeline over HTTP.
//
//	serve [-addr :8080] [-log-format text|json] pageStore indexFile
//
// The loaded index and page store are read-only, so one Searcher safely
// serves all requests.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"webseek/querier/internal/api"
	"webseek/querier/internal/search"
	"webseek/querier/internal/segment"
	"webseek/querier/internal/store"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] pageStore indexFile\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	setupLogger(*logFormat)

	st, err := store.Open(flag.Arg(0))
	if err != nil {
		slog.Error("open page store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	idx, err := segment.OpenIndex(flag.Arg(1))
	if idx == nil {
		slog.Error("open index", "error", err)
		os.Exit(1)
	}
	if err != nil {
		slog.Warn("index loaded with errors", "error", err)
	}
	if c, ok := idx.(io.Closer); ok {
		defer c.Close()
	}

	stats, _ := idx.(api.Stats)

	router := gin.Default()
	api.SetupRoutes(router, search.New(idx, st), stats)

	slog.Info("serving", "addr", *addr)
	if err := router.Run(*addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}
