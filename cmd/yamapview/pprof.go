package main

import (
	"log/slog"
	"net/http"
	_ "net/http/pprof"
)

func enablePPROF(addr string, log *slog.Logger) {
	go func() {
		log.Info("pprof enabled", "addr", "http://"+addr+"/debug/pprof/")
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("pprof", "err", err)
		}
	}()
}
