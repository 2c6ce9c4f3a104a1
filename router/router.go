// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/listen/checkmarks"
	"github.com/danielhkuo/listen/cliparse"
	"github.com/danielhkuo/listen/handlers"
	"github.com/danielhkuo/listen/middleware"
	"github.com/danielhkuo/listen/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	engine := checkmarks.NewEngine(st)
	pageHandler := handlers.NewPageHandler()
	runbookHandler := handlers.NewRunbookHandler(st)
	sectionHandler := handlers.NewSectionHandler(st)
	itemHandler := handlers.NewItemHandler(st)
	runHandler := handlers.NewRunHandler(st, engine)
	checkmarkHandler := handlers.NewCheckmarkHandler(engine)
	shareHandler := handlers.NewShareHandler(st)
	assetHandler := handlers.NewAssetHandler(cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Page shell, also for deep links
	mux.HandleFunc("GET /{$}", middleware.WithLogging(pageHandler.Index))
	mux.HandleFunc("GET /_/runbooks/{id}", middleware.WithLogging(pageHandler.DirectRunbook))
	mux.HandleFunc("GET /_/runs/{id}", middleware.WithLogging(pageHandler.DirectRun))

	// Runbooks
	mux.HandleFunc("GET /runbooks", middleware.WithLogging(runbookHandler.ListRunbooks))
	mux.HandleFunc("POST /runbooks/new", middleware.WithLogging(runbookHandler.NewRunbook))
	mux.HandleFunc("GET /runbooks/{id}", middleware.WithLogging(runbookHandler.GetRunbook))
	mux.HandleFunc("POST /runbooks/change/{id}", middleware.WithLogging(runbookHandler.ChangeRunbook))
	mux.HandleFunc("POST /runbooks/delete/{id}", middleware.WithLogging(runbookHandler.DeleteRunbook))

	// Share codes
	mux.HandleFunc("GET /runbooks/dump/{id}", middleware.WithLogging(shareHandler.DumpRunbook))
	mux.HandleFunc("POST /runbooks/load", middleware.WithLogging(shareHandler.LoadRunbook))

	// Sections and items
	mux.HandleFunc("POST /sections/new/{runbook_id}", middleware.WithLogging(sectionHandler.NewSection))
	mux.HandleFunc("POST /sections/change/{id}", middleware.WithLogging(sectionHandler.ChangeSection))
	mux.HandleFunc("POST /items/new/{section_id}", middleware.WithLogging(itemHandler.NewItem))
	mux.HandleFunc("POST /items/toggle/{id}", middleware.WithLogging(itemHandler.ToggleItem))
	mux.HandleFunc("POST /items/change/{id}", middleware.WithLogging(itemHandler.ChangeItem))

	// Runs and targets
	mux.HandleFunc("GET /runs", middleware.WithLogging(runHandler.ListRuns))
	mux.HandleFunc("POST /runs/new/{runbook_id}", middleware.WithLogging(runHandler.NewRun))
	mux.HandleFunc("GET /runs/{id}", middleware.WithLogging(runHandler.GetRun))
	mux.HandleFunc("POST /runs/change/{id}", middleware.WithLogging(runHandler.ChangeRun))
	mux.HandleFunc("POST /runs/delete/{id}", middleware.WithLogging(runHandler.DeleteRun))
	mux.HandleFunc("POST /targets/new/{run_id}", middleware.WithLogging(runHandler.NewTarget))

	// Checkmarks; the target is only given for each items
	mux.HandleFunc("POST /checkmarks/check/{run_id}/{item_id}", middleware.WithLogging(checkmarkHandler.Check))
	mux.HandleFunc("POST /checkmarks/check/{run_id}/{item_id}/{target_id}", middleware.WithLogging(checkmarkHandler.Check))
	mux.HandleFunc("POST /checkmarks/disable/{run_id}/{item_id}", middleware.WithLogging(checkmarkHandler.Disable))
	mux.HandleFunc("POST /checkmarks/disable/{run_id}/{item_id}/{target_id}", middleware.WithLogging(checkmarkHandler.Disable))

	// Static files
	mux.HandleFunc("GET /vendor/htmx.min.js", assetHandler.File("htmx.min.js"))
	mux.HandleFunc("GET /vendor/Satisfy-Regular.woff2", assetHandler.File("Satisfy-Regular.woff2"))
	mux.HandleFunc("GET /favicon.ico", assetHandler.File("favicon.ico"))

	return mux
}
