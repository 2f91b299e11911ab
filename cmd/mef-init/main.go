// Command mef-init builds a validated model from a set of Open-PSA MEF
// input files and, optionally, serves it for inspection: a Prometheus
// metrics endpoint and a read-only GraphQL query endpoint over the
// finished model.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openpsa-tools/mef-init/internal/audit"
	"github.com/openpsa-tools/mef-init/internal/config"
	"github.com/openpsa-tools/mef-init/internal/logx"
	"github.com/openpsa-tools/mef-init/internal/notify"
	"github.com/openpsa-tools/mef-init/internal/telemetry"
	"github.com/openpsa-tools/mef-init/pkg/mef/initializer"
	"github.com/openpsa-tools/mef-init/pkg/mef/introspect"
)

func main() {
	var (
		settingsFile = flag.String("settings", "", "YAML settings file (defaults if unset)")
		serve        = flag.Bool("serve", false, "keep running, serving /metrics and /query after the build")
		listenAddr   = flag.String("listen", ":8080", "address the introspection server listens on when -serve is set")
	)
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("usage: mef-init [flags] <input.xml> [more.xml ...]")
	}

	settings := config.Default()
	if *settingsFile != "" {
		var err error
		settings, err = config.Load(*settingsFile)
		if err != nil {
			log.Fatalf("loading settings: %v", err)
		}
	}

	logger := logx.NewJSONLogger(os.Stdout, logx.ParseLevel(settings.LogLevel))
	metrics := telemetry.NewRegistry()

	runner := initializer.New(settings)
	runner.Logger = logger
	runner.Metrics = metrics

	if settings.NotifyAddr != "" {
		pub, err := notify.Listen(settings.NotifyAddr)
		if err != nil {
			log.Fatalf("opening notification socket: %v", err)
		}
		runner.Notifier = pub
		defer pub.Close()
	}

	if settings.AuditDSN != "" {
		ctx := context.Background()
		sink, err := audit.NewPostgresSink(ctx, settings.AuditDSN)
		if err != nil {
			log.Fatalf("connecting audit database: %v", err)
		}
		runner.Audit = sink
		defer sink.Close()
	}

	result, err := runner.Run(context.Background(), files)
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}

	log.Printf("model %q ready: %d gates, %d top events, %d fault trees",
		result.Model.Name, result.GateCount, result.TopEvents, result.FaultTrees)

	if !*serve {
		return
	}

	schema, err := introspect.GenerateSchema(result.Model)
	if err != nil {
		log.Fatalf("building introspection schema: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.PrometheusRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/query", queryHandler(schema))

	log.Printf("serving introspection on %s", *listenAddr)
	if err := http.ListenAndServe(*listenAddr, mux); err != nil {
		log.Fatalf("introspection server failed: %v", err)
	}
}

type queryRequest struct {
	Query string `json:"query"`
}

func queryHandler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		switch {
		case r.Method == http.MethodGet:
			req.Query = r.URL.Query().Get("query")
		case r.Method == http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if strings.TrimSpace(req.Query) == "" {
			http.Error(w, "missing query", http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{Schema: schema, RequestString: req.Query})
		w.Header().Set("Content-Type", "application/json")
		if len(result.Errors) > 0 {
			w.WriteHeader(http.StatusBadRequest)
		}
		json.NewEncoder(w).Encode(result)
	}
}
