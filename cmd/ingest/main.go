// Command ingest converts the raw EPA UCMR5 occurrence file into the
// processed state-medians CSV the service loads at startup.
//
// Usage:
//
//	ingest -in data/raw/UCMR5_All.txt -out data/processed/ucmr5_state_medians.csv
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/pfas-riskscope/internal/ingest"
	"github.com/couchcryptid/pfas-riskscope/internal/observability"
)

func main() {
	inPath := flag.String("in", "data/raw/UCMR5_All.txt", "raw UCMR5 occurrence file (tab-delimited)")
	outPath := flag.String("out", "data/processed/ucmr5_state_medians.csv", "processed state medians CSV")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger := observability.NewLogger(*logLevel, "text")

	if err := run(*inPath, *outPath, logger); err != nil {
		logger.Error("ingest failed", "error", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, logger *slog.Logger) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	logger.Info("loading raw UCMR5 file", "path", inPath)
	samples, err := ingest.ParseUCMR5(in)
	if err != nil {
		return err
	}
	logger.Info("parsed PFAS samples", "samples", len(samples))

	medians := ingest.AggregateStateMedians(samples)
	logger.Info("aggregated state medians", "rows", len(medians))

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return err
	}

	if err := ingest.WriteMedians(out, medians); err != nil {
		out.Close()
		return err
	}
	logger.Info("wrote processed medians", "path", outPath)
	return out.Close()
}
