package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spacesedan/clinsight/config"
	"github.com/spacesedan/clinsight/internal/audit"
	"github.com/spacesedan/clinsight/internal/clients"
	"github.com/spacesedan/clinsight/internal/consensus"
	"github.com/spacesedan/clinsight/internal/logging"
	"github.com/spacesedan/clinsight/internal/models"
	"github.com/spacesedan/clinsight/internal/orchestrator"
	"github.com/spacesedan/clinsight/internal/providers"
	"github.com/spacesedan/clinsight/internal/store"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	transcript, err := readTranscript(os.Args[1:])
	if err != nil {
		slog.Error("[Analyzer] Failed to read transcript",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	if strings.TrimSpace(transcript) == "" {
		slog.Error("[Analyzer] Transcript is empty, nothing to analyze")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cache *clients.ValkeyClient
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		cache = clients.InitValkey()
		defer clients.CloseValkey()

		if cached, err := cache.GetCachedConsensus(ctx, transcript); err != nil {
			slog.Warn("[Analyzer] Consensus cache lookup failed",
				slog.String("error", err.Error()))
		} else if cached != nil {
			slog.Info("[Analyzer] Serving cached consensus for unchanged transcript")
			printResult(cached)
			return
		}
	}

	visitID := uuid.NewString()

	var recorder *audit.Recorder
	if os.Getenv("KAFKA_BROKER") != "" {
		if err := audit.InitPublisher(); err != nil {
			slog.Warn("[Analyzer] Audit publisher unavailable",
				slog.String("error", err.Error()))
		} else {
			defer audit.ClosePublisher()
			recorder = audit.NewRecorder(visitID)
		}
	}

	onProgress := func(providerID, status string) {
		slog.Info("[Analyzer] Provider status changed",
			slog.String("provider", providerID),
			slog.String("status", status))
		if recorder != nil {
			recorder.Record(providerID, status)
		}
	}

	orch := orchestrator.New(
		providers.NewOpenAIProvider(),
		providers.NewOllamaProvider(),
	)
	comparison := orch.CompareAll(ctx, transcript, onProgress)
	result := consensus.New().Build(ctx, comparison, transcript)

	if recorder != nil {
		if err := recorder.Flush(); err != nil {
			slog.Warn("[Analyzer] Failed to publish audit events",
				slog.String("error", err.Error()))
		}
	}

	visit := models.VisitRecord{
		VisitID:    visitID,
		Transcript: transcript,
		Comparison: comparison,
		Consensus:  result,
		CreatedAt:  time.Now().UTC(),
	}
	if err := store.PutVisit(ctx, visit); err != nil {
		slog.Warn("[Analyzer] Failed to persist visit record",
			slog.String("error", err.Error()))
	}

	if result == nil {
		slog.Error("[Analyzer] All AI providers failed, no assessment available",
			slog.String("visit_id", visitID))
		os.Exit(1)
	}

	if cache != nil {
		if err := cache.CacheConsensus(ctx, transcript, result); err != nil {
			slog.Warn("[Analyzer] Failed to cache consensus",
				slog.String("error", err.Error()))
		}
	}

	slog.Info("[Analyzer] Analysis completed successfully",
		slog.String("visit_id", visitID))
	printResult(result)
}

// readTranscript reads from the file named by the first argument, or stdin
// when no argument is given.
func readTranscript(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read transcript file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read transcript from stdin: %w", err)
	}
	return string(data), nil
}

func printResult(result *models.ConsensusResult) {
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.Error("[Analyzer] Failed to render result",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(out))
}
