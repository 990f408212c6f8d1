package sentiment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"golang.org/x/sync/singleflight"

	"github.com/spacesedan/clinsight/internal/models"
)

const (
	sentimentModelName = "KnightsAnalytics/distilbert-base-uncased-finetuned-sst-2-english"
	defaultModelDir    = "./models"

	maxIndicators = 7
)

// indicatorPatterns are scanned in priority order; each tag appears in the
// output at most once.
var indicatorPatterns = []struct {
	tag     string
	pattern *regexp.Regexp
}{
	{"pain", regexp.MustCompile(`(?i)\b(pain|ache|aching|hurt|hurts|hurting|sore)\b`)},
	{"high_severity", regexp.MustCompile(`(?i)\b(severe|extreme|terrible|unbearable|excruciating)\b`)},
	{"functional_limitation", regexp.MustCompile(`(?i)\b(can't|cannot|unable|difficult|struggling)\b`)},
	{"anxiety", regexp.MustCompile(`(?i)\b(anxious|anxiety|worried|nervous|panic)\b`)},
	{"depression", regexp.MustCompile(`(?i)\b(depressed|depression|hopeless|sad)\b`)},
	{"urgency", regexp.MustCompile(`(?i)\b(urgent|emergency|immediately|worse|worsening)\b`)},
	{"improvement", regexp.MustCompile(`(?i)\b(better|improved|improving|recovering|relief)\b`)},
}

type loadFunc func() (*pipelines.TextClassificationPipeline, error)

// Classifier scores transcript sentiment with a transformer model, falling
// back to rule-based scoring whenever the model cannot be used. The pipeline
// is loaded lazily on first use; concurrent first callers share a single
// initialization attempt, and a failed attempt is retried on a later call.
type Classifier struct {
	load     loadFunc
	flight   singleflight.Group
	mu       sync.Mutex
	pipeline *pipelines.TextClassificationPipeline
}

var defaultClassifier = NewClassifier()

// NewClassifier returns a classifier backed by the hugot sentiment pipeline.
func NewClassifier() *Classifier {
	return &Classifier{load: loadPipeline}
}

// Default returns the process-wide classifier instance.
func Default() *Classifier {
	return defaultClassifier
}

// Classify produces the sentiment/distress signal for one transcript. Errors
// from the primary path never escape; they route the call to the fallback.
func (c *Classifier) Classify(ctx context.Context, text string) models.SentimentResult {
	pipeline, err := c.ready()
	if err != nil {
		slog.Warn("[SentimentClassifier] Primary model unavailable, using rule-based fallback",
			slog.String("error", err.Error()))
		return classifyFallback(text)
	}

	output, err := pipeline.RunPipeline([]string{NormalizeTranscript(text)})
	if err != nil {
		slog.Warn("[SentimentClassifier] Model inference failed, using rule-based fallback",
			slog.String("error", err.Error()))
		return classifyFallback(text)
	}

	label, confidence, err := firstClassification(output)
	if err != nil {
		slog.Warn("[SentimentClassifier] Unexpected model output, using rule-based fallback",
			slog.String("error", err.Error()))
		return classifyFallback(text)
	}

	return resultFromModel(text, label, confidence)
}

// ready returns the shared pipeline, initializing it on first use. The
// single-flight group guarantees exactly one load is ever in flight; callers
// arriving during a load block on its outcome. A failed load clears the
// flight so the next call may retry.
func (c *Classifier) ready() (*pipelines.TextClassificationPipeline, error) {
	c.mu.Lock()
	pipeline := c.pipeline
	c.mu.Unlock()
	if pipeline != nil {
		return pipeline, nil
	}

	v, err, _ := c.flight.Do("init", func() (interface{}, error) {
		slog.Info("[SentimentClassifier] Initializing sentiment pipeline")
		p, err := c.load()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.pipeline = p
		c.mu.Unlock()
		slog.Info("[SentimentClassifier] Sentiment pipeline ready")
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*pipelines.TextClassificationPipeline), nil
}

func loadPipeline() (*pipelines.TextClassificationPipeline, error) {
	modelDir := os.Getenv("SENTIMENT_MODEL_DIR")
	if modelDir == "" {
		modelDir = defaultModelDir
	}
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create model directory: %w", err)
	}

	modelPath := filepath.Join(modelDir, strings.ReplaceAll(sentimentModelName, "/", "_"))
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		slog.Info("[SentimentClassifier] Model not found, downloading...",
			slog.String("model", sentimentModelName))
		downloaded, err := hugot.DownloadModel(sentimentModelName, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to download sentiment model: %w", err)
		}
		modelPath = downloaded
		slog.Info("[SentimentClassifier] Model downloaded successfully",
			slog.String("path", modelPath))
	} else {
		slog.Info("[SentimentClassifier] Using existing model",
			slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "clinicalSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		return nil, fmt.Errorf("failed to initialize sentiment pipeline: %w", err)
	}

	return pipeline, nil
}

func firstClassification(output *pipelines.TextClassificationOutput) (string, float64, error) {
	if output == nil || len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return "", 0, fmt.Errorf("empty classification output")
	}
	best := output.ClassificationOutputs[0][0]
	return best.Label, float64(best.Score), nil
}

func resultFromModel(text, label string, confidence float64) models.SentimentResult {
	positive := strings.EqualFold(label, "POSITIVE")

	score := confidence
	overall := models.SentimentPositive
	level := models.DistressLow
	if !positive {
		score = -confidence
		overall = models.SentimentNegative
		switch {
		case confidence > 0.9:
			level = models.DistressHigh
		case confidence > 0.7:
			level = models.DistressMedium
		}
	}

	return models.SentimentResult{
		OverallSentiment:    overall,
		SentimentScore:      score,
		DistressLevel:       level,
		EmotionalIndicators: scanIndicators(text),
		AnalysisType:        models.AnalysisTypePrimaryModel,
		Confidence:          math.Round(confidence*1000) / 10,
		Model:               sentimentModelName,
	}
}

func scanIndicators(text string) []string {
	indicators := []string{}
	for _, candidate := range indicatorPatterns {
		if candidate.pattern.MatchString(text) {
			indicators = append(indicators, candidate.tag)
		}
		if len(indicators) == maxIndicators {
			break
		}
	}
	return indicators
}
