package metrics

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// Device capacity budgets in GB (approximate VRAM / RAM).
var deviceLimitsGB = []struct {
	device string
	limit  float64
}{
	{score.DeviceRaspberryPi, 1.0},
	{score.DeviceJetsonNano, 2.0},
	{score.DeviceDesktopPC, 16.0},
	{score.DeviceAWSServer, 128.0},
}

const (
	bytesPerGB        = 1 << 30
	fp16BytesPerParam = 2.0
	defaultSizeGB     = 0.5
)

var (
	billionParamRe = regexp.MustCompile(`[-_](\d+\.?\d*)b(?:illion)?[-_]`)
	millionParamRe = regexp.MustCompile(`[-_](\d+)m(?:illion)?[-_]`)
)

// Model family size priors in GB, for when nothing better is known.
var familySizesGB = []struct {
	family string
	sizeGB float64
}{
	{"llama", 13.0},
	{"mistral", 14.0},
	{"phi", 2.7},
	{"qwen", 7.0},
	{"vicuna", 13.0},
	{"alpaca", 7.0},
	{"falcon", 40.0},
	{"mpt", 7.0},
	{"bloom", 176.0},
	{"opt", 66.0},
	{"pythia", 12.0},
	{"stablelm", 3.0},
	{"codellama", 13.0},
	{"starcoder", 15.0},
	{"santacoder", 1.1},
}

// Name descriptor priors in GB, the weakest signal in the ladder.
var descriptorSizesGB = []struct {
	word   string
	sizeGB float64
}{
	{"nano", 0.05},
	{"micro", 0.08},
	{"mini", 0.1},
	{"tiny", 0.15},
	{"small", 0.4},
	{"compact", 0.6},
	{"base", 1.0},
	{"medium", 2.0},
	{"standard", 3.0},
	{"large", 6.0},
	{"big", 8.0},
	{"xl", 10.0},
	{"extra", 12.0},
	{"xxl", 20.0},
	{"huge", 40.0},
	{"ultra", 60.0},
	{"giant", 100.0},
}

// SizeGrade scores hardware compatibility per device class. The model
// size is estimated through a ladder of strategies (hub file sizes,
// config.json parameter counts, URL patterns, family and descriptor
// priors) and compared against each device's capacity:
// 1.0 when within half the budget, 0.5 when within it, 0.0 otherwise.
func SizeGrade(hub *Hub) score.Func {
	return func(ctx context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		if s.ModelURL == "" || !strings.Contains(s.ModelURL, "huggingface.co") {
			// Internal failure sentinel: every device incompatible.
			slog.Warn("size_score: no valid hub model URL", "url", s.ModelURL)
			return score.Sizes(score.SizeBreakdown{}, msSince(start)), nil
		}

		sizeGB := estimateModelSizeGB(ctx, hub, s.ModelURL)

		var b score.SizeBreakdown
		for _, d := range deviceLimitsGB {
			v := 0.0
			switch {
			case sizeGB <= d.limit*0.5:
				v = 1.0
			case sizeGB <= d.limit:
				v = 0.5
			}
			switch d.device {
			case score.DeviceRaspberryPi:
				b.RaspberryPi = v
			case score.DeviceJetsonNano:
				b.JetsonNano = v
			case score.DeviceDesktopPC:
				b.DesktopPC = v
			case score.DeviceAWSServer:
				b.AWSServer = v
			}
		}

		return score.Sizes(b, msSince(start)), nil
	}
}

func estimateModelSizeGB(ctx context.Context, hub *Hub, modelURL string) float64 {
	id, err := RepoID(modelURL)
	if err != nil {
		return defaultSizeGB
	}

	// Strategy 1: actual file sizes from hub metadata.
	if m, err := hub.Model(ctx, id); err == nil {
		var totalBytes int64
		for _, sib := range m.Siblings {
			totalBytes += sib.Size
		}
		if totalBytes > 0 {
			return float64(totalBytes) / bytesPerGB
		}
	}

	lower := strings.ToLower(modelURL)
	quant := quantizationMultiplier(lower)

	// Strategy 2: parameter count from config.json.
	if gb, ok := sizeFromConfig(ctx, hub, id, quant); ok {
		return gb
	}

	// Strategy 3: explicit parameter counts in the repo name.
	if m := billionParamRe.FindStringSubmatch(lower); m != nil {
		if billions, err := strconv.ParseFloat(m[1], 64); err == nil {
			return billions * 2.0 * quant
		}
	}
	if m := millionParamRe.FindStringSubmatch(lower); m != nil {
		if millions, err := strconv.ParseFloat(m[1], 64); err == nil {
			return millions * 0.002 * quant
		}
	}

	// Strategy 4: family priors.
	for _, f := range familySizesGB {
		if strings.Contains(lower, f.family) {
			return f.sizeGB * quant
		}
	}

	// Strategy 5: descriptor priors.
	for _, d := range descriptorSizesGB {
		if strings.Contains(lower, d.word) {
			return d.sizeGB * quant
		}
	}

	return defaultSizeGB
}

func quantizationMultiplier(lower string) float64 {
	switch {
	case strings.Contains(lower, "gguf"), strings.Contains(lower, "ggml"):
		return 0.3
	case strings.Contains(lower, "awq"), strings.Contains(lower, "gptq"),
		strings.Contains(lower, "4bit"), strings.Contains(lower, "q4"):
		return 0.25
	case strings.Contains(lower, "8bit"), strings.Contains(lower, "int8"),
		strings.Contains(lower, "q8"):
		return 0.5
	case strings.Contains(lower, "fp32"), strings.Contains(lower, "float32"):
		return 2.0
	default:
		return 1.0
	}
}

type modelConfig struct {
	NumParameters   float64 `json:"num_parameters"`
	NParams         float64 `json:"n_params"`
	HiddenSize      float64 `json:"hidden_size"`
	NumHiddenLayers float64 `json:"num_hidden_layers"`
	VocabSize       float64 `json:"vocab_size"`
}

func sizeFromConfig(ctx context.Context, hub *Hub, id string, quant float64) (float64, bool) {
	raw, err := hub.RawFile(ctx, id, "config.json")
	if err != nil || raw == "" {
		return 0, false
	}

	var cfg modelConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return 0, false
	}

	params := cfg.NumParameters
	if params == 0 {
		params = cfg.NParams
	}
	if params == 0 && cfg.HiddenSize > 0 && cfg.NumHiddenLayers > 0 {
		hidden := cfg.HiddenSize
		layers := cfg.NumHiddenLayers
		vocab := cfg.VocabSize
		if vocab == 0 {
			vocab = 30522
		}
		// Transformer parameter estimate:
		// vocab*hidden embedding + ~12*hidden^2 per layer.
		params = vocab*hidden + layers*12*hidden*hidden
	}
	if params == 0 {
		return 0, false
	}

	return params * fp16BytesPerParam / bytesPerGB * quant, true
}
