// ABOUTME: Known model catalog and RAM-based model recommendation
// ABOUTME: Reads total memory from /proc/meminfo with a conservative fallback
package llm

import (
	"bufio"
	"os"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

// ModelInfo describes one supported model.
type ModelInfo struct {
	Name        string `json:"name"`
	Size        string `json:"size"`
	RAMRequired int    `json:"ram_required"`
	Description string `json:"description"`
	Provider    string `json:"provider"`
}

// safeDefaultModel runs on almost anything.
const safeDefaultModel = "llama3.2:1b"

var modelCatalog = map[string]ModelInfo{
	"llama3.2:1b": {
		Name:        "llama3.2:1b",
		Size:        "1.3GB",
		RAMRequired: 2,
		Description: "Compact model for low-resource systems",
		Provider:    "Meta",
	},
	"llama3.2:3b": {
		Name:        "llama3.2:3b",
		Size:        "2.0GB",
		RAMRequired: 4,
		Description: "Balanced model for most systems",
		Provider:    "Meta",
	},
	"llama3.2:8b": {
		Name:        "llama3.2:8b",
		Size:        "4.9GB",
		RAMRequired: 8,
		Description: "Advanced model for complex tasks",
		Provider:    "Meta",
	},
	"deepseek-r1:1.5b": {
		Name:        "deepseek-r1:1.5b",
		Size:        "0.9GB",
		RAMRequired: 2,
		Description: "Fast reasoning model, excellent for coding and math",
		Provider:    "DeepSeek",
	},
	"deepseek-r1:7b": {
		Name:        "deepseek-r1:7b",
		Size:        "4.1GB",
		RAMRequired: 6,
		Description: "Advanced reasoning model with superior logic",
		Provider:    "DeepSeek",
	},
	"deepseek-r1:14b": {
		Name:        "deepseek-r1:14b",
		Size:        "8.2GB",
		RAMRequired: 12,
		Description: "Top-tier reasoning model for complex problems",
		Provider:    "DeepSeek",
	},
	"deepseek-r1:32b": {
		Name:        "deepseek-r1:32b",
		Size:        "18.9GB",
		RAMRequired: 20,
		Description: "Elite reasoning model for advanced research",
		Provider:    "DeepSeek",
	},
}

// Catalog returns the known models sorted by name.
func Catalog() []ModelInfo {
	models := make([]ModelInfo, 0, len(modelCatalog))
	for _, m := range modelCatalog {
		models = append(models, m)
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models
}

// LookupModel returns catalog info for a model name.
func LookupModel(name string) (ModelInfo, bool) {
	m, ok := modelCatalog[name]
	return m, ok
}

// RecommendedModel picks a default model for this machine's RAM. Unknown or
// small machines get the compact model.
func RecommendedModel() string {
	return recommendForRAM(totalRAMGB())
}

func recommendForRAM(ramGB float64) string {
	if ramGB >= 8 {
		return "llama3.2:3b"
	}
	return safeDefaultModel
}

// SystemInfo summarizes the host for model recommendations.
type SystemInfo struct {
	TotalRAMGB       float64 `json:"total_ram_gb"`
	CPUCount         int     `json:"cpu_count"`
	Platform         string  `json:"platform"`
	RecommendedModel string  `json:"recommended_model"`
	CanRun3B         bool    `json:"can_run_3b"`
	CanRun1B         bool    `json:"can_run_1b"`
}

// HostInfo reports the host's capacity and the resulting recommendation.
func HostInfo() SystemInfo {
	ram := totalRAMGB()
	return SystemInfo{
		TotalRAMGB:       ram,
		CPUCount:         runtime.NumCPU(),
		Platform:         runtime.GOOS,
		RecommendedModel: recommendForRAM(ram),
		CanRun3B:         ram >= 8,
		CanRun1B:         ram >= 2,
	}
}

// totalRAMGB reads MemTotal from /proc/meminfo. Returns 0 when unreadable
// (non-Linux hosts), which keeps the recommendation at the safe default.
func totalRAMGB() float64 {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return 0
		}
		return kb / (1024 * 1024)
	}
	return 0
}
