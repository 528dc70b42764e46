package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/inkwell-labs/content-guard/backend/internal/config"
	"github.com/inkwell-labs/content-guard/backend/internal/gate"
	"github.com/inkwell-labs/content-guard/backend/internal/oracle"
	"github.com/inkwell-labs/content-guard/backend/internal/privacy"
	"github.com/inkwell-labs/content-guard/backend/internal/provider"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

func main() {
	godotenv.Load()

	fmt.Println(colorCyan + colorBold + `
╔═══════════════════════════════════════════════════════════╗
║          CONTENT GUARD - Interactive CLI                  ║
║          Paste content to check before publishing         ║
║          Type 'exit' or 'quit' to exit                    ║
╚═══════════════════════════════════════════════════════════╝` + colorReset)
	fmt.Println()

	cfg := config.Load()

	// Optional AI oracle
	var assessor privacy.Assessor
	if cfg.Oracle.Enabled {
		var p provider.Provider
		if cfg.Oracle.Type == "ollama" {
			p = provider.NewOllamaProvider(cfg.Oracle.BaseURL, cfg.Oracle.Timeout)
		} else {
			p = provider.NewOpenAIProvider(cfg.Oracle.BaseURL, cfg.Oracle.APIKey, cfg.Oracle.Timeout)
		}
		assessor = oracle.NewClient(p, cfg.Oracle.Model, nil)
	}

	engine := privacy.NewEngine(assessor, cfg.Privacy.FilterEnabled, nil)

	var gateEngine *gate.Engine
	if cfg.Gate.PolicyPath != "" {
		var err error
		gateEngine, err = gate.NewEngine(cfg.Gate.PolicyPath)
		if err != nil {
			fmt.Printf("%sError: Failed to load publish policies: %v%s\n", colorRed, err, colorReset)
			os.Exit(1)
		}
	}

	fmt.Printf("%s[✓] Components initialized%s\n", colorGreen, colorReset)
	fmt.Printf("    Oracle:  %v\n", cfg.Oracle.Enabled)
	if gateEngine != nil {
		fmt.Printf("    Policy:  %s (v%s)\n", cfg.Gate.PolicyPath, gateEngine.PolicyVersion())
	}
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	for {
		fmt.Printf("%s%s> %s", colorBold, colorBlue, colorReset)

		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if text == "exit" || text == "quit" {
			fmt.Println(colorCyan + "Goodbye!" + colorReset)
			break
		}

		res := engine.Analyze(context.Background(), text)
		printResult(res, gateEngine)
		fmt.Println()
	}
}

func printResult(res *privacy.Result, gateEngine *gate.Engine) {
	fmt.Println()

	// Risk banner
	switch res.RiskLevel {
	case privacy.RiskLow:
		fmt.Printf("%s%s  ✅ LOW RISK  %s\n", colorBold, colorGreen, colorReset)
	case privacy.RiskMedium:
		fmt.Printf("%s%s  ⚠️  MEDIUM RISK  %s\n", colorBold, colorYellow, colorReset)
	default:
		fmt.Printf("%s%s  🛑 HIGH RISK  %s\n", colorBold, colorRed, colorReset)
	}

	if res.Error != "" {
		fmt.Printf("%sAnalysis degraded:%s %s\n", colorRed, colorReset, res.Error)
	}
	fmt.Println()

	fmt.Printf("%s┌─ Findings ─────────────────────────────────────────%s\n", colorYellow, colorReset)
	if len(res.Findings) == 0 {
		fmt.Println("│ None")
	}
	for _, f := range res.Findings {
		fmt.Printf("│ %-18s %-8s %s%s%s\n", f.Category, f.Severity, colorRed, f.Value, colorReset)
	}
	fmt.Printf("%s└────────────────────────────────────────────────────%s\n", colorYellow, colorReset)

	if len(res.Suggestions) > 0 {
		fmt.Printf("%s┌─ Suggestions ──────────────────────────────────────%s\n", colorCyan, colorReset)
		for _, s := range res.Suggestions {
			fmt.Printf("│ %s\n", s)
		}
		fmt.Printf("%s└────────────────────────────────────────────────────%s\n", colorCyan, colorReset)
	}

	if res.FilteredText != res.OriginalText {
		fmt.Printf("%sFiltered:%s %s\n", colorBold, colorReset, res.FilteredText)
	}

	if gateEngine != nil {
		eval := gateEngine.Evaluate(res, true)
		if eval.Decision == gate.ALLOW {
			fmt.Printf("%sPublish gate:%s %s✅ %s%s (%s)\n", colorBold, colorReset, colorGreen, eval.Decision, colorReset, eval.Reason)
		} else {
			fmt.Printf("%sPublish gate:%s %s🛑 %s%s (%s)\n", colorBold, colorReset, colorRed, eval.Decision, colorReset, eval.Reason)
		}
		for _, o := range eval.Obligations {
			fmt.Printf("    Obligation: %s %v\n", o.Type, o.Fields)
		}
	}
}
