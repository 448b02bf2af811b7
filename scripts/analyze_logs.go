package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"
)

type LogStats struct {
	TotalErrors        int
	OrdersCreated      int
	PaymentsVerified   int
	SignatureMismatch  int
	PaymentsCancelled  int
	Registrations      int
	DuplicateAttempts  int
	GatewayFailures    int
	IdempotentReplays  int
	OrderActivity      map[string]int
	ErrorPatterns      map[string]int
}

func main() {
	today := time.Now().Format("2006-01-02")
	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "./logs"
	}

	stats := &LogStats{
		OrderActivity: make(map[string]int),
		ErrorPatterns: make(map[string]int),
	}

	analyzeErrorLogs(filepath.Join(logDir, fmt.Sprintf("error-%s.log", today)), stats)
	analyzeInfoLogs(filepath.Join(logDir, fmt.Sprintf("info-%s.log", today)), stats)

	printReport(stats)
}

func analyzeErrorLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		stats.TotalErrors++

		if strings.Contains(line, "Signature mismatch") {
			stats.SignatureMismatch++
			extractOrderActivity(line, stats)
		}

		if strings.Contains(line, "Failed to create Razorpay order") {
			stats.GatewayFailures++
		}

		if strings.Contains(line, "Duplicate registration") {
			stats.DuplicateAttempts++
			extractOrderActivity(line, stats)
		}

		extractErrorPattern(line, stats)
	}
}

func analyzeInfoLogs(logFile string, stats *LogStats) {
	file, err := os.Open(logFile)
	if err != nil {
		fmt.Printf("Error opening log file %s: %v\n", logFile, err)
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.Contains(line, "Created Razorpay order") {
			stats.OrdersCreated++
			extractOrderActivity(line, stats)
		}

		if strings.Contains(line, "Payment signature verified") {
			stats.PaymentsVerified++
			extractOrderActivity(line, stats)
		}

		if strings.Contains(line, "cancelled by payer") {
			stats.PaymentsCancelled++
		}

		if strings.Contains(line, "created for order") {
			stats.Registrations++
			extractOrderActivity(line, stats)
		}

		if strings.Contains(line, "Replaying cached order") {
			stats.IdempotentReplays++
		}
	}
}

var orderIDPattern = regexp.MustCompile(`order_[A-Za-z0-9]+`)

func extractOrderActivity(line string, stats *LogStats) {
	if match := orderIDPattern.FindString(line); match != "" {
		stats.OrderActivity[match]++
	}
}

func extractErrorPattern(line string, stats *LogStats) {
	// Strip the timestamp and file:line prefix so identical errors group together.
	parts := strings.SplitN(line, ": ", 2)
	if len(parts) < 2 {
		return
	}
	msg := parts[1]
	if idx := strings.Index(msg, " for "); idx > 0 {
		msg = msg[:idx]
	}
	stats.ErrorPatterns[msg]++
}

func printReport(stats *LogStats) {
	fmt.Println("=== Payment Log Analysis ===")
	fmt.Printf("Orders created:        %d\n", stats.OrdersCreated)
	fmt.Printf("Payments verified:     %d\n", stats.PaymentsVerified)
	fmt.Printf("Signature mismatches:  %d\n", stats.SignatureMismatch)
	fmt.Printf("Payments cancelled:    %d\n", stats.PaymentsCancelled)
	fmt.Printf("Registrations saved:   %d\n", stats.Registrations)
	fmt.Printf("Duplicate attempts:    %d\n", stats.DuplicateAttempts)
	fmt.Printf("Idempotent replays:    %d\n", stats.IdempotentReplays)
	fmt.Printf("Gateway failures:      %d\n", stats.GatewayFailures)
	fmt.Printf("Total error lines:     %d\n", stats.TotalErrors)

	if stats.OrdersCreated > 0 {
		rate := float64(stats.PaymentsVerified) / float64(stats.OrdersCreated) * 100
		fmt.Printf("Conversion rate:       %.1f%%\n", rate)
	}

	if len(stats.OrderActivity) > 0 {
		fmt.Println("\nMost active orders:")
		type orderCount struct {
			id    string
			count int
		}
		var orders []orderCount
		for id, count := range stats.OrderActivity {
			orders = append(orders, orderCount{id, count})
		}
		sort.Slice(orders, func(i, j int) bool { return orders[i].count > orders[j].count })
		for i, oc := range orders {
			if i >= 10 {
				break
			}
			fmt.Printf("  %s: %d events\n", oc.id, oc.count)
		}
	}

	if len(stats.ErrorPatterns) > 0 {
		fmt.Println("\nError patterns:")
		type patternCount struct {
			pattern string
			count   int
		}
		var patterns []patternCount
		for p, count := range stats.ErrorPatterns {
			patterns = append(patterns, patternCount{p, count})
		}
		sort.Slice(patterns, func(i, j int) bool { return patterns[i].count > patterns[j].count })
		for i, pc := range patterns {
			if i >= 10 {
				break
			}
			fmt.Printf("  [%d] %s\n", pc.count, pc.pattern)
		}
	}
}
