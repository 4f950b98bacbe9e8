// cmd/tools/intake/main.go

// Terminal intake client. Walks the questionnaire, caches the draft in Redis
// so an interrupted run can resume, then submits the answers to the analyze
// endpoint and prints the streamed report.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"minus-backend/internal/calculator"
	"minus-backend/internal/common/config"
	"minus-backend/internal/common/database"
	"minus-backend/internal/common/logger"
	"minus-backend/internal/consumer"
	"minus-backend/internal/questionnaire"
	"minus-backend/internal/session"
)

func main() {
	endpoint := flag.String("server", "", "analyze endpoint URL (default derived from config)")
	resume := flag.String("resume", "", "session key to resume a saved draft (usually the phone number)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New("warn", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	if *endpoint == "" {
		*endpoint = fmt.Sprintf("http://%s/api/analyze", cfg.Server.Addr())
	}

	// The draft cache is a convenience. Run without it if Redis is down.
	var store session.Store = session.NoopStore{}
	if rdb, err := database.NewRedisClient(cfg.Database.Redis); err != nil {
		zapLog.Warn("redis unavailable, drafts will not be saved", zap.Error(err))
	} else {
		defer rdb.Close()
		store = session.NewRedisStore(rdb.Client, cfg.Session.KeyPrefix, config.GetDuration(cfg.Session.TTL), log)
	}

	ctx := context.Background()

	wizard := questionnaire.NewWizard()
	if *resume != "" {
		if answers, ok := store.Load(ctx, *resume); ok {
			wizard = questionnaire.NewWizardFrom(answers)
			fmt.Printf("Resumed draft with %d answers.\n\n", len(answers))
		} else {
			fmt.Println("No saved draft found, starting fresh.")
		}
	}

	in := bufio.NewScanner(os.Stdin)
	if err := collect(wizard, store, in); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cons := consumer.New(*endpoint, cfg.Report, store, log)

	done := make(chan struct{})
	go showProgress(cons, config.GetDuration(cfg.Report.StatusInterval), done)

	err = cons.Submit(ctx, wizard.Answers())
	close(done)

	if err != nil {
		fmt.Fprintf(os.Stderr, "\nAnalysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n" + cons.Report())
}

// collect runs the question loop until the derived sequence is exhausted.
func collect(wizard *questionnaire.Wizard, store session.Store, in *bufio.Scanner) error {
	for {
		q, ok := wizard.Current()
		if !ok {
			return nil
		}

		printQuestion(wizard, q)
		if !in.Scan() {
			return fmt.Errorf("input closed before the questionnaire finished")
		}
		value := strings.TrimSpace(in.Text())

		switch value {
		case "back":
			wizard.Back()
			continue
		case "quit":
			return fmt.Errorf("aborted")
		}

		if q.Kind == questionnaire.KindNumber {
			value = evaluateIfExpression(value)
		}

		// The savings gate captures the balance on the same step.
		if q.ID == "savings_check" && value == "Yes" {
			fmt.Print("  Current savings balance (INR): ")
			if !in.Scan() {
				return fmt.Errorf("input closed before the questionnaire finished")
			}
			wizard.SetInline("savingsAmount", evaluateIfExpression(strings.TrimSpace(in.Text())))
		}

		if err := wizard.Answer(value); err != nil {
			fmt.Printf("  %v\n\n", err)
			continue
		}

		store.Save(context.Background(), draftKey(wizard), wizard.Answers())
	}
}

func printQuestion(wizard *questionnaire.Wizard, q questionnaire.Question) {
	step, total := wizard.Progress()
	fmt.Printf("[%d/%d] %s\n", step+1, total, q.Prompt)
	if q.Subtext != "" {
		fmt.Printf("      %s\n", q.Subtext)
	}
	if len(q.Options) > 0 {
		fmt.Printf("      (%s)\n", strings.Join(q.Options, " / "))
	}
	fmt.Print("> ")
}

// evaluateIfExpression lets numeric answers be typed as keypad arithmetic,
// e.g. "500000*8.5%/12" for an EMI.
func evaluateIfExpression(value string) string {
	if !strings.ContainsAny(value, "+-*/%×÷") {
		return value
	}
	result, err := calculator.Evaluate(value)
	if err != nil {
		return value
	}
	return strconv.FormatFloat(result, 'f', -1, 64)
}

func draftKey(wizard *questionnaire.Wizard) string {
	if phone := wizard.Answers().Get("phone"); phone != "" {
		return phone
	}
	return "draft"
}

// showProgress prints the rotating status line while the submission runs.
func showProgress(cons *consumer.Consumer, interval time.Duration, done <-chan struct{}) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if phrase := cons.StatusPhrase(); phrase != "" {
				fmt.Printf("\r%s", phrase)
			}
		}
	}
}
