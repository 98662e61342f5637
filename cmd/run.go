package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kulugbekwork/lema/internal/app"
	"github.com/kulugbekwork/lema/internal/coursegen"
	"github.com/kulugbekwork/lema/internal/lessongen"
	"github.com/kulugbekwork/lema/internal/llm"
	"github.com/kulugbekwork/lema/internal/logger"
	"github.com/kulugbekwork/lema/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	dsn, err := resolveDSN(cmd)
	if err != nil {
		return fmt.Errorf("resolve data source: %w", err)
	}

	// Bubble Tea owns the terminal; logs must stay off stdout.
	log := logger.Nop()

	st, err := store.Open(dsn, log)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cfg := llm.ConfigFromEnv()
	if cfg.Validate() != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			fmt.Fprintln(os.Stderr, "No LLM provider configured.")
			fmt.Fprintln(os.Stderr, "Set LEMA_LLM_PROVIDER and the matching LEMA_*_API_KEY, or export one of GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY.")
			return fmt.Errorf("llm provider not configured")
		}
		cfg = discovered
	}

	provider, err := llm.NewProvider(ctx, cfg, st.AICalls())
	if err != nil {
		return fmt.Errorf("build llm provider: %w", err)
	}

	courseSvc := coursegen.NewService(provider, st.Profiles(), st.Courses(), coursegen.DefaultConfig(), log)
	lessonSvc := lessongen.NewService(provider, st.Lessons(), lessongen.DefaultConfig(), log)

	return app.Run(st, courseSvc, lessonSvc)
}
