package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/steinway/internal/analysis"
	"github.com/san-kum/steinway/internal/audio"
	"github.com/san-kum/steinway/internal/config"
	"github.com/san-kum/steinway/internal/life"
	"github.com/san-kum/steinway/internal/patterns"
	"github.com/san-kum/steinway/internal/performance"
	"github.com/san-kum/steinway/internal/storage"
	"github.com/san-kum/steinway/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	boardType  string
	height     int
	gens       int
	stepDelay  int
	tempo      float64
	silent     bool
	seed       int64
	aliveProb  float64
	volume     float64
	showBoard  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "steinway",
		Short: "conway's game of life as a player piano",
		Long: "steinway scrolls a Game of Life board downward and plays the\n" +
			"bottom row's live cells as piano keys, one tick per beat.",
		RunE: runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".steinway", "data directory")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "run a performance",
		RunE:  runPlay,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a performance with a live terminal view",
		RunE:  runLive,
	}

	for _, cmd := range []*cobra.Command{rootCmd, playCmd, liveCmd} {
		cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
		cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
		cmd.Flags().StringVarP(&boardType, "board-type", "b", config.DefaultBoardType, "board type (random|static|fur_elise)")
		cmd.Flags().IntVar(&height, "height", config.DefaultBoardHeight, "board height in rows")
		cmd.Flags().IntVarP(&gens, "generations", "g", 0, "ticks to play (0 for unlimited)")
		cmd.Flags().IntVarP(&stepDelay, "step-delay", "d", config.DefaultStepDelayMS, "delay between ticks in milliseconds")
		cmd.Flags().Float64VarP(&tempo, "tempo", "t", 0, "tempo in BPM (overrides step delay)")
		cmd.Flags().BoolVarP(&silent, "silent", "s", false, "disable audio output")
		cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for random boards")
		cmd.Flags().Float64Var(&aliveProb, "alive-prob", config.DefaultAliveProbability, "alive probability for random boards")
		cmd.Flags().Float64Var(&volume, "volume", config.DefaultVolume, "master volume [0,1]")
	}
	playCmd.Flags().BoolVar(&showBoard, "show-board", false, "print the board after every tick")
	rootCmd.Flags().BoolVar(&showBoard, "show-board", false, "print the board after every tick")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "analyze a run's key activity",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run ticks to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list available preset shapes",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCELLS")
			for _, name := range patterns.Names() {
				fmt.Fprintf(w, "%s\t%d\n", name, patterns.Size(name))
			}
			w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s board=%s height=%d gens=%d tempo=%.0f\n",
					name, p.BoardType, p.BoardHeight, p.Generations, p.TempoBPM)
			}
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		RunE:  benchTicks,
	}

	rootCmd.AddCommand(playCmd, liveCmd, listCmd, showCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, patternsCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers configuration sources: defaults, environment,
// preset, config file, then explicit CLI flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.ApplyEnv()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("board-type") {
		cfg.BoardType = boardType
	}
	if cmd.Flags().Changed("height") {
		cfg.BoardHeight = height
	}
	if cmd.Flags().Changed("generations") {
		cfg.Generations = gens
	}
	if cmd.Flags().Changed("step-delay") {
		cfg.StepDelayMS = stepDelay
	}
	if cmd.Flags().Changed("tempo") {
		cfg.TempoBPM = tempo
	}
	if cmd.Flags().Changed("silent") {
		cfg.Silent = silent
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("alive-prob") {
		cfg.AliveProbability = aliveProb
	}
	if cmd.Flags().Changed("volume") {
		cfg.Volume = volume
	}
	if cfg.Seed == 0 {
		cfg.Seed = seed
	}

	// Für Elise is a fixed-length piece: it always runs 80 ticks, at its
	// own tempo unless one was chosen explicitly.
	if cfg.BoardType == "fur_elise" {
		if cfg.Generations != 80 {
			fmt.Println("fur_elise always plays 80 generations")
			cfg.Generations = 80
		}
		if cfg.TempoBPM == 0 {
			cfg.TempoBPM = 126
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildBoard(cfg *config.Config) (*life.Board, error) {
	switch cfg.BoardType {
	case "static", "complex":
		return patterns.ComplexBoard(), nil
	case "showcase":
		return patterns.ShowcaseBoard(), nil
	case "fur_elise":
		return patterns.FurEliseBoard(), nil
	default:
		return life.NewRandom(cfg.BoardHeight, cfg.AliveProbability, cfg.Seed)
	}
}

func buildPlayer(cfg *config.Config) audio.Player {
	if cfg.Silent {
		return audio.NullPlayer{}
	}
	engine, err := audio.NewEngine(cfg.Volume)
	if err != nil {
		fmt.Printf("audio unavailable, continuing silent: %v\n", err)
		return audio.NullPlayer{}
	}
	return engine
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	board, err := buildBoard(cfg)
	if err != nil {
		return err
	}

	player := buildPlayer(cfg)
	defer player.Close()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	perf := performance.New(board, player)
	if showBoard {
		perf.AddObserver(boardPrinter{board})
	}

	if cfg.Generations > 0 {
		fmt.Printf("playing %s board for %d ticks\n", cfg.BoardType, cfg.Generations)
	} else {
		fmt.Printf("playing %s board until interrupted (ctrl+c to stop)\n", cfg.BoardType)
	}

	start := time.Now()
	result, err := perf.RunWith(ctx, performance.Config{
		Steps: cfg.Generations,
		Delay: cfg.EffectiveDelay(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	runID, saveErr := st.Save(cfg.BoardType, cfg.BoardHeight, cfg.Seed, cfg.TempoBPM, cfg.StepDelayMS, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("\nperformance finished in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(result.Ticks))
	fmt.Printf("notes played: %d\n", result.TotalKeys())
	fmt.Printf("largest chord: %d\n", result.MaxChord())
	fmt.Printf("final generation: %d\n", result.FinalGeneration)
	return nil
}

type boardPrinter struct {
	board *life.Board
}

func (p boardPrinter) OnTick(tick int, keys []int) {
	fmt.Printf("\ntick %d, keys %v\n%s\n", tick, keys, p.board)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	board, err := buildBoard(cfg)
	if err != nil {
		return err
	}

	player := buildPlayer(cfg)
	defer player.Close()

	m := viz.NewModel(board, player, cfg.EffectiveDelay(), cfg.Generations)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOARD\tTIME\tTICKS\tNOTES\tTEMPO")
	for _, run := range runs {
		tempoStr := "-"
		if run.TempoBPM > 0 {
			tempoStr = fmt.Sprintf("%.0f", run.TempoBPM)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.BoardType,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.TotalKeys,
			tempoStr,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("board: %s (height %d)\n", meta.BoardType, meta.BoardHeight)
	fmt.Printf("played: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("ticks: %d\n", meta.Ticks)
	fmt.Printf("notes: %d\n", meta.TotalKeys)
	fmt.Printf("largest chord: %d\n", meta.MaxChord)
	fmt.Printf("final generation: %d\n", meta.FinalGeneration)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	ticks, err := st.LoadTicks(args[0])
	if err != nil {
		return err
	}
	if len(ticks) == 0 {
		return fmt.Errorf("no ticks to analyze")
	}

	fmt.Printf("analysis: %s (%s board, %d ticks)\n\n", meta.ID, meta.BoardType, len(ticks))

	counts := make([]float64, len(ticks))
	for i, keys := range ticks {
		counts[i] = float64(len(keys))
	}

	graph := asciigraph.Plot(counts,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("notes per tick"),
	)
	fmt.Println(graph)
	fmt.Println()

	hist := analysis.KeyHistogram(ticks)
	graph = asciigraph.Plot(hist,
		asciigraph.Height(8),
		asciigraph.Width(88),
		asciigraph.Caption("strikes per key (A0 left, C8 right)"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("density: %.2f notes/tick\n", analysis.Density(ticks))
	fmt.Printf("range: %s\n", rangeLabel(ticks))
	fmt.Printf("spread: %.2f\n", analysis.Flatness(hist))
	if period := analysis.DominantPeriod(counts); period > 0 {
		fmt.Printf("dominant period: %.1f ticks\n", period)
	}
	return nil
}

// rangeLabel describes the span of keys that sounded. A run with no notes
// at all has no range to report.
func rangeLabel(ticks [][]int) string {
	if analysis.Density(ticks) == 0 {
		return "no notes"
	}
	low, high := analysis.ActiveRange(ticks)
	return fmt.Sprintf("%s to %s", audio.KeyNoteName(low), audio.KeyNoteName(high))
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ticks, err := st.LoadTicks(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"tick", "num_keys", "keys"}); err != nil {
		return err
	}
	for i, keys := range ticks {
		keyStrs := make([]string, len(keys))
		for j, k := range keys {
			keyStrs[j] = strconv.Itoa(k)
		}
		row := []string{strconv.Itoa(i), strconv.Itoa(len(keys)), strings.Join(keyStrs, " ")}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	ticks, err := st.LoadTicks(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, ticks)
}

func benchTicks(cmd *cobra.Command, args []string) error {
	heights := []int{20, 40, 80, 160}
	const steps = 2000

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "HEIGHT\tTICKS\tTIME\tTICKS/SEC")

	for _, h := range heights {
		board, err := life.NewRandom(h, 0.25, 42)
		if err != nil {
			return err
		}
		perf := performance.New(board, audio.NullPlayer{})

		start := time.Now()
		result, err := perf.RunWith(context.Background(), performance.Config{Steps: steps})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
			h, len(result.Ticks), elapsed.Round(time.Millisecond),
			float64(steps)/elapsed.Seconds())
	}
	return w.Flush()
}
