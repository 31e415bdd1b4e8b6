// bgmcts - a Monte Carlo tree search backgammon agent
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/arowdev/bgmcts/internal/dataset"
	"github.com/arowdev/bgmcts/pkg/engine"
	"github.com/arowdev/bgmcts/pkg/search"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "move":
		cmdMove(args)
	case "selfplay":
		cmdSelfplay(args)
	case "dataset":
		cmdDataset(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`bgmcts - Monte Carlo tree search backgammon agent

Usage: bgmcts <command> [options]

Commands:
  move      Roll the opening dice and choose the best move from the resulting position
  selfplay  Play a full game against itself and report the result
  dataset   Sample self-play positions and emit a training CSV

Use "bgmcts <command> -h" for command-specific help.`)
}

func parseDice(diceStr string) (int, int, error) {
	parts := strings.Split(diceStr, ",")
	if len(parts) != 2 {
		parts = strings.Split(diceStr, "-")
	}
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("dice should be in format '3,1' or '3-1'")
	}

	d1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	d2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || d1 < 1 || d1 > 6 || d2 < 1 || d2 > 6 {
		return 0, 0, fmt.Errorf("dice values must be 1-6")
	}
	return d1, d2, nil
}

func formatMove(side engine.Side, m engine.Move) string {
	if m.IsPass() {
		return "(no legal move)"
	}
	parts := make([]string, 0, m.NumSteps())
	for i := 0; i < m.NumSteps(); i++ {
		parts = append(parts, fmt.Sprintf("%s/%s", pointName(side, int(m.From[i])), pointName(side, int(m.To[i]))))
	}
	return strings.Join(parts, " ")
}

func pointName(side engine.Side, pt int) string {
	switch pt {
	case 24, -1:
		if (side == engine.White && pt == 24) || (side == engine.Black && pt == -1) {
			return "bar"
		}
		return "off"
	default:
		return strconv.Itoa(pt + 1)
	}
}

func searchOptionsFromFlags(rollouts int, budget time.Duration, seed int64) search.Options {
	opts := search.DefaultOptions()
	opts.MaxRollouts = rollouts
	opts.TimeBudget = budget
	opts.Seed = seed
	return opts
}

func cmdMove(args []string) {
	fs := flag.NewFlagSet("move", flag.ExitOnError)
	dice := fs.String("dice", "", "Opening dice roll, e.g. 5,2")
	rollouts := fs.Int("rollouts", 2000, "Maximum number of MCTS rollouts")
	budget := fs.Duration("time", 0, "Wall-clock search budget (0 = unbounded)")
	seed := fs.Int64("seed", 0, "Random seed (0 = time-based)")
	fs.Parse(args)

	if *dice == "" {
		fmt.Fprintln(os.Stderr, "Error: -dice is required")
		fmt.Fprintln(os.Stderr, "Usage: bgmcts move -dice <roll>")
		os.Exit(1)
	}

	d1, d2, err := parseDice(*dice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	pos := engine.NewPosition()
	pos.Apply(engine.Move{Kind: engine.DiceRoll, I: int8(d1), J: int8(d2)})

	opts := searchOptionsFromFlags(*rollouts, *budget, *seed)
	move, value := search.ChooseMove(pos, opts)

	fmt.Printf("%s to move with %d-%d:\n", pos.Turn(), d1, d2)
	fmt.Printf("  %s  (estimated WHITE win prob: %.3f)\n", formatMove(pos.Turn(), move), value)
}

func cmdSelfplay(args []string) {
	fs := flag.NewFlagSet("selfplay", flag.ExitOnError)
	rollouts := fs.Int("rollouts", 500, "Maximum number of MCTS rollouts per move")
	seed := fs.Int64("seed", 0, "Random seed (0 = time-based)")
	maxTurns := fs.Int("max-turns", 500, "Safety cap on the number of checker turns played")
	fs.Parse(args)

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(baseSeed))

	pos := engine.NewPosition()
	turns := 0
	for !pos.GameEnded() && turns < *maxTurns {
		if pos.IsNatureTurn() {
			rolls := pos.LegalMoves()
			pos.Apply(rolls[rng.Intn(len(rolls))])
			continue
		}

		opts := searchOptionsFromFlags(*rollouts, 0, rng.Int63())
		move, _ := search.ChooseMove(pos, opts)
		pos.Apply(move)
		turns++
	}

	if !pos.GameEnded() {
		fmt.Printf("Stopped after %d turns without a result (max-turns reached)\n", turns)
		return
	}
	fmt.Printf("%s wins after %d checker turns\n", pos.Winner(), turns)
}

func cmdDataset(args []string) {
	fs := flag.NewFlagSet("dataset", flag.ExitOnError)
	games := fs.Int("games", 10, "Number of self-play games to sample from")
	perGame := fs.Int("positions-per-game", 1, "Number of positions sampled per game")
	rollouts := fs.Int("rollouts", 500, "MCTS rollouts used to label each sampled position")
	out := fs.String("out", "train.csv", "Output CSV path")
	seed := fs.Int64("seed", 0, "Random seed (0 = time-based)")
	fs.Parse(args)

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(baseSeed))

	var samples []dataset.Sample
	for g := 0; g < *games; g++ {
		fmt.Printf("%d/%d\n", g+1, *games)

		var visited []*engine.Position
		pos := engine.NewPosition()
		for !pos.GameEnded() {
			visited = append(visited, pos.Clone())
			moves := pos.LegalMoves()
			pos.Apply(moves[rng.Intn(len(moves))])
		}

		for i := 0; i < *perGame && len(visited) > 0; i++ {
			sample := visited[rng.Intn(len(visited))]
			if sample.IsNatureTurn() {
				continue
			}
			opts := searchOptionsFromFlags(*rollouts, 0, rng.Int63())
			_, value := search.ChooseMove(sample, opts)
			samples = append(samples, dataset.SampleFromPosition(sample, value))
		}
	}

	if err := dataset.WriteCSV(*out, samples); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d samples to %s\n", len(samples), *out)
}
