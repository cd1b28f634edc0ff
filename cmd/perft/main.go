package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/benbeisheim/legalmoves-backend/internal/model"
)

func main() {
	fen := flag.String("fen", model.StartingFEN, "position to search")
	depth := flag.Int("depth", 4, "search depth in plies")
	divide := flag.Bool("divide", false, "print the node count below each root move")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := model.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid FEN: %v\n", err)
		os.Exit(2)
	}

	start := time.Now()
	var nodes uint64
	if *divide {
		counts := model.PerftDivide(pos, *depth)
		moves := make([]string, 0, len(counts))
		for m := range counts {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, counts[m])
			nodes += counts[m]
		}
		fmt.Println()
	} else {
		nodes = model.Perft(pos, *depth)
	}
	elapsed := time.Since(start)

	fmt.Printf("depth %d: %d nodes in %v", *depth, nodes, elapsed.Round(time.Millisecond))
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Printf(" (%.0f nps)", float64(nodes)/secs)
	}
	fmt.Println()
}
