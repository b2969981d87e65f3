package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"fjspga/internal/fjs"
	"fjspga/internal/fjsp"
	"fjspga/internal/logging"
)

func main() {
	// Parse flags
	championPath := flag.String("champion", "artifacts/champion.json", "path to champion JSON")
	instancePath := flag.String("instance", "", "path to .fjs instance (defaults to the one recorded in the champion)")
	width := flag.Int("width", 60, "chart width in columns")
	noDisplay := flag.Bool("no-display", false, "print the placement table only")
	flag.Parse()

	// Load champion
	champion, err := logging.LoadChampion(*championPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading champion: %v\n", err)
		os.Exit(1)
	}
	if *instancePath == "" {
		*instancePath = champion.Instance
	}
	if *instancePath == "" {
		fmt.Fprintln(os.Stderr, "Error: champion has no instance path, pass -instance")
		os.Exit(1)
	}

	inst, err := fjs.Load(*instancePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading instance: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded champion from run %s gen %d (makespan=%d)\n",
		champion.RunID, champion.Generation, champion.Makespan)
	fmt.Printf("Instance: %s\n", *instancePath)
	fmt.Println()

	// Replay the decoder
	sched, err := fjsp.Decode(inst, champion.Chromosome.OS, champion.Chromosome.MS)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding champion: %v\n", err)
		os.Exit(1)
	}

	rows := sched.Gantt()
	printTable(rows)
	if !*noDisplay {
		fmt.Println()
		NewDisplay(*width).Render(rows, sched.Makespan())
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════")
	fmt.Printf("  Makespan: %d\n", sched.Makespan())
	if sched.Makespan() != champion.Makespan {
		fmt.Printf("  Warning: saved makespan was %d\n", champion.Makespan)
	}
	fmt.Println("═══════════════════════════════════")
}

func printTable(rows []fjsp.GanttRow) {
	for _, row := range rows {
		fmt.Printf("%s:", row.Machine)
		for _, b := range row.Bars {
			fmt.Printf(" (%d,%d,%s)", b.Start, b.End, b.Label)
		}
		fmt.Println()
	}
}

// Display handles terminal rendering
type Display struct {
	width int
}

// NewDisplay creates a new display
func NewDisplay(width int) *Display {
	if width < 10 {
		width = 10
	}
	return &Display{width: width}
}

// Render draws one bar line per machine scaled to the makespan
func (d *Display) Render(rows []fjsp.GanttRow, makespan int) {
	if makespan <= 0 {
		return
	}

	labelWidth := 0
	for _, row := range rows {
		labelWidth = max(labelWidth, len(row.Machine))
	}

	fmt.Printf("%*s ┌%s┐\n", labelWidth, "", strings.Repeat("─", d.width))
	for _, row := range rows {
		line := []rune(strings.Repeat(" ", d.width))
		for i, b := range row.Bars {
			from, to := d.column(b.Start, makespan), d.column(b.End, makespan)
			if to == from {
				to = from + 1
			}
			// alternate fill so adjacent bars stay distinguishable
			fill := '█'
			if i%2 == 1 {
				fill = '▒'
			}
			for x := from; x < to && x < d.width; x++ {
				line[x] = fill
			}
		}
		fmt.Printf("%*s │%s│\n", labelWidth, row.Machine, string(line))
	}
	fmt.Printf("%*s └%s┘\n", labelWidth, "", strings.Repeat("─", d.width))
	fmt.Printf("%*s  0%*d\n", labelWidth, "", d.width-1, makespan)
}

func (d *Display) column(t, makespan int) int {
	return t * d.width / makespan
}
