package summary

import (
	"fmt"
	"sort"
	"strings"
)

// PlotChainDisparityTerminal renders per-chain alignment disparities as a
// horizontal bar chart on the terminal, ascending by disparity.
func PlotChainDisparityTerminal(chainIDs []int, disparities []float64, title string) {
	if len(chainIDs) == 0 || len(chainIDs) != len(disparities) {
		return
	}

	type chainDisparity struct {
		ChainID   int
		Disparity float64
	}

	entries := make([]chainDisparity, len(chainIDs))
	for i := range chainIDs {
		entries[i] = chainDisparity{
			ChainID:   chainIDs[i],
			Disparity: disparities[i],
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Disparity < entries[j].Disparity
	})

	minDisp := entries[0].Disparity
	maxDisp := entries[len(entries)-1].Disparity

	fmt.Printf("\n%s (Terminal Plot - Ascending Order):\n", title)
	fmt.Println("Chain ID | Disparity | Bar Chart")
	fmt.Println("---------|-----------|" + strings.Repeat("-", 50))

	maxBarWidth := 50
	for _, e := range entries {
		var barWidth int
		if maxDisp != minDisp {
			barWidth = int((e.Disparity - minDisp) / (maxDisp - minDisp) * float64(maxBarWidth))
		} else {
			barWidth = maxBarWidth / 2
		}

		bar := strings.Repeat("█", barWidth)
		if barWidth == 0 {
			bar = "▏"
		}

		fmt.Printf("%8d | %.6f | %s (%.4f)\n", e.ChainID, e.Disparity, bar, e.Disparity)
	}

	fmt.Printf("\nScale: Min=%.6f, Max=%.6f\n", minDisp, maxDisp)
}
