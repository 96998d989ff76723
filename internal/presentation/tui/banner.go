package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the IPRescue ASCII banner with the running version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Teal-to-blue gradient
	s1 := termenv.String(`  ___ ____  ____                           `).Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(` |_ _|  _ \|  _ \ ___  ___  ___ _   _  ___ `).Foreground(p.Color("#22d3ee"))
	s3 := termenv.String(`  | || |_) | |_) / _ \/ __|/ __| | | |/ _ \`).Foreground(p.Color("#38bdf8"))
	s4 := termenv.String(`  | ||  __/|  _ <  __/\__ \ (__| |_| |  __/`).Foreground(p.Color("#60a5fa"))
	s5 := termenv.String(` |___|_|   |_| \_\___||___/\___|\__,_|\___|`).Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(termenv.String(fmt.Sprintf("  deformer rescue toolkit v%s", version)).Faint())
	fmt.Println()
}

// PlanStep renders one painting command for the plan preview: a colored
// command type followed by its payload.
func PlanStep(index int, commandType, payload string) string {
	p := termenv.ColorProfile()
	num := termenv.String(fmt.Sprintf("%2d.", index)).Faint()
	typ := termenv.String(fmt.Sprintf("%-14s", commandType)).Foreground(p.Color("#38bdf8")).Bold()
	return fmt.Sprintf("%s %s %s", num, typ, payload)
}
