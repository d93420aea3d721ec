package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/fatih/color"

	"sleepcalc/internal/calc"
	"sleepcalc/internal/form"
	"sleepcalc/internal/theme"
)

var accents = map[string]color.Attribute{
	"purple": color.FgMagenta,
	"blue":   color.FgBlue,
	"green":  color.FgGreen,
	"pink":   color.FgHiMagenta,
	"orange": color.FgYellow,
}

func accentFor(name string) *color.Color {
	if a, ok := accents[name]; ok {
		return color.New(a)
	}
	return color.New(accents[theme.Default])
}

type jsonEntry struct {
	Time         string `json:"time"`
	Label        string `json:"label"`
	Cycles       int    `json:"cycles"`
	SleepMinutes int    `json:"sleep_minutes"`
	Recommended  bool   `json:"recommended"`
}

type jsonOutput struct {
	Mode       calc.Mode   `json:"mode"`
	Anchor     string      `json:"anchor"`
	Label      string      `json:"label"`
	FallAsleep int         `json:"fall_asleep"`
	Results    []jsonEntry `json:"results"`
}

func printCLI(out io.Writer, st form.State, entries []calc.Entry, themeName string) {
	accent := accentFor(themeName)
	bold := accentFor(themeName).Add(color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintf(out, "%s %s\n", st.ClockLabel()+":", bold.Sprint(st.Time))
	fmt.Fprintf(out, "Suggested %s (%dm to fall asleep):\n\n", st.Mode.ResultNoun(), st.FallAsleep)

	for _, e := range entries {
		marker := "  "
		label := dim.Sprint(e.Label)
		if e.Cycles == st.Preferred() {
			marker = accent.Sprint("* ")
			label = e.Label
		}
		fmt.Fprintf(out, "  %s%s  %s\n", marker, bold.Sprint(e.Time), label)
	}
	fmt.Fprintln(out)
}

func printJSON(out io.Writer, st form.State, entries []calc.Entry) error {
	res := jsonOutput{
		Mode:       st.Mode,
		Anchor:     st.Time.String(),
		Label:      st.ClockLabel(),
		FallAsleep: st.FallAsleep,
		Results:    make([]jsonEntry, 0, len(entries)),
	}
	for _, e := range entries {
		res.Results = append(res.Results, jsonEntry{
			Time:         e.Time.String(),
			Label:        e.Label,
			Cycles:       e.Cycles,
			SleepMinutes: e.SleepMinutes,
			Recommended:  e.Cycles == st.Preferred(),
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func printThemes(out io.Writer, current string) {
	for _, name := range theme.Names {
		if name == current {
			fmt.Fprintf(out, "* %s\n", accentFor(name).Add(color.Bold).Sprint(name))
			continue
		}
		fmt.Fprintf(out, "  %s\n", accentFor(name).Sprint(name))
	}
}

func printListenAddrs(out io.Writer, port int) {
	fmt.Fprintln(out, "Listening on:")
	fmt.Fprintf(out, "  http://127.0.0.1:%d/\n", port)

	ifaces, _ := net.Interfaces()
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, _ := iface.Addrs()
		for _, a := range addrs {
			ip, _, err := net.ParseCIDR(a.String())
			if err != nil || ip == nil || ip.IsLoopback() || ip.To4() == nil {
				continue
			}
			fmt.Fprintf(out, "  http://%s:%d/\n", ip.String(), port)
		}
	}
	fmt.Fprintln(out)
}
