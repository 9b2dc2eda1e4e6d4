package config

import (
	"fmt"
	"strings"
)

const (
	DefaultThreshold = 0.85
	MinThreshold     = 0.7
	MaxThreshold     = 1.0
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills defaults, tidies list fields and returns a
// normalized copy plus structured errors/warnings for the API to surface.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.KeywordsAny = trimList(out.Filters.KeywordsAny)
	out.Scrape.WorkModes = trimList(out.Scrape.WorkModes)

	if out.Scrape.Location == "" {
		out.Scrape.Location = "India"
	}
	if len(out.Scrape.WorkModes) == 0 {
		out.Scrape.WorkModes = []string{"remote"}
	}
	if out.Dedup.Threshold == 0 {
		out.Dedup.Threshold = DefaultThreshold
	}
	if out.Scrape.IntervalMinutes == 0 {
		out.Scrape.IntervalMinutes = 30
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Dedup.Threshold < MinThreshold || out.Dedup.Threshold > MaxThreshold {
		res.addErr("dedup.threshold must be %.1f..%.1f (got %.2f)",
			MinThreshold, MaxThreshold, out.Dedup.Threshold)
	}

	if out.Scrape.IntervalMinutes < 0 {
		res.addErr("scrape.interval_minutes must be > 0")
	} else if out.Scrape.AutoRefresh && out.Scrape.IntervalMinutes < 10 {
		res.addWarn("scrape.interval_minutes is very low (%d); deep scraping a cycle takes minutes.",
			out.Scrape.IntervalMinutes)
	}

	seenSource := map[string]bool{}
	anyEnabled := false
	for i, s := range out.Sources {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		out.Sources[i].Name = name
		switch name {
		case "linkedin", "naukri", "googlejobs":
		case "":
			res.addErr("sources[%d].name is required", i)
			continue
		default:
			res.addErr("sources[%d].name %q is not a known source", i, name)
			continue
		}
		if seenSource[name] {
			res.addErr("source %q listed twice", name)
		}
		seenSource[name] = true
		if s.Enabled {
			anyEnabled = true
		}
	}
	if !anyEnabled {
		res.addWarn("no sources enabled; scrape cycles will find nothing.")
	}

	for _, m := range out.Scrape.WorkModes {
		switch strings.ToLower(m) {
		case "remote", "hybrid":
		default:
			res.addWarn("work mode %q is not understood by every source", m)
		}
	}

	return out, res
}
