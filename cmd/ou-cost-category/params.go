package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	monthLayout          = "2006-01"
	effectiveStartLayout = "2006-01-02T15:04:05Z"
)

type params struct {
	name           string
	effectiveStart time.Time
	depth          int
}

// EffectiveStart renders the start month the way Cost Explorer expects it.
func (p params) EffectiveStart() string {
	return p.effectiveStart.UTC().Format(effectiveStartLayout)
}

// parseParams validates the <name> <YYYY-MM> <depth> positional arguments.
func parseParams(args []string) (params, error) {
	if len(args) != 3 {
		return params{}, fmt.Errorf("expected 3 arguments (<name> <YYYY-MM> <depth>), got %d", len(args))
	}
	name, month, depthStr := args[0], args[1], args[2]
	if name == "" {
		return params{}, errors.New("cost category name cannot be empty")
	}

	start, err := time.ParseInLocation(monthLayout, month, time.UTC)
	if err != nil {
		return params{}, fmt.Errorf("invalid YYYY-MM format: %q", month)
	}

	depth, err := strconv.Atoi(depthStr)
	if err != nil || depth < 1 {
		return params{}, fmt.Errorf("invalid depth: %q, must be an integer >= 1", depthStr)
	}

	return params{
		name:           name,
		effectiveStart: start,
		depth:          depth,
	}, nil
}

// isFutureMonth reports whether start is after the month containing now.
func isFutureMonth(start, now time.Time) bool {
	now = now.UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start.After(currentMonth)
}
