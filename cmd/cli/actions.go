package main

import (
	"fmt"
	"strconv"
	"strings"

	"herodex/internal/session"
)

// parseAction reads one interactive line such as "filter race Human" or
// "sort powerstats.power desc".
func parseAction(line string) (session.Action, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	a := session.Action{Action: verb}
	switch verb {
	case "":
		return a, fmt.Errorf("empty command")
	case session.ActSearch, session.ActGroup, session.ActField, session.ActSize,
		session.ActView, session.ActToggleSort, session.ActRestore:
		a.Value = rest
	case session.ActFilter:
		cat, val, _ := strings.Cut(rest, " ")
		if cat == "" {
			return a, fmt.Errorf("usage: filter <category> [value]")
		}
		a.Category = cat
		a.Value = strings.TrimSpace(val)
	case session.ActSort:
		f, dir, _ := strings.Cut(rest, " ")
		if f == "" {
			return a, fmt.Errorf("usage: sort <field> [asc|desc]")
		}
		a.Value = f
		a.Dir = strings.TrimSpace(dir)
	case session.ActPage:
		n, err := strconv.Atoi(rest)
		if err != nil {
			return a, fmt.Errorf("usage: page <n>")
		}
		a.Page = n
	case session.ActSelect:
		id, err := strconv.Atoi(rest)
		if err != nil {
			return a, fmt.Errorf("usage: select <id>")
		}
		a.ID = id
	}
	return a, nil
}
