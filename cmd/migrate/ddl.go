package main

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

var createObject = regexp.MustCompile(`(?i)^\s*CREATE\s+(?:UNIQUE\s+|NULL_FILTERED\s+)*(TABLE|INDEX)\s+` + "`?" + `(\w+)`)

// splitDDLStatements drops comment lines and splits on semicolons.
func splitDDLStatements(content string) []string {
	lines := lo.Filter(strings.Split(content, "\n"), func(line string, _ int) bool {
		line = strings.TrimSpace(line)
		return line != "" && !strings.HasPrefix(line, "--")
	})

	statements := lo.Map(strings.Split(strings.Join(lines, "\n"), ";"), func(stmt string, _ int) string {
		return strings.TrimSpace(stmt)
	})
	return lo.Compact(statements)
}

// objectName returns "TABLE name" or "INDEX name" for a CREATE statement.
func objectName(stmt string) (string, bool) {
	match := createObject.FindStringSubmatch(stmt)
	if match == nil {
		return "", false
	}
	return strings.ToUpper(match[1]) + " " + strings.ToLower(match[2]), true
}

func existingObjects(schema []string) map[string]bool {
	out := make(map[string]bool, len(schema))
	for _, stmt := range schema {
		if name, ok := objectName(stmt); ok {
			out[name] = true
		}
	}
	return out
}

// pendingStatements filters out CREATE statements for objects that exist.
// Other statements are always kept.
func pendingStatements(statements []string, existing map[string]bool) []string {
	return lo.Filter(statements, func(stmt string, _ int) bool {
		name, ok := objectName(stmt)
		return !ok || !existing[name]
	})
}
