package engine

import "regexp"

// Go drivers (go-sql-driver/mysql, pgx) surface dial failures from the net
// package rather than the client-library wording. These patterns are shared
// by every catalog; each engine attaches its own templates.
var (
	DialRefused = regexp.MustCompile(
		`dial tcp \[?(?P<hostname>[^\s\[\]]+?)\]?:(?P<port>\d+): connect: connection refused`)

	DialTimeout = regexp.MustCompile(
		`dial tcp \[?(?P<hostname>[^\s\[\]]+?)\]?:(?P<port>\d+): ` +
			`(?:i/o timeout|connect: connection timed out|connect: no route to host|connect: network is unreachable)`)

	LookupFailed = regexp.MustCompile(
		`lookup (?P<hostname>[^\s:]+?)(?: on \S+)?: no such host`)
)
