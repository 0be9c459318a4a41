// Package readstore materializes aggregates and reference-data snapshots
// for the command and query sides. Every read returns a complete object;
// the domain never lazy-loads.
package readstore

import (
	"strings"

	"hotelier/internal/infra/db"
	"hotelier/internal/usecase/shared"
)

type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &CommandReads{db: dbtx}
}

// char(3) columns come back space-padded when a shorter code sneaks in
func trimCurrency(c string) string {
	return strings.TrimSpace(c)
}
