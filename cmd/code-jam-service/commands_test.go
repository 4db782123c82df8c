package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code-jam-service/internal/service"
)

func TestPrintRoster(t *testing.T) {
	const roster = "Team Name,Team Member Discord ID,Team Leader\n" +
		"Rocket,1,Y\n" +
		"Rocket,2,N\n" +
		"Magma,oops,N\n"

	parser := service.NewRosterParser(offlineResolver{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	teams, skipped, err := parser.Parse(context.Background(), strings.NewReader(roster))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, printRoster(&out, teams, skipped))

	got := out.String()
	assert.Regexp(t, `Rocket\s+2\s+1\n`, got)
	assert.Regexp(t, `Magma\s+0\s+\n`, got)
	assert.Contains(t, got, "2 teams, 1 skipped rows")
	assert.Contains(t, got, `line 4: "oops"`)
}
