package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"code-jam-service/internal/bot"
	"code-jam-service/internal/config"
	"code-jam-service/internal/model"
	"code-jam-service/internal/service"
)

var registerCmd = &cobra.Command{
	Use:   "register-commands",
	Short: "Register the /codejam slash command in the guild",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Discord.AppID == "" {
			return fmt.Errorf("required setting DISCORD_APP_ID is not set")
		}

		session, err := discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			return fmt.Errorf("create session: %w", err)
		}

		registered, err := session.ApplicationCommandBulkOverwrite(cfg.Discord.AppID, cfg.Discord.GuildID, bot.Commands(),
			discordgo.WithContext(cmd.Context()))
		if err != nil {
			return fmt.Errorf("register commands: %w", err)
		}
		for _, c := range registered {
			fmt.Fprintf(cmd.OutOrStdout(), "registered /%s (%s)\n", c.Name, c.ID)
		}
		return nil
	},
}

var parseRosterVerbose bool

var parseRosterCmd = &cobra.Command{
	Use:   "parse-roster <file>",
	Short: "Dry-run the roster parser on a local CSV file",
	Long: `Parse a roster offline and print the resulting teams.

Member ids are not resolved against the server: every integer id is accepted,
so only rows with malformed ids are reported as skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		level := slog.LevelInfo
		if parseRosterVerbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

		parser := service.NewRosterParser(offlineResolver{}, logger)
		teams, skipped, err := parser.Parse(context.Background(), f)
		if err != nil {
			return err
		}
		return printRoster(cmd.OutOrStdout(), teams, skipped)
	},
}

func init() {
	parseRosterCmd.Flags().BoolVarP(&parseRosterVerbose, "verbose", "v", false, "log every skipped row")
}

// offlineResolver принимает любой идентификатор без обращения к серверу.
type offlineResolver struct{}

func (offlineResolver) Member(_ context.Context, userID string) (model.Member, error) {
	return model.Member{ID: userID}, nil
}

func printRoster(w io.Writer, teams *model.TeamAssignment, skipped []service.SkippedRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TEAM\tMEMBERS\tLEADERS")
	for _, name := range teams.Teams() {
		var leaders []string
		members := teams.Members(name)
		for _, m := range members {
			if m.IsLeader {
				leaders = append(leaders, m.Member.ID)
			}
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", name, len(members), strings.Join(leaders, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d teams, %d skipped rows\n", teams.Len(), len(skipped))
	for _, s := range skipped {
		fmt.Fprintf(w, "  line %d: %q (%s)\n", s.Line, s.MemberID, s.Reason)
	}
	return nil
}
