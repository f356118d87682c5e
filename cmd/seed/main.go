// Command seed loads roster teams into the teams collection read by
// ROSTER_SOURCE=mongo.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mentorsurvey/internal/model"
	"mentorsurvey/internal/repository"
	"mentorsurvey/internal/roster"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type seedOptions struct {
	mongoURI string
	database string
	timeout  time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &seedOptions{}
	root := &cobra.Command{
		Use:          "seed",
		Short:        "Seed the survey roster",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.mongoURI, "mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	root.PersistentFlags().StringVar(&opts.database, "db", envOr("MONGO_DB", "capstone"), "database name")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall timeout")

	root.AddCommand(newTeamsCmd(opts), newBuiltinCmd(opts))
	return root
}

func newTeamsCmd(opts *seedOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "Upsert teams from a CSV or YAML roster file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			teams, err := roster.LoadFile(file)
			if err != nil {
				return err
			}
			return seed(cmd.Context(), opts, teams, cmd)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "roster file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newBuiltinCmd(opts *seedOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "builtin",
		Short: "Upsert the built-in demo roster",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return seed(cmd.Context(), opts, teamsOf(roster.Builtin()), cmd)
		},
	}
}

func seed(ctx context.Context, opts *seedOptions, teams []model.Team, cmd *cobra.Command) error {
	ctx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.mongoURI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(context.Background())

	repo := repository.NewTeamRepo(client.Database(opts.database))
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// keys are assigned by the roster snapshot
	for _, team := range teamsOf(roster.NewStatic(teams)) {
		if err := repo.Upsert(ctx, team); err != nil {
			return fmt.Errorf("upsert %s: %w", team.Name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %s (%s, %d members)\n", team.Name, team.Key, len(team.Members))
	}
	return nil
}

func teamsOf(s *roster.Static) []model.Team {
	names := s.ListTeams()
	teams := make([]model.Team, 0, len(names))
	for _, name := range names {
		t, err := s.GetTeam(name)
		if err != nil {
			continue
		}
		teams = append(teams, t)
	}
	return teams
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
