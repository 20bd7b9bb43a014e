package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/ProjectFanta/fantasy-nba/internal/config"
	"github.com/ProjectFanta/fantasy-nba/internal/usecase"
)

func (r *runtime) render(c *cli.Context, data any, err error) error {
	pretty := c.Bool("pretty")
	if err != nil {
		r.logger.WarnContext(c.Context, "command failed", "command", c.Command.FullName(), "error", err)
		return writeError(r.out, err, pretty)
	}
	return writeSuccess(r.out, data, pretty)
}

// actor resolves the acting user from the --token flag.
func (r *runtime) actor(c *cli.Context) (int64, error) {
	principal, err := r.app.Verifier.VerifyAccessToken(c.Context, c.String("token"))
	if err != nil {
		return 0, err
	}
	return principal.UserID, nil
}

// mutate runs fn as the verified actor under the configured recompute timeout.
func (r *runtime) mutate(c *cli.Context, fn func(ctx context.Context, actorID int64) (any, error)) error {
	actorID, err := r.actor(c)
	if err != nil {
		return r.render(c, nil, err)
	}
	ctx, cancel := context.WithTimeout(c.Context, r.cfg.RecomputeTimeout)
	defer cancel()

	data, err := fn(ctx, actorID)
	return r.render(c, data, err)
}

func competitionFlag() cli.Flag {
	return &cli.Int64Flag{Name: "competition", Aliases: []string{"c"}, Usage: "competition id", Required: true}
}

func roundFlag() cli.Flag {
	return &cli.Int64Flag{Name: "round", Aliases: []string{"r"}, Usage: "round id", Required: true}
}

func (r *runtime) recomputeCommand() *cli.Command {
	return &cli.Command{
		Name:  "recompute",
		Usage: "rebuild derived standings for one competition",
		Flags: []cli.Flag{
			competitionFlag(),
			&cli.StringFlag{Name: "mode", Usage: "f1, h2h or all", Value: string(usecase.RecomputeAll)},
		},
		Action: func(c *cli.Context) error {
			return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
				mode, err := usecase.ParseRecomputeMode(c.String("mode"))
				if err != nil {
					return nil, err
				}
				return r.app.Recompute.Recompute(ctx, usecase.RecomputeInput{
					ActorUserID:   actorID,
					CompetitionID: c.Int64("competition"),
					Mode:          mode,
				})
			})
		},
	}
}

func (r *runtime) recomputeLeagueCommand() *cli.Command {
	return &cli.Command{
		Name:  "recompute-league",
		Usage: "rebuild derived standings for every competition of a league",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "league", Aliases: []string{"l"}, Usage: "league id", Required: true},
			&cli.StringFlag{Name: "mode", Usage: "f1, h2h or all", Value: string(usecase.RecomputeAll)},
		},
		Action: func(c *cli.Context) error {
			return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
				mode, err := usecase.ParseRecomputeMode(c.String("mode"))
				if err != nil {
					return nil, err
				}
				return r.app.Recompute.RecomputeLeague(ctx, usecase.RecomputeLeagueInput{
					ActorUserID: actorID,
					LeagueID:    c.Int64("league"),
					Mode:        mode,
				})
			})
		},
	}
}

func (r *runtime) scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "generate a round-robin schedule for a head-to-head competition",
		Flags: []cli.Flag{
			competitionFlag(),
			&cli.Int64SliceFlag{Name: "team", Usage: "restrict the schedule to these team ids (repeatable)"},
			&cli.IntFlag{Name: "legs", Usage: "1 for single round robin, 2 for home and away", Value: 1},
		},
		Action: func(c *cli.Context) error {
			return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
				return r.app.Schedule.Generate(ctx, usecase.GenerateScheduleInput{
					ActorUserID:   actorID,
					CompetitionID: c.Int64("competition"),
					TeamIDs:       c.Int64Slice("team"),
					Legs:          c.Int("legs"),
				})
			})
		},
	}
}

func (r *runtime) resolveCommand() *cli.Command {
	return &cli.Command{
		Name:  "resolve",
		Usage: "resolve the head-to-head matches of one round",
		Flags: []cli.Flag{roundFlag()},
		Action: func(c *cli.Context) error {
			return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
				return r.app.Matches.ResolveRound(ctx, usecase.ResolveRoundInput{
					ActorUserID: actorID,
					RoundID:     c.Int64("round"),
				})
			})
		},
	}
}

func (r *runtime) resetRoundCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset-round",
		Usage: "delete a round's results and reset its matches to pending",
		Flags: []cli.Flag{roundFlag()},
		Action: func(c *cli.Context) error {
			return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
				return r.app.Rounds.Reset(ctx, usecase.ResetRoundInput{
					ActorUserID: actorID,
					RoundID:     c.Int64("round"),
				})
			})
		},
	}
}

func (r *runtime) lockCommand() *cli.Command {
	return &cli.Command{
		Name:  "lock",
		Usage: "set or clear the lineup lock time of a round",
		Flags: []cli.Flag{
			roundFlag(),
			&cli.StringFlag{Name: "at", Usage: "lock time in RFC3339"},
			&cli.BoolFlag{Name: "clear", Usage: "remove the lock"},
		},
		Action: func(c *cli.Context) error {
			return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
				lockAt, err := parseLockFlags(c.String("at"), c.Bool("clear"))
				if err != nil {
					return nil, err
				}
				round, err := r.app.Rounds.UpdateLock(ctx, usecase.UpdateLockInput{
					ActorUserID: actorID,
					RoundID:     c.Int64("round"),
					LockAt:      lockAt,
				})
				if err != nil {
					return nil, err
				}
				return toRoundView(round), nil
			})
		},
	}
}

func parseLockFlags(at string, clear bool) (*time.Time, error) {
	at = strings.TrimSpace(at)
	switch {
	case clear && at != "":
		return nil, fmt.Errorf("%w: --at and --clear are mutually exclusive", usecase.ErrInvalidInput)
	case clear:
		return nil, nil
	case at == "":
		return nil, fmt.Errorf("%w: one of --at or --clear is required", usecase.ErrInvalidInput)
	}
	lockAt, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return nil, fmt.Errorf("%w: --at must be RFC3339: %v", usecase.ErrInvalidInput, err)
	}
	return &lockAt, nil
}

func (r *runtime) resultsCommand() *cli.Command {
	return &cli.Command{
		Name:  "results",
		Usage: "manage per-player round results",
		Subcommands: []*cli.Command{
			{
				Name:  "save",
				Usage: "upsert player points for a round",
				Flags: []cli.Flag{
					roundFlag(),
					&cli.StringSliceFlag{Name: "item", Usage: "player=points (repeatable)", Required: true},
				},
				Action: func(c *cli.Context) error {
					return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
						items, err := parseResultItems(c.StringSlice("item"))
						if err != nil {
							return nil, err
						}
						return r.app.Results.Save(ctx, usecase.SaveResultsInput{
							ActorUserID: actorID,
							RoundID:     c.Int64("round"),
							Items:       items,
						})
					})
				},
			},
			{
				Name:  "list",
				Usage: "list recorded results of a round",
				Flags: []cli.Flag{roundFlag()},
				Action: func(c *cli.Context) error {
					items, err := r.app.Results.ListByRound(c.Context, c.Int64("round"))
					if err != nil {
						return r.render(c, nil, err)
					}
					return r.render(c, toResultViews(items), nil)
				},
			},
		},
	}
}

// parseResultItems splits player=points pairs on the last '='. A comma is accepted as decimal separator.
func parseResultItems(raw []string) ([]usecase.ResultItem, error) {
	items := make([]usecase.ResultItem, 0, len(raw))
	for _, pair := range raw {
		idx := strings.LastIndex(pair, "=")
		if idx < 0 {
			return nil, fmt.Errorf("%w: result item %q must be player=points", usecase.ErrInvalidInput, pair)
		}
		points, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(pair[idx+1:]), ",", "."))
		if err != nil {
			return nil, fmt.Errorf("%w: result item %q has invalid points", usecase.ErrInvalidInput, pair)
		}
		items = append(items, usecase.ResultItem{Player: pair[:idx], Points: points})
	}
	return items, nil
}

func (r *runtime) importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "import player results from a delimited file",
		Flags: []cli.Flag{
			competitionFlag(),
			&cli.PathFlag{Name: "file", Aliases: []string{"f"}, Usage: "file to import, - for stdin", Required: true},
			&cli.StringFlag{Name: "delimiter", Usage: "field delimiter", Value: ","},
			&cli.BoolFlag{Name: "dry-run", Usage: "validate and preview without writing"},
			&cli.BoolFlag{Name: "overwrite", Usage: "replace results that already exist"},
		},
		Action: func(c *cli.Context) error {
			return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
				rows, err := readImportRows(c.Path("file"), c.String("delimiter"))
				if err != nil {
					return nil, err
				}
				return r.app.Import.Import(ctx, usecase.ImportInput{
					ActorUserID:   actorID,
					CompetitionID: c.Int64("competition"),
					Rows:          rows,
					DryRun:        c.Bool("dry-run"),
					Overwrite:     c.Bool("overwrite"),
				})
			})
		},
	}
}

func readImportRows(path, delimiter string) ([]usecase.ImportRow, error) {
	if path == "-" {
		return parseImportFile(os.Stdin, delimiter)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open import file: %v", usecase.ErrInvalidInput, err)
	}
	defer f.Close()
	return parseImportFile(f, delimiter)
}

func (r *runtime) standingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "standings",
		Usage: "print a competition's derived standings",
		Subcommands: []*cli.Command{
			{
				Name:  "f1",
				Usage: "points table and per-round scores",
				Flags: []cli.Flag{competitionFlag()},
				Action: func(c *cli.Context) error {
					table, err := r.app.Standings.F1(c.Context, c.Int64("competition"))
					return r.render(c, table, err)
				},
			},
			{
				Name:  "h2h",
				Usage: "head-to-head win/draw/loss table",
				Flags: []cli.Flag{competitionFlag()},
				Action: func(c *cli.Context) error {
					table, err := r.app.Standings.H2H(c.Context, c.Int64("competition"))
					return r.render(c, table, err)
				},
			},
		},
	}
}

func (r *runtime) lineupCommand() *cli.Command {
	teamFlag := func() cli.Flag {
		return &cli.Int64Flag{Name: "team", Aliases: []string{"t"}, Usage: "team id", Required: true}
	}
	return &cli.Command{
		Name:  "lineup",
		Usage: "read or submit a team's lineup for a round",
		Subcommands: []*cli.Command{
			{
				Name:  "set",
				Usage: "submit the lineup",
				Flags: []cli.Flag{
					teamFlag(),
					roundFlag(),
					&cli.StringSliceFlag{Name: "player", Aliases: []string{"p"}, Usage: "player name (repeatable)", Required: true},
					&cli.BoolFlag{Name: "override", Usage: "bypass the round lock (league owner only)"},
				},
				Action: func(c *cli.Context) error {
					return r.mutate(c, func(ctx context.Context, actorID int64) (any, error) {
						result, err := r.app.Lineups.Save(ctx, usecase.SaveLineupInput{
							ActorUserID: actorID,
							TeamID:      c.Int64("team"),
							RoundID:     c.Int64("round"),
							Entries:     c.StringSlice("player"),
							Override:    c.Bool("override"),
						})
						if err != nil {
							return nil, err
						}
						return lineupSaveView{Lineup: toLineupView(result.Lineup), Recompute: result.Recompute}, nil
					})
				},
			},
			{
				Name:  "get",
				Usage: "print the stored lineup",
				Flags: []cli.Flag{teamFlag(), roundFlag()},
				Action: func(c *cli.Context) error {
					item, found, err := r.app.Lineups.Get(c.Context, c.Int64("team"), c.Int64("round"))
					if err != nil {
						return r.render(c, nil, err)
					}
					if !found {
						return r.render(c, nil, fmt.Errorf("%w: no lineup for team %d in round %d",
							usecase.ErrNotFound, c.Int64("team"), c.Int64("round")))
					}
					return r.render(c, toLineupView(item), nil)
				},
			},
		},
	}
}

func (r *runtime) matchesCommand() *cli.Command {
	return &cli.Command{
		Name:  "matches",
		Usage: "list head-to-head matches",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "every match of a competition in round order",
				Flags: []cli.Flag{competitionFlag()},
				Action: func(c *cli.Context) error {
					items, err := r.app.Matches.ListByCompetition(c.Context, c.Int64("competition"))
					if err != nil {
						return r.render(c, nil, err)
					}
					return r.render(c, toMatchViews(items), nil)
				},
			},
		},
	}
}

type issuedToken struct {
	UserID    int64     `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *runtime) tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "access token helpers",
		Subcommands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "sign an access token for a user (dev only)",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "user", Aliases: []string{"u"}, Usage: "user id", Required: true},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime", Value: 24 * time.Hour},
				},
				Action: func(c *cli.Context) error {
					if r.cfg.AppEnv != config.EnvDev {
						return r.render(c, nil, fmt.Errorf("%w: token issue is only available when APP_ENV=%s",
							usecase.ErrForbidden, config.EnvDev))
					}
					ttl := c.Duration("ttl")
					token, err := r.app.Verifier.Issue(c.Int64("user"), ttl)
					if err != nil {
						return r.render(c, nil, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
					}
					return r.render(c, issuedToken{
						UserID:    c.Int64("user"),
						Token:     token,
						ExpiresAt: time.Now().Add(ttl).UTC().Truncate(time.Second),
					}, nil)
				},
			},
		},
	}
}
