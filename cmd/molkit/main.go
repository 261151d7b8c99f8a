// Copyright 2025 RobotU AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	molkit "github.com/Robotu-ai/robotu-molkit"
	"github.com/Robotu-ai/robotu-molkit/ai"
	"github.com/Robotu-ai/robotu-molkit/core"
	"github.com/Robotu-ai/robotu-molkit/credentials"
	"github.com/Robotu-ai/robotu-molkit/ingest"
	"github.com/Robotu-ai/robotu-molkit/search"
	"github.com/Robotu-ai/robotu-molkit/storage/badger"
)

func main() {
	// Best effort: a .env in the working directory supplies credentials
	// during development.
	godotenv.Load()

	app := &cli.App{
		Name:  "molkit",
		Usage: "Build and search an AI-enriched molecule library from PubChem",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Fetch, enrich, and index compounds by CID or name",
				ArgsUsage: "CID|NAME [CID|NAME...]",
				Action:    ingestCommand,
				Flags: append(dbFlags(), append(aiFlags(),
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"concurrency"},
						Usage:   "Number of compounds processed concurrently",
						Value:   5,
					},
					&cli.BoolFlag{
						Name:  "skip-enrich",
						Usage: "Skip blurb generation; index normalized facts only",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "File with additional CIDs or names, one per line",
					},
					&cli.StringFlag{
						Name:  "template-dir",
						Usage: "Directory with prompt template overrides",
					})...),
			},
			{
				Name:      "search",
				Usage:     "Semantic search over the indexed molecules",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(dbFlags(), append(aiFlags(),
					&cli.IntFlag{
						Name:    "max-hits",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results",
						Value:   5,
					},
					&cli.StringFlag{
						Name:  "hazard",
						Usage: "Filter by hazard tag (e.g. \"high hazard\")",
					},
					&cli.StringSliceFlag{
						Name:  "name",
						Usage: "Filter by molecule name (repeatable)",
					},
					&cli.Float64Flag{
						Name:  "logp-min",
						Usage: "Minimum logP (requires --logp-max)",
					},
					&cli.Float64Flag{
						Name:  "logp-max",
						Usage: "Maximum logP (requires --logp-min)",
					},
					&cli.StringFlag{
						Name:  "section",
						Usage: "Restrict to one thematic section (summary, names, structure, safety, properties, spectra)",
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Minimum similarity score for results",
					},
					&cli.BoolFlag{
						Name:  "chunks",
						Usage: "Return individual chunks instead of one hit per molecule",
					})...),
			},
			{
				Name:      "show",
				Usage:     "Print a stored molecule record as JSON",
				ArgsUsage: "CID",
				Action:    showCommand,
				Flags:     dbFlags(),
			},
			{
				Name:  "config",
				Usage: "Manage stored credentials",
				Subcommands: []*cli.Command{
					{
						Name:   "set",
						Usage:  "Store credentials in the user config file",
						Action: configSetCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "api-key",
								Usage:    "Hosted service API key",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "project-id",
								Usage: "Billing project identifier",
							},
						},
					},
					{
						Name:   "show",
						Usage:  "Show the resolved credential sources",
						Action: configShowCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the molecule library directory",
			Value:   defaultDBPath(),
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "api-key",
			Usage: "Hosted service API key (overrides env and config file)",
		},
		&cli.StringFlag{
			Name:  "project-id",
			Usage: "Billing project identifier",
		},
		&cli.StringFlag{
			Name:  "base-url",
			Usage: "OpenAI-compatible API base URL",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Chat model for blurb generation",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Model for text embeddings",
		},
	}
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "molkit_db"
	}
	return home + "/.local/share/molkit/db"
}

// openLibrary resolves credentials and opens the library for commands
// that need the AI provider.
func openLibrary(c *cli.Context) (*molkit.Library, error) {
	configPath, err := credentials.DefaultPath()
	if err != nil {
		return nil, err
	}
	creds, err := credentials.Resolve(&credentials.Credentials{
		APIKey:    c.String("api-key"),
		ProjectID: c.String("project-id"),
	}, configPath)
	if err != nil {
		return nil, err
	}

	aiOpts := []ai.ConfigOption{
		ai.WithAPIKey(creds.APIKey),
		ai.WithProjectID(creds.ProjectID),
	}
	if v := c.String("base-url"); v != "" {
		aiOpts = append(aiOpts, ai.WithBaseURL(v))
	}
	if v := c.String("model"); v != "" {
		aiOpts = append(aiOpts, ai.WithGenerativeModel(v))
	}
	if v := c.String("embedding-model"); v != "" {
		aiOpts = append(aiOpts, ai.WithEmbeddingModel(v))
	}

	libOpts := []molkit.LibraryOption{molkit.WithAIConfig(ai.NewConfig(aiOpts...))}
	if dir := c.String("template-dir"); dir != "" {
		libOpts = append(libOpts, molkit.WithTemplateDir(dir))
	}

	return molkit.NewLibrary(c.String("db"), libOpts...)
}

func ingestCommand(c *cli.Context) error {
	args := c.Args().Slice()
	if path := c.String("file"); path != "" {
		fromFile, err := readArgsFile(path)
		if err != nil {
			return err
		}
		args = append(args, fromFile...)
	}
	if len(args) == 0 {
		return fmt.Errorf("at least one CID or compound name is required")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	pipeline, err := lib.NewIngestPipeline(
		ingest.WithPoolSize(c.Int("workers")),
		ingest.WithSkipEnrich(c.Bool("skip-enrich")),
	)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	// Numeric arguments are CIDs, the rest are names to resolve.
	var cids []core.CID
	var names []string
	for _, arg := range args {
		if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
			cids = append(cids, core.CID(n))
		} else {
			names = append(names, arg)
		}
	}

	ctx := context.Background()
	report, err := pipeline.IngestCIDs(ctx, cids...)
	if err != nil {
		return err
	}
	if len(names) > 0 {
		nameReport, err := pipeline.IngestNames(ctx, names...)
		if err != nil {
			return err
		}
		report.Ingested = append(report.Ingested, nameReport.Ingested...)
		for cid, failErr := range nameReport.Failed {
			if report.Failed == nil {
				report.Failed = make(map[core.CID]error)
			}
			report.Failed[cid] = failErr
		}
	}

	fmt.Printf("Ingested %d compound(s)\n", len(report.Ingested))
	for cid, failErr := range report.Failed {
		fmt.Fprintf(os.Stderr, "CID %d failed: %v\n", cid, failErr)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d compound(s) failed", len(report.Failed))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	var searchOpts []search.Option
	if c.IsSet("min-score") {
		searchOpts = append(searchOpts, search.WithMinSimilarity(float32(c.Float64("min-score"))))
	}
	searcher, err := lib.NewSearcher(searchOpts...)
	if err != nil {
		return err
	}

	var filters []search.Filter
	if v := c.String("hazard"); v != "" {
		filters = append(filters, search.Equals("hazard", v))
	}
	if names := c.StringSlice("name"); len(names) > 0 {
		filters = append(filters, search.OneOf("name", names...))
	}
	if c.IsSet("logp-min") || c.IsSet("logp-max") {
		if !c.IsSet("logp-min") || !c.IsSet("logp-max") {
			return fmt.Errorf("--logp-min and --logp-max must be used together")
		}
		filters = append(filters, search.Range("logp", c.Float64("logp-min"), c.Float64("logp-max")))
	}
	if v := c.String("section"); v != "" {
		filters = append(filters, search.SectionIs(v))
	}

	ctx := context.Background()
	var results []*core.SearchResult
	if c.Bool("chunks") {
		results, err = searcher.Search(ctx, query, c.Int("max-hits"), filters...)
	} else {
		results, err = searcher.SearchMolecules(ctx, query, c.Int("max-hits"), filters...)
	}
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, result := range results {
		entry := result.Entry
		fmt.Printf("%2d. [%.3f] CID %d %s (%s)\n    %s\n",
			i+1, result.Score, entry.CID, entry.Metadata["name"], entry.Section, entry.Text)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("exactly one CID is required")
	}
	n, err := strconv.ParseInt(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid CID %q", c.Args().First())
	}

	// No AI provider needed to read a stored record; open the
	// storage layer directly.
	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return err
	}
	defer backend.Close()

	repo, err := badger.NewMoleculeRepository(backend)
	if err != nil {
		return err
	}
	defer repo.Close()

	record, err := repo.GetMolecule(context.Background(), core.CID(n))
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func configSetCommand(c *cli.Context) error {
	path, err := credentials.DefaultPath()
	if err != nil {
		return err
	}
	creds := &credentials.Credentials{
		APIKey:    c.String("api-key"),
		ProjectID: c.String("project-id"),
	}
	if err := credentials.Save(path, creds); err != nil {
		return err
	}
	fmt.Printf("Credentials written to %s\n", path)
	return nil
}

func configShowCommand(c *cli.Context) error {
	path, err := credentials.DefaultPath()
	if err != nil {
		return err
	}
	creds, err := credentials.Resolve(nil, path)
	if err != nil {
		return err
	}
	fmt.Printf("Config file: %s\n", path)
	fmt.Printf("API key: %s\n", maskKey(creds.APIKey))
	if creds.ProjectID != "" {
		fmt.Printf("Project ID: %s\n", creds.ProjectID)
	}
	return nil
}

// readArgsFile reads CIDs or names from a file, one per line. Blank
// lines and lines starting with # are skipped.
func readArgsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var args []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args = append(args, line)
	}
	return args, nil
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
