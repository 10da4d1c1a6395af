package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"lldump/config"
	"lldump/export"
	"lldump/form"
	"lldump/state"
)

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:         "dump",
			Usage:        "Dumps leveled lists and form lists to JSON files",
			OnUsageError: usageErrorHandler,
			Action:       export.Run,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write dumps to `DIRECTORY` instead of configured one"},
				&cli.BoolFlag{Name: "overwrite", Aliases: []string{"ow"}, Usage: "continue even if destination exists, overwrite files"},
				&cli.StringFlag{Name: "code-page",
					Usage: "Force `ENCODING` for raw strings in record databases (see IANA.org for character set names)"},
			},
			ArgsUsage: "SOURCE FORM [FORM...]",
			CustomHelpTemplate: fmt.Sprintf(`%s
SOURCE:
    records to look forms up in, following formats are supported:
        YAML record document: "[path_to_file]records.yaml"
        path to a directory: "[path_to_directory]directory" - all *.yaml documents under directory (symbolic links are not followed)
        ZIP archive: "[path_to_archive]archive.zip" - all *.yaml documents in archive
        SQLite record database: "[path_to_file]records.sqlite"

When the same form is defined more than once the last definition wins,
documents are read in natural name order.

FORM:
    hexadecimal FormID ("0x0001F4A2" or "0001F4A2") or EditorID of leveled
    item, leveled actor, leveled spell or form list

Each form is written to its own file "<prefix><timestamp>.json" in
destination directory (see "dump" configuration section).
`, cli.CommandHelpTemplate),
		},
		{
			Name:         "list",
			Usage:        "Lists forms available in record source",
			OnUsageError: usageErrorHandler,
			Action:       export.List,
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "type", Aliases: []string{"t"},
					Usage: "list only records of `TYPE` (supported types: " + strings.Join(form.FormTypeNames(), ", ") + "), leveled lists and form lists by default"},
				&cli.StringFlag{Name: "code-page",
					Usage: "Force `ENCODING` for raw strings in record databases (see IANA.org for character set names)"},
			},
			ArgsUsage: "SOURCE",
		},
		{
			Name:  "dumpconfig",
			Usage: "Dumps either default or actual configuration (YAML)",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
			},
			OnUsageError: usageErrorHandler,
			Action:       outputConfiguration,
			ArgsUsage:    "DESTINATION",
			CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
		},
	}
}

// outputConfiguration writes default or actual configuration to file or
// stdout.
func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	kind, prepare := "actual", func() ([]byte, error) { return config.Dump(env.Cfg) }
	if cmd.Bool("default") {
		kind, prepare = "default", config.Prepare
	}
	data, err := prepare()
	if err != nil {
		return fmt.Errorf("unable to get %s configuration: %w", kind, err)
	}

	fname := cmd.Args().Get(0)
	if len(fname) == 0 {
		env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", "STDOUT"))
		_, err = os.Stdout.Write(data)
		return err
	}

	env.Log.Info("Outputting configuration", zap.String("state", kind), zap.String("file", fname))
	if err := os.WriteFile(fname, data, 0o644); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
