// Package export implements program commands: dumping leveled lists and
// form lists from record stores and listing store content.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"lldump/config"
	"lldump/dump"
	"lldump/form"
	"lldump/output"
	"lldump/state"
	"lldump/store"
)

// Run is dump command action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("dump")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no record source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	forms := cmd.Args().Slice()[1:]
	if len(forms) == 0 {
		return errors.New("no forms to dump have been specified")
	}

	style, err := dump.ParseStyle(env.Cfg.Dump.Style)
	if err != nil {
		return err
	}

	if env.OutDir, err = outputDir(cmd.String("out"), env.Cfg.Dump.Directory); err != nil {
		return err
	}
	env.Overwrite = cmd.Bool("overwrite")
	selectCodePage(env, cmd.String("code-page"), log)

	st, err := openStore(ctx, src, log)
	if err != nil {
		return err
	}

	namer := output.NewNamer(&env.Cfg.Dump)
	if len(forms) > 1 && namer.Scheme == config.NameSchemeTimestamp {
		// time stamps alone would collide
		log.Info("Several forms requested, adding EditorID to file names")
		namer.Scheme = config.NameSchemeEditorID
	}

	d := &dump.Dumper{
		Renderer: dump.NewRenderer(style),
		Sink: &output.FileSink{
			Dir:       env.OutDir,
			Namer:     namer,
			Overwrite: env.Overwrite,
			Report:    env.Rpt,
		},
		Console: dump.ZapConsole{Log: log},
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", env.OutDir), zap.Stringer("style", d.Renderer.Style()), zap.Int("forms", len(forms)))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, st, d, forms, log)
}

// process dumps every requested form independently of CLI framework. Failure
// to dump one form does not stop processing of the rest, form requested more
// than once is dumped (or fails) only once.
func process(ctx context.Context, st store.Store, d *dump.Dumper, forms []string, log *zap.Logger) error {
	var (
		errs  error
		count int
		seen  = make(map[uint32]struct{}, len(forms))
	)
	for _, arg := range forms {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		rec, err := resolve(ctx, st, arg)
		if err != nil {
			log.Error("Unable to find form", zap.String("form", arg), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", arg, err))
			continue
		}
		if _, ok := seen[rec.Self().FormID]; ok {
			log.Debug("Form already processed, skipping", zap.String("form", arg), zap.Stringer("record", rec.Self()))
			continue
		}
		seen[rec.Self().FormID] = struct{}{}
		if _, err := d.Dump(ctx, rec); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rec.Self(), err))
			continue
		}
		count++
	}
	log.Debug("Forms dumped", zap.Int("dumped", count), zap.Int("failed", len(multierr.Errors(errs))))
	return errs
}

// resolve finds form by FormID (hexadecimal, with or without 0x prefix) or,
// failing that, by EditorID.
func resolve(ctx context.Context, st store.Store, arg string) (form.Record, error) {
	arg = strings.TrimSpace(arg)
	if len(arg) == 0 {
		return nil, errors.New("empty form specification")
	}
	if id, ok := parseFormID(arg); ok {
		rec, err := st.Lookup(ctx, id)
		if err == nil || !errors.Is(err, store.ErrNotFound) {
			return rec, err
		}
		// EditorIDs may look like hexadecimal numbers too
	}
	return st.LookupEditorID(ctx, arg)
}

func parseFormID(arg string) (uint32, bool) {
	s := arg
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	if len(s) == 0 || len(s) > 8 {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(id), true
}

// outputDir selects destination directory: command line first, then
// configuration, then current working directory.
func outputDir(flag, configured string) (string, error) {
	dir := flag
	if len(dir) == 0 {
		dir = configured
	}
	if len(dir) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("unable to get working directory: %w", err)
		}
		dir = wd
	}
	return filepath.Abs(dir)
}

// selectCodePage sets encoding used for raw strings in record databases.
// Command line overwrites configuration, unknown names are ignored.
func selectCodePage(env *state.LocalEnv, flag string, log *zap.Logger) {
	cp := flag
	if len(cp) == 0 {
		cp = env.Cfg.Store.CodePage
	}
	env.CodePage = nil
	if len(cp) == 0 {
		return
	}
	enc, err := ianaindex.IANA.Encoding(cp)
	if err != nil || enc == nil {
		log.Warn("Unknown or unsupported character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		return
	}
	env.CodePage = enc
	n, _ := ianaindex.IANA.Name(enc)
	log.Debug("Decoding raw database strings", zap.String("charset", n))
}

func openStore(ctx context.Context, src string, log *zap.Logger) (*store.Memory, error) {
	env := state.EnvFromContext(ctx)

	kind, err := store.Detect(src)
	if err != nil {
		return nil, fmt.Errorf("unable to check record source: %w", err)
	}
	st, err := store.Open(src, store.Options{CodePage: env.CodePage})
	if err != nil {
		return nil, err
	}
	log.Debug("Record source loaded", zap.String("source", src), zap.Stringer("kind", kind), zap.Int("records", st.Len()))
	return st, nil
}
