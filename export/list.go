package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"lldump/form"
	"lldump/state"
	"lldump/store"
)

// List is list command action.
func List(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("list")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no record source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	types, err := parseTypes(cmd.StringSlice("type"))
	if err != nil {
		return err
	}
	selectCodePage(env, cmd.String("code-page"), log)

	st, err := openStore(ctx, src, log)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if w := cmd.Root().Writer; w != nil {
		out = w
	}
	n, err := list(ctx, out, st, types)
	if err != nil {
		return err
	}
	log.Info("Forms listed", zap.String("source", src), zap.Int("count", n))
	return nil
}

// parseTypes turns requested record types into filter, no types means only
// leveled lists and form lists.
func parseTypes(names []string) ([]form.FormType, error) {
	if len(names) == 0 {
		return []form.FormType{form.FormTypeLVLI, form.FormTypeLVLN, form.FormTypeLVSP, form.FormTypeFLST}, nil
	}
	types := make([]form.FormType, 0, len(names))
	for _, name := range names {
		t, err := form.ParseFormType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// list writes one line per selected record in natural EditorID order and
// returns number of lines written.
func list(ctx context.Context, w io.Writer, st store.Store, types []form.FormType) (int, error) {
	all, err := st.All(ctx)
	if err != nil {
		return 0, err
	}
	selected := slices.DeleteFunc(all, func(rec form.Record) bool {
		return !slices.Contains(types, rec.Type())
	})
	slices.SortStableFunc(selected, func(a, b form.Record) int {
		ea, eb := a.Self().EditorID, b.Self().EditorID
		switch {
		case ea == eb:
			return 0
		case natural.Less(ea, eb):
			return -1
		default:
			return 1
		}
	})

	for _, rec := range selected {
		ref := rec.Self()
		plugin, _ := ref.Plugin()
		if _, err := fmt.Fprintf(w, "%08X\t%s\t%s\t%s\n", ref.FormID, rec.Type(), ref.EditorID, plugin); err != nil {
			return 0, fmt.Errorf("unable to write list: %w", err)
		}
	}
	return len(selected), nil
}
