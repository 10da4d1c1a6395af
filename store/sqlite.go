package store

import (
	"fmt"

	"golang.org/x/text/encoding"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"lldump/form"
)

// Schema of record database. Strings are kept as BLOBs in whatever code
// page plugins were authored with.
const Schema = `
CREATE TABLE IF NOT EXISTS forms (
	form_id           INTEGER PRIMARY KEY,
	type              TEXT NOT NULL,
	editor_id         BLOB,
	chance_none       INTEGER NOT NULL DEFAULT 0,
	max_use_all_count INTEGER NOT NULL DEFAULT 0,
	flags             INTEGER NOT NULL DEFAULT 0,
	global_id         INTEGER
);
CREATE TABLE IF NOT EXISTS sources (
	form_id  INTEGER NOT NULL,
	position INTEGER NOT NULL,
	plugin   BLOB NOT NULL,
	PRIMARY KEY (form_id, position)
);
CREATE TABLE IF NOT EXISTS entries (
	list_id      INTEGER NOT NULL,
	position     INTEGER NOT NULL,
	script_added INTEGER NOT NULL DEFAULT 0,
	level        INTEGER NOT NULL,
	form_id      INTEGER NOT NULL,
	count        INTEGER NOT NULL,
	chance_none  INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (list_id, script_added, position)
);
CREATE TABLE IF NOT EXISTS members (
	list_id  INTEGER NOT NULL,
	position INTEGER NOT NULL,
	form_id  INTEGER NOT NULL,
	PRIMARY KEY (list_id, position)
);
`

func columnString(stmt *sqlite.Stmt, col int, dec *encoding.Decoder) (string, error) {
	if stmt.ColumnType(col) == sqlite.TypeNull {
		return "", nil
	}
	raw := make([]byte, stmt.ColumnLen(col))
	stmt.ColumnBytes(col, raw)
	if dec == nil {
		return string(raw), nil
	}
	out, err := dec.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// column narrows integer column refusing values which do not fit, so the
// database could not say more than YAML documents can.
func column[T uint8 | int32 | uint32](stmt *sqlite.Stmt, col int) (T, error) {
	v := stmt.ColumnInt64(col)
	if int64(T(v)) != v {
		return 0, fmt.Errorf("%s %d: %w", stmt.ColumnName(col), v, ErrOutOfRange)
	}
	return T(v), nil
}

func (b *builder) loadSQLite(path string, cp encoding.Encoding) (err error) {
	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(); err == nil {
			err = cerr
		}
	}()

	var dec *encoding.Decoder
	if cp != nil {
		dec = cp.NewDecoder()
	}

	docs := make(map[uint32]*recordDoc)
	var order []uint32

	err = sqlitex.Execute(conn, `SELECT form_id, type, editor_id, chance_none, max_use_all_count, flags, global_id FROM forms ORDER BY form_id`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) (err error) {
			d := &recordDoc{}
			if d.FormID, err = column[uint32](stmt, 0); err != nil {
				return err
			}
			if d.Type, err = form.ParseFormType(stmt.ColumnText(1)); err != nil {
				return fmt.Errorf("form %08X: %w", d.FormID, err)
			}
			if d.EditorID, err = columnString(stmt, 2, dec); err != nil {
				return fmt.Errorf("form %08X editor id: %w", d.FormID, err)
			}
			if d.ChanceNone, err = column[uint8](stmt, 3); err != nil {
				return fmt.Errorf("form %08X %w", d.FormID, err)
			}
			if d.MaxUseAllCount, err = column[uint8](stmt, 4); err != nil {
				return fmt.Errorf("form %08X %w", d.FormID, err)
			}
			if d.Flags, err = column[uint8](stmt, 5); err != nil {
				return fmt.Errorf("form %08X %w", d.FormID, err)
			}
			if stmt.ColumnType(6) != sqlite.TypeNull {
				g, err := column[uint32](stmt, 6)
				if err != nil {
					return fmt.Errorf("form %08X %w", d.FormID, err)
				}
				d.Global = &g
			}
			docs[d.FormID] = d
			order = append(order, d.FormID)
			return nil
		}})
	if err != nil {
		return fmt.Errorf("unable to read forms: %w", err)
	}

	err = sqlitex.Execute(conn, `SELECT form_id, plugin FROM sources ORDER BY form_id, position`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			id, err := column[uint32](stmt, 0)
			if err != nil {
				return fmt.Errorf("source %w", err)
			}
			d, ok := docs[id]
			if !ok {
				// sources of forms which are not in the database
				return nil
			}
			plugin, err := columnString(stmt, 1, dec)
			if err != nil {
				return fmt.Errorf("form %08X plugin: %w", d.FormID, err)
			}
			d.Sources = append(d.Sources, plugin)
			return nil
		}})
	if err != nil {
		return fmt.Errorf("unable to read sources: %w", err)
	}

	err = sqlitex.Execute(conn, `SELECT list_id, script_added, level, form_id, count, chance_none FROM entries ORDER BY list_id, script_added, position`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) (err error) {
			id, err := column[uint32](stmt, 0)
			if err != nil {
				return fmt.Errorf("entry %w", err)
			}
			d, ok := docs[id]
			if !ok {
				return fmt.Errorf("%w: entry of missing list %08X", ErrUnresolvedReference, id)
			}
			var e entryDoc
			if e.Level, err = column[uint8](stmt, 2); err != nil {
				return fmt.Errorf("form %08X entry %w", id, err)
			}
			if e.Form, err = column[uint32](stmt, 3); err != nil {
				return fmt.Errorf("form %08X entry %w", id, err)
			}
			if e.Count, err = column[int32](stmt, 4); err != nil {
				return fmt.Errorf("form %08X entry %w", id, err)
			}
			if e.ChanceNone, err = column[uint8](stmt, 5); err != nil {
				return fmt.Errorf("form %08X entry %w", id, err)
			}
			if stmt.ColumnInt64(1) != 0 {
				d.ScriptAdded = append(d.ScriptAdded, e)
			} else {
				d.Entries = append(d.Entries, e)
			}
			return nil
		}})
	if err != nil {
		return fmt.Errorf("unable to read entries: %w", err)
	}

	err = sqlitex.Execute(conn, `SELECT list_id, form_id FROM members ORDER BY list_id, position`,
		&sqlitex.ExecOptions{ResultFunc: func(stmt *sqlite.Stmt) error {
			id, err := column[uint32](stmt, 0)
			if err != nil {
				return fmt.Errorf("member %w", err)
			}
			d, ok := docs[id]
			if !ok {
				return fmt.Errorf("%w: member of missing list %08X", ErrUnresolvedReference, id)
			}
			member, err := column[uint32](stmt, 1)
			if err != nil {
				return fmt.Errorf("form %08X member %w", id, err)
			}
			d.Forms = append(d.Forms, member)
			return nil
		}})
	if err != nil {
		return fmt.Errorf("unable to read members: %w", err)
	}

	for _, id := range order {
		b.add(*docs[id])
	}
	return nil
}
