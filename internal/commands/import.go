package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/settled-dev/settled/internal/model"
	"github.com/settled-dev/settled/internal/statement"
)

func newImportCommand() *cobra.Command {
	var account string
	var mappingSpec string
	var fromInbox bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank or card statement export",
		Long: `Import parses a statement export (CSV or Excel), recognizes its
column layout, and stores the normalized transactions. A failed parse
is recorded as a failed statement with a stable reason.

With --from-inbox, every supported file waiting in import/ is imported
and moved to import/processed/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			if fromInbox {
				if len(args) > 0 {
					return fmt.Errorf("--from-inbox takes no file argument")
				}
				return runImportInbox(cmd, e, account, mappingSpec)
			}
			if len(args) != 1 {
				return fmt.Errorf("expected a statement file (or --from-inbox)")
			}
			_, err = runImportFile(cmd, e, args[0], account, mappingSpec)
			return err
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "account label (defaults to the configured account)")
	cmd.Flags().StringVar(&mappingSpec, "map", "", `manual column mapping, e.g. "date=Posted,description=Memo,amount=Value" or debit=/credit= instead of amount=`)
	cmd.Flags().BoolVar(&fromInbox, "from-inbox", false, "import every statement file waiting in import/")

	return cmd
}

func runImportFile(cmd *cobra.Command, e *env, path, account, mappingSpec string) (model.Statement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Statement{}, fmt.Errorf("reading statement file: %w", err)
	}

	opts := statement.Options{DayFirst: e.cfg.Locale.DayFirst()}
	if mappingSpec != "" {
		mapping, err := parseMappingSpec(mappingSpec)
		if err != nil {
			return model.Statement{}, err
		}
		opts.Mapping = &mapping
	}

	if account == "" {
		account = e.cfg.Account.Label
	}
	stmt := model.Statement{
		OriginalFilename: filepath.Base(path),
		AccountLabel:     account,
		UploadedAt:       time.Now().UTC(),
		Status:           model.StatusProcessing,
	}

	res, parseErr := statement.Parse(data, stmt.OriginalFilename, opts)
	if parseErr != nil {
		stmt.Status = model.StatusFailed
		stored, err := e.store().CreateStatement(stmt, nil)
		if err != nil {
			return model.Statement{}, err
		}
		reason := statement.FailureReason(parseErr)
		e.maybeCommit("import: " + stmt.OriginalFilename + " (failed)")
		fmt.Fprintf(cmd.OutOrStdout(), "%s  failed  reason=%s\n", stored.ID, reason)
		return stored, fmt.Errorf("parsing %s (%s): %w", stmt.OriginalFilename, reason, parseErr)
	}

	stmt.Status = model.StatusCompleted
	stmt.FormatName = res.FormatName
	stmt.Mapping = res.Mapping
	stmt.Covered = res.Covered

	stored, err := e.store().CreateStatement(stmt, res.Transactions)
	if err != nil {
		return model.Statement{}, err
	}
	e.maybeCommit("import: " + stmt.OriginalFilename)

	fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %d transactions (%d rows skipped)  %s to %s\n",
		stored.ID, res.FormatName, len(res.Transactions), res.Skipped,
		res.Covered.Start.Format("2006-01-02"), res.Covered.End.Format("2006-01-02"))
	return stored, nil
}

func runImportInbox(cmd *cobra.Command, e *env, account, mappingSpec string) error {
	files, err := statement.ScanInbox(e.dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "inbox is empty")
		return nil
	}

	var failures int
	for _, f := range files {
		if _, err := runImportFile(cmd, e, f.Path, account, mappingSpec); err != nil {
			// Recorded as a failed statement; keep the file in the
			// inbox for inspection and move on.
			e.log.Warn().Str("file", f.Name).Err(err).Msg("import failed")
			failures++
			continue
		}
		if err := statement.MarkProcessed(e.dir, f.Name); err != nil {
			return err
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d inbox files failed", failures, len(files))
	}
	return nil
}

// parseMappingSpec parses "key=Header" pairs separated by commas.
// Keys: date, description (or desc), amount, debit, credit.
func parseMappingSpec(spec string) (model.ColumnMapping, error) {
	var m model.ColumnMapping
	for _, pair := range strings.Split(spec, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || value == "" {
			return model.ColumnMapping{}, fmt.Errorf("invalid mapping pair %q", pair)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "date":
			m.Date = value
		case "description", "desc":
			m.Description = value
		case "amount":
			m.Amount = value
		case "debit":
			m.Debit = value
		case "credit":
			m.Credit = value
		default:
			return model.ColumnMapping{}, fmt.Errorf("unknown mapping key %q", key)
		}
	}
	if !m.Complete() {
		return model.ColumnMapping{}, fmt.Errorf("mapping needs date, description, and amount or debit/credit")
	}
	return m, nil
}
