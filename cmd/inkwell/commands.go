package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/dshills/inkwell/internal/app"
	"github.com/dshills/inkwell/internal/config"
	"github.com/dshills/inkwell/internal/engine/document"
	"github.com/dshills/inkwell/internal/renderer/ansi"
	"github.com/dshills/inkwell/internal/renderer/terminal"
	"github.com/dshills/inkwell/internal/snapshot"
	"github.com/dshills/inkwell/internal/store"
)

// globalOptions are the flags shared by every command. Flags override the
// config file and environment.
type globalOptions struct {
	configPath string
	storeKind  string
	storePath  string
	document   string
	logLevel   string
}

func (o *globalOptions) addFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "Path to a configuration file (TOML or YAML).")
	f.StringVar(&o.storeKind, "store", "", "Document store: diskv, file or memory.")
	f.StringVar(&o.storePath, "path", "", "Store location: a directory for diskv, a JSON file for file.")
	f.StringVarP(&o.document, "document", "d", "", "Document name within a diskv store.")
	f.StringVar(&o.logLevel, "log-level", "", "Log level (debug, info, warn, error).")
}

// loadConfig reads the configuration and applies flag overrides.
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var opts []config.Option
	if o.configPath != "" {
		opts = append(opts, config.WithPaths(o.configPath))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Kind = o.storeKind
	}
	if flags.Changed("path") {
		cfg.Store.Path = o.storePath
	}
	if flags.Changed("document") {
		cfg.Store.Name = o.document
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// logOutput returns where session logs go: the configured file, or
// fallback.
func logOutput(cfg *config.Config, fallback io.Writer) (io.Writer, func(), error) {
	if cfg.Logging.File == "" {
		return fallback, func() {}, nil
	}
	f, err := app.OpenLogFile(cfg.Logging.File)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// openSession builds a session from the config and loads the stored
// document.
func openSession(cmd *cobra.Command, cfg *config.Config, fallback io.Writer) (*app.Session, func(), error) {
	out, closeLog, err := logOutput(cfg, fallback)
	if err != nil {
		return nil, nil, err
	}
	session, err := app.NewFromConfig(cfg, out)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	if err := session.LoadOrNew(cmd.Context()); err != nil {
		closeLog()
		return nil, nil, err
	}
	return session, closeLog, nil
}

func newRootCommand() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:           "inkwell",
		Short:         "A rich-text editor with markdown-style autocorrect.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	g.addFlags(cmd)

	addEdit(cmd, g)
	addShow(cmd, g)
	addExport(cmd, g)
	addImport(cmd, g)
	addList(cmd, g)
	addVersion(cmd)
	return cmd
}

func addEdit(topLevel *cobra.Command, g *globalOptions) {
	readOnly := false
	watch := true

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the stored document in the terminal editor.",
		Example: `
inkwell edit
inkwell edit --store file --path notes.json
inkwell edit --read-only
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if readOnly {
				cfg.Dispatcher.ReadOnly = true
			}

			session, closeLog, err := openSession(cmd, cfg, io.Discard)
			if err != nil {
				return err
			}
			defer closeLog()

			opts := terminal.Options{
				Keymap:   cfg.Keymap,
				ReadOnly: cfg.Dispatcher.ReadOnly,
			}
			if watch && store.Kind(cfg.Store.Kind) == store.KindFile {
				changes, err := store.NewFileStore(cfg.Store.Path).Watch(cmd.Context())
				if err != nil {
					return err
				}
				opts.Changes = changes
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			return terminal.New(screen, session, opts).Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&readOnly, "read-only", "R", false, "Open the document read-only.")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload a file store when it changes on disk.")
	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command, g *globalOptions) {
	showKeys := false
	noColor := false

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored document with its styles.",
		Example: `
inkwell show
inkwell show --keys --no-color
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			session, closeLog, err := openSession(cmd, cfg, color.Error)
			if err != nil {
				return err
			}
			defer closeLog()

			p := ansi.New(cmd.OutOrStdout())
			p.ShowKeys = showKeys
			p.NoColor = noColor || color.NoColor
			return p.Print(session.State().Document())
		},
	}

	cmd.Flags().BoolVar(&showKeys, "keys", false, "Prefix every block with its key.")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
	topLevel.AddCommand(cmd)
}

// Export and import formats.
const (
	formatSnapshot = "snapshot"
	formatRaw      = "raw"
	formatText     = "text"
)

func addExport(topLevel *cobra.Command, g *globalOptions) {
	format := formatSnapshot

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored document to stdout.",
		Long: `Write the stored document to stdout.

Formats:
snapshot: the versioned JSON snapshot
raw: draft-js raw content
text: plain text, one block per line`,
		Example: `
inkwell export > doc.json
inkwell export --format raw
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			session, closeLog, err := openSession(cmd, cfg, color.Error)
			if err != nil {
				return err
			}
			defer closeLog()

			data, err := encode(session.State().Document(), format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSnapshot, "Output format: snapshot, raw or text.")
	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command, g *globalOptions) {
	format := formatSnapshot

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the stored document with the contents of FILE.",
		Example: `
inkwell import doc.json
inkwell import --format text notes.txt
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			doc, err := decode(data, format)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			st, err := store.Open(store.Kind(cfg.Store.Kind), cfg.Store.Path, cfg.Store.Name)
			if err != nil {
				return err
			}
			if err := st.Save(cmd.Context(), snapshot.Serialize(doc)); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d blocks\n", doc.Len())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSnapshot, "Input format: snapshot, raw or text.")
	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command, g *globalOptions) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the documents in a diskv store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			if store.Kind(cfg.Store.Kind) != store.KindDiskv {
				return fmt.Errorf("list needs a diskv store, not %q", cfg.Store.Kind)
			}

			st := store.NewDiskvStore(cfg.Store.Path, cfg.Store.Name)
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow("NAME", "BLOCKS", "CURRENT")
			for _, name := range st.List(cmd.Context()) {
				blocks := "?"
				if snap, err := st.WithName(name).Load(cmd.Context()); err == nil {
					blocks = strconv.Itoa(len(snap.Blocks))
				}
				current := ""
				if name == st.Name() {
					current = "*"
				}
				tbl.AddRow(name, blocks, current)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return err
		},
	}
	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the inkwell version.",
		Example: `
inkwell version
inkwell version --short
`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			resp := goversion.FuncWithOutput(shortened, version, commit, date, output)
			fmt.Fprint(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")
	topLevel.AddCommand(cmd)
}

var errUnknownFormat = errors.New("unknown format")

func encode(doc document.Document, format string) ([]byte, error) {
	switch format {
	case formatSnapshot:
		return snapshot.Marshal(doc)
	case formatRaw:
		return snapshot.MarshalRaw(doc)
	case formatText:
		return []byte(doc.PlainText() + "\n"), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

func decode(data []byte, format string) (document.Document, error) {
	switch format {
	case formatSnapshot:
		return snapshot.Unmarshal(data)
	case formatRaw:
		return snapshot.UnmarshalRaw(data)
	case formatText:
		return document.FromText(strings.TrimSuffix(string(data), "\n")), nil
	default:
		return document.Document{}, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
