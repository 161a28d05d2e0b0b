package main

import (
	"fmt"
	"strings"

	"github.com/geodesk/geodesk/internal/ioexec"
	"github.com/geodesk/geodesk/pkg/config"
	"github.com/geodesk/geodesk/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

func getExecCmd() *cobra.Command {
	var (
		showProgress bool
		jsonErrors   bool
	)

	execCmd := &cobra.Command{
		Use:   "exec <command line>",
		Short: "Run one geodesk command and print its JSON result",
		Long: `Exec runs one line of the geodesk command surface and prints the
result as JSON. The line can be given as a single quoted argument or as
separate shell words; words containing spaces are re-quoted before
parsing.

Examples:
  geodesk exec 'ingest city.duck places.csv'
  geodesk exec schema city.duck raw_staging
  geodesk exec geocode city.duck "400 Broad St, Seattle, WA"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Update([]config.Option{
				config.OptGeocoderShowProgress(showProgress),
			})

			ex := ioexec.New(cfg)
			defer ex.Close()

			line, err := requote(args)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			if jsonErrors {
				fmt.Println(ex.ExecuteJSON(cmd.Context(), line))
				return nil
			}

			out, err := ex.Execute(cmd.Context(), line)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	execCmd.Flags().BoolVarP(&showProgress, "progress", "p", false,
		"show a progress bar for external geocoding batches")
	execCmd.Flags().BoolVar(&jsonErrors, "json-errors", false,
		"render failures as a JSON error object instead of exiting non-zero")

	return execCmd
}

// requote reassembles shell words into one command line. The shell has
// already stripped quoting, so words with whitespace get it back before
// the line is tokenized again.
func requote(args []string) (string, error) {
	words := make([]string, len(args))
	for i, a := range args {
		w, err := quoteWord(a)
		if err != nil {
			return "", err
		}
		words[i] = w
	}
	return strings.Join(words, " "), nil
}

// quoteWord wraps a word in whichever quote character it does not contain.
// The command grammar has no escape sequences, so a word holding both quote
// characters cannot be represented and is rejected instead of emitting a
// line that tokenizes wrong.
func quoteWord(w string) (string, error) {
	if w != "" && !strings.ContainsAny(w, " \t\"'") {
		return w, nil
	}
	if !strings.Contains(w, `"`) {
		return `"` + w + `"`, nil
	}
	if !strings.Contains(w, "'") {
		return "'" + w + "'", nil
	}
	return "", &gn.Error{
		Code: errcode.ParseError,
		Msg:  "Argument <em>%s</em> mixes single and double quotes; use one kind",
		Vars: []any{w},
		Err:  fmt.Errorf("argument %q mixes single and double quotes", w),
	}
}
