package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuropoly/bibsync/internal/ccv"
	"github.com/neuropoly/bibsync/internal/config"
	"github.com/neuropoly/bibsync/internal/roster"
)

var (
	asteriskRoster string
	asteriskAppend []string
	asteriskOutput string
)

func init() {
	asteriskCmd.Flags().StringVar(&asteriskRoster, "roster", "", "Student roster file (default from config)")
	asteriskCmd.Flags().StringSliceVar(&asteriskAppend, "append-name", nil, "Treat this name as a student for this run only")
	asteriskCmd.Flags().StringVarP(&asteriskOutput, "output", "o", "", "Output XML file (default: overwrite input)")
	rootCmd.AddCommand(asteriskCmd)
}

var asteriskCmd = &cobra.Command{
	Use:   "asterisk <ccv.xml>",
	Short: "Mark student authors with an asterisk in a CCV XML export",
	Long: `Append an asterisk to every roster member's name in the Authors
fields of a CCV export. Existing asterisks are stripped first, so
rerunning never doubles them.

--append-name extends the roster for this run only; the roster file is
never modified.

Examples:
  bibsync asterisk ccv.xml
  bibsync asterisk ccv.xml --append-name 'Nguyen D' -o ccv-marked.xml`,
	Args: cobra.ExactArgs(1),
	RunE: runAsterisk,
}

func runAsterisk(cmd *cobra.Command, args []string) error {
	rosterPath := asteriskRoster
	if rosterPath == "" {
		cfg, _ := config.LoadGlobalConfig()
		rosterPath = cfg.RosterFile
	}
	if rosterPath == "" {
		exitWithError(ExitConfigError, "no roster configured; pass --roster or set roster_file in config")
	}

	students, err := roster.Load(rosterPath)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if len(asteriskAppend) > 0 {
		students = students.With(asteriskAppend...)
	}

	doc, err := ccv.Open(args[0])
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	changed := roster.MarkCCVAuthors(doc, students)

	output := asteriskOutput
	if output == "" {
		output = args[0]
	}
	if err := ccv.Save(doc, output); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	fmt.Printf("Marked %d author list(s) -> %s\n", changed, output)
	return nil
}
