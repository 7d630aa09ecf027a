package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hauora/nhi/nhi"
)

// validateCmd is the "nhi validate" command for simple checking of NHI identifiers at the command-line
var validateCmd = &cobra.Command{
	Use: "validate <identifier>...",
	Example: `nhi validate ZZZ0016
nhi validate zzz0008 ZZZ00AX
nhi validate --skip-checksum ZZZ0001`,
	Args:  cobra.MinimumNArgs(1),
	Short: "Validate one or more NHI identifiers",
	Long: `Validate one or more NHI identifiers against the published formats,
printing the canonical uppercase form and the detected format for each.
Exits with a non-zero status if any identifier is invalid.`,
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		skipChecksum := viper.GetBool("skip-checksum")
		for _, arg := range args {
			check := nhi.Validate
			if skipChecksum {
				check = nhi.ValidatePattern
			}
			normalized, err := check(arg)
			if err != nil {
				failed = true
				kind := "invalid format"
				if errors.Is(err, nhi.ErrChecksumInvalid) {
					kind = "invalid checksum"
				}
				fmt.Printf("%s: invalid (%s): %v\n", normalized, kind, err)
				continue
			}
			fmt.Printf("%s: valid (%s format)\n", normalized, nhi.DetectFormat(normalized))
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
