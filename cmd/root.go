/*
Package cmd supports the command-line interface for the nhi utility.

Copyright © 2023 Hauora Informatics

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

// Version is injected by main at startup
var Version string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nhi",
	Short: "nhi validates New Zealand National Health Index identifiers",
	Long: `
nhi validates New Zealand National Health Index (NHI) identifiers against the
two published formats, normalizing them to their canonical uppercase form and
verifying their check digits. It can validate identifiers at the command-line
or serve validation over a small REST API for form renderers needing
server-side validation or input pattern hints.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logfile := viper.GetString("log"); logfile != "" {
			f, err := os.OpenFile(logfile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
			if err != nil {
				log.Fatalf("fatal error: couldn't open log file ('%s'): %s", logfile, err)
			}
			log.SetOutput(f)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.nhi.yaml)")

	rootCmd.PersistentFlags().String("log", "", "Log file to use")
	viper.BindPFlag("log", rootCmd.PersistentFlags().Lookup("log"))

	rootCmd.PersistentFlags().Bool("skip-checksum", false, "Validate structure only, skipping check digit verification (for test fixtures)")
	viper.BindPFlag("skip-checksum", rootCmd.PersistentFlags().Lookup("skip-checksum"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".nhi" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".nhi")
	}

	viper.SetEnvPrefix("NHI")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
