package cmd

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hauora/nhi/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts a REST server providing NHI validation",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		sigs := make(chan os.Signal, 1) // channel to receive OS termination/kill/interrupt signal
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		go func() {
			s := <-sigs
			log.Printf("RECEIVED SIGNAL: %s", s)
			os.Exit(1)
		}()
		app := new(server.App)
		app.Router = mux.NewRouter().StrictSlash(true)
		app.SkipChecksum = viper.GetBool("skip-checksum")
		cacheMinutes := viper.GetInt("cacheMinutes")
		if cacheMinutes != 0 {
			app.Cache = cache.New(time.Duration(cacheMinutes)*time.Minute, time.Duration(cacheMinutes*2)*time.Minute)
		}
		app.RegisterRoutes()
		port := viper.GetInt("port")
		log.Printf("starting REST server: port:%d cache:%dm skip-checksum:%v",
			port, cacheMinutes, app.SkipChecksum)
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), app.Router))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.PersistentFlags().Int("port", 8080, "Port to run HTTP server")
	viper.BindPFlag("port", serveCmd.PersistentFlags().Lookup("port"))
	serveCmd.PersistentFlags().Int("cacheMinutes", 5, "cache expiration in minutes, 0=no cache")
	viper.BindPFlag("cacheMinutes", serveCmd.PersistentFlags().Lookup("cacheMinutes"))
}
