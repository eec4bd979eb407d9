package main

import (
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/yeremiapane/shop-dataset/utils"
)

func init() {
	utils.InitLogger()

	// Load .env before anything reads the environment
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debug("no .env file, using the process environment")
	}
}

const usage = `usage: shop-dataset <command> [flags]

commands:
  generate   write a synthetic dataset as CSV (and optionally to the database)
  validate   check a dataset directory or the database
  serve      start the HTTP API
  catalog    print the product type to category mapping

run "shop-dataset <command> -h" for the flags of a command
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var err error
	switch args[0] {
	case "generate":
		err = runGenerate(args[1:], stdout)
	case "validate":
		var passed bool
		passed, err = runValidate(args[1:], stdout)
		if err == nil && !passed {
			return 1
		}
	case "serve":
		err = runServe(args[1:])
	case "catalog":
		err = runCatalog(stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		if err == errUsage {
			return 2
		}
		utils.ErrorLogger.WithError(err).Errorf("%s failed", args[0])
		return 1
	}
	return 0
}
