package dotenv

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// override - флаг командной строки, который перекрывает переменную окружения.
type override struct {
	flag  string
	env   string
	usage string
}

var overrides = []override{
	{flag: "port", env: "PORT", usage: "HTTP port (overrides PORT)"},
	{flag: "bidding-window", env: "BIDDING_WINDOW", usage: "bidding window, e.g. 30m (overrides BIDDING_WINDOW)"},
	{flag: "kafka-brokers", env: "KAFKA_BROKERS", usage: "comma separated brokers (overrides KAFKA_BROKERS)"},
}

// Load читает .env (переменные процесса не перетираются) и применяет флаги поверх.
// Флаги разбираются в flag.CommandLine, так что бинарь может объявить свои до вызова.
func Load() error {
	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	return applyOverrides(flag.CommandLine, os.Args[1:])
}

func applyOverrides(fs *flag.FlagSet, args []string) error {
	values := make(map[string]*string, len(overrides))
	for _, o := range overrides {
		if fs.Lookup(o.flag) == nil {
			values[o.env] = fs.String(o.flag, "", o.usage)
		}
	}

	if !fs.Parsed() {
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("parse flags: %w", err)
		}
	}

	for env, value := range values {
		if *value == "" {
			continue
		}
		if err := os.Setenv(env, *value); err != nil {
			return fmt.Errorf("set %s: %w", env, err)
		}
	}
	return nil
}
