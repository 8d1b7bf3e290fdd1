package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// flagOverrides: флаг командной строки -> переменная окружения, которую он перекрывает.
var flagOverrides = []struct {
	flag  string
	env   string
	usage string
}{
	{flag: "port", env: "PORT", usage: "Server port (overrides PORT environment variable)"},
	{flag: "assignment-timeout", env: "DISPATCH_ASSIGNMENT_TIMEOUT", usage: "Offer timeout, e.g. 60s (overrides DISPATCH_ASSIGNMENT_TIMEOUT)"},
}

// Load подгружает переменные из существующих файлов filenames (уже
// выставленные переменные не перетираются), затем применяет флаги из args.
// Возвращает список реально прочитанных файлов.
func Load(args []string, filenames ...string) ([]string, error) {
	loaded := make([]string, 0, len(filenames))
	for _, name := range filenames {
		err := godotenv.Load(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return loaded, fmt.Errorf("load %s: %w", name, err)
		}
		loaded = append(loaded, name)
	}

	flags := flag.NewFlagSet("dispatcher", flag.ContinueOnError)
	values := make([]*string, len(flagOverrides))
	for i, o := range flagOverrides {
		values[i] = flags.String(o.flag, "", o.usage)
	}
	if err := flags.Parse(args); err != nil {
		return loaded, fmt.Errorf("parse flags: %w", err)
	}

	for i, o := range flagOverrides {
		if *values[i] == "" {
			continue
		}
		if err := os.Setenv(o.env, *values[i]); err != nil {
			return loaded, fmt.Errorf("failed to set %s environment variable: %w", o.env, err)
		}
	}
	return loaded, nil
}
