package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/onboarder/internal/flagx"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every variable name in Config's env tags.
const EnvPrefix = "ONBOARDER_"

const defaultEnvFile = ".env"

// parseEnv overlays Config with ONBOARDER_* environment variables.
//
// A dotenv file is loaded first: the one named by -e/-env-file, or ".env" in
// the working directory. Variables already present in the environment win
// over the file. A missing ".env" is ignored; a missing file that was asked
// for explicitly is an error.
//
// Panics on errors, like the other loaders.
func parseEnv(cfg *Config) {
	file := flagx.EnvFileFlags()
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	if err := godotenv.Load(file); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
