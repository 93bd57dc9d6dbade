package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

// Setup applies the logging section of the settings to the global logger.
// When logging.file is set the console output is teed into a rotating file.
func Setup() {
	level, err := zerolog.ParseLevel(viper.GetString("logging.level"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stdout}
	if file := viper.GetString("logging.file"); len(file) > 0 {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    viper.GetInt("logging.max_size_mb"),
			MaxBackups: viper.GetInt("logging.max_backups"),
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}
