package database

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var C *gorm.DB

// ErrNotConfigured is returned by archive operations when no database.dsn is set.
var ErrNotConfigured = errors.New("snapshot archive is not configured")

func Enabled() bool {
	return C != nil
}

func NewSource() error {
	dsn := viper.GetString("database.dsn")
	if len(dsn) == 0 {
		return ErrNotConfigured
	}

	dialector := postgres.Open(dsn)
	source, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: viper.GetString("database.prefix"),
		},
		Logger: logger.New(&log.Logger, logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			Colorful:      true,
			LogLevel:      lo.Ternary(viper.GetBool("debug.database"), logger.Info, logger.Silent),
		}),
	})
	if err != nil {
		return err
	}

	C = source
	return nil
}

func RetentionDays() int {
	return viper.GetInt("records.retention_days")
}
