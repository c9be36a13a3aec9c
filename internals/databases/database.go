package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hrportal_backend/internals/configs"
	orgModel "hrportal_backend/internals/features/organization/model"
	dailyModel "hrportal_backend/internals/features/presence/daily/model"
	ledgerModel "hrportal_backend/internals/features/presence/ledger/model"
)

var DB *gorm.DB

func ConnectDB(logger *zap.Logger) error {
	logger.Info("🔌 Koneksi ke PostgreSQL...")

	// Catatan: kalau pakai PgBouncer, ganti host/port ke port PgBouncer dan biarkan PreferSimpleProtocol=true
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  configs.BuildDSN("hrportal"),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(logger),
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	DB = db
	logger.Info("✅ DB connected.")
	return nil
}

func TunePool(db *gorm.DB, logger *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("pool tune err", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// WarmUpQueries: isi pool + query ringan yang paling sering dipakai (lookup badge).
func WarmUpQueries(db *gorm.DB, logger *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err == nil {
			var n int64
			err = db.WithContext(ctx).Model(&orgModel.EmployeeModel{}).
				Where("employee_is_active = ?", true).Count(&n).Error
		}
		if err != nil {
			logger.Warn("warm-up err", zap.Error(err))
		}
	}()
}

// Models: semua tabel yang dikelola service ini (urutan = urutan migrate).
func Models() []any {
	return []any{
		&orgModel.EmployeeModel{},
		&orgModel.RoomModel{},
		&orgModel.TeamModel{},
		&orgModel.LeaveRequestModel{},
		&ledgerModel.AttendanceIntervalModel{},
		&ledgerModel.UnmatchedSwipeModel{},
		&ledgerModel.RejectedSwipeModel{},
		&dailyModel.AttendanceDailySummaryModel{},
	}
}

// Migrate: AutoMigrate semua model (termasuk partial unique index interval terbuka).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
