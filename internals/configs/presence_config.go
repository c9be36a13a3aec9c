package configs

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"hrportal_backend/internals/helpers/dbtime"
)

// PresenceConfig: semua knob presence engine, dibaca dari ENV PRESENCE_*.
type PresenceConfig struct {
	Location       *time.Location
	GateRoomNo     string
	GateLocation   string
	LateAfter      dbtime.Tod
	LeaderGrace    dbtime.Tod
	LeaderSchedule string
	SweepSchedule  string

	// Open question: saat tim tidak punya kandidat, pointer acting leader dikosongkan (true)
	// atau dibiarkan untuk review manual (false, default).
	ClearWhenLeaderless bool
	LeaderWorkers       int
	RecentLogLimit      int
	ReaderKey           string
}

// DefaultPresenceConfig: nilai bawaan (dipakai juga di test).
func DefaultPresenceConfig() PresenceConfig {
	late, _ := dbtime.Parse("09:30:00")
	return PresenceConfig{
		Location:       dbtime.LoadLocation("Asia/Jakarta"),
		GateRoomNo:     "77",
		GateLocation:   "Main Gate",
		LateAfter:      late,
		LeaderGrace:    late,
		LeaderSchedule: "@every 5m",
		SweepSchedule:  "59 23 * * *",
		LeaderWorkers:  4,
		RecentLogLimit: 10,
	}
}

// LoadPresenceConfig membaca ENV; nilai invalid → default + warning (tidak fatal).
func LoadPresenceConfig(logger *zap.Logger) PresenceConfig {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := DefaultPresenceConfig()

	if v := strings.TrimSpace(GetEnv("PRESENCE_TIMEZONE")); v != "" {
		if loc, err := time.LoadLocation(v); err == nil {
			cfg.Location = loc
		} else {
			logger.Warn("invalid PRESENCE_TIMEZONE, keeping default", zap.String("value", v), zap.Error(err))
		}
	}
	if v := strings.TrimSpace(GetEnv("PRESENCE_GATE_ROOM_NO")); v != "" {
		cfg.GateRoomNo = v
	}
	if v := strings.TrimSpace(GetEnv("PRESENCE_GATE_LOCATION")); v != "" {
		cfg.GateLocation = v
	}
	cfg.LateAfter = envTod(logger, "PRESENCE_LATE_AFTER", cfg.LateAfter)
	cfg.LeaderGrace = envTod(logger, "PRESENCE_LEADER_GRACE", cfg.LeaderGrace)
	if v := strings.TrimSpace(GetEnv("PRESENCE_LEADER_SCHEDULE")); v != "" {
		cfg.LeaderSchedule = v
	}
	if v := strings.TrimSpace(GetEnv("PRESENCE_SWEEP_SCHEDULE")); v != "" {
		cfg.SweepSchedule = v
	}
	if v := strings.TrimSpace(GetEnv("PRESENCE_LEADER_CLEAR_WHEN_LEADERLESS")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ClearWhenLeaderless = b
		} else {
			logger.Warn("invalid PRESENCE_LEADER_CLEAR_WHEN_LEADERLESS", zap.String("value", v))
		}
	}
	cfg.LeaderWorkers = envPositiveInt(logger, "PRESENCE_LEADER_WORKERS", cfg.LeaderWorkers)
	cfg.RecentLogLimit = envPositiveInt(logger, "PRESENCE_RECENT_LOG_LIMIT", cfg.RecentLogLimit)
	cfg.ReaderKey = strings.TrimSpace(GetEnv("PRESENCE_READER_KEY"))

	return cfg
}

// IsGate: room number sentinel gerbang kampus?
func (c PresenceConfig) IsGate(roomNo string) bool {
	return strings.TrimSpace(roomNo) == c.GateRoomNo
}

func envTod(logger *zap.Logger, key string, def dbtime.Tod) dbtime.Tod {
	v := strings.TrimSpace(GetEnv(key))
	if v == "" {
		return def
	}
	tod, err := dbtime.Parse(v)
	if err != nil {
		logger.Warn("invalid time of day, keeping default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return tod
}

func envPositiveInt(logger *zap.Logger, key string, def int) int {
	v := strings.TrimSpace(GetEnv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		logger.Warn("invalid positive int, keeping default", zap.String("key", key), zap.String("value", v))
		return def
	}
	return n
}
