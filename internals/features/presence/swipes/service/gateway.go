// file: internals/features/presence/swipes/service/gateway.go
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hrportal_backend/internals/configs"
	"hrportal_backend/internals/constants"
	orgModel "hrportal_backend/internals/features/organization/model"
	orgRepo "hrportal_backend/internals/features/organization/repository"
	dailySvc "hrportal_backend/internals/features/presence/daily/service"
	ledgerModel "hrportal_backend/internals/features/presence/ledger/model"
	ledgerSvc "hrportal_backend/internals/features/presence/ledger/service"
)

// SwipeInput: satu event baca badge dari reader.
type SwipeInput struct {
	BadgeTag     string
	RoomNo       string
	LocationName string
}

// ClosedInterval: interval yang ditutup oleh swipe ini.
type ClosedInterval struct {
	IntervalID    uuid.UUID `json:"interval_id"`
	ScopeClass    string    `json:"scope_class"`
	RoomNo        string    `json:"room_no"`
	LocationName  string    `json:"location_name"`
	DurationHours float64   `json:"duration_hours"`
}

// SwipeResult: hasil swipe. Status selalu salah satu kode di constants.Swipe*.
type SwipeResult struct {
	Status           string           `json:"status"`
	EmployeeCode     string           `json:"employee_code,omitempty"`
	RoomNo           string           `json:"room_no"`
	LocationName     string           `json:"location_name"`
	At               time.Time        `json:"at"`
	OpenedIntervalID *uuid.UUID       `json:"opened_interval_id,omitempty"`
	SynthesizedGate  *uuid.UUID       `json:"synthesized_gate_interval_id,omitempty"`
	Closed           []ClosedInterval `json:"closed,omitempty"`
	DailyStatus      string           `json:"daily_status,omitempty"`
	DailyCreated     bool             `json:"daily_created"`
}

// Gateway: mengubah satu swipe menjadi mutasi ledger + kode hasil.
// Satu swipe = satu transaksi; row karyawan di-lock supaya swipe paralel
// untuk karyawan yang sama diproses berurutan.
type Gateway struct {
	DB      *gorm.DB
	Cfg     configs.PresenceConfig
	Ledger  *ledgerSvc.Store
	Deriver *dailySvc.Deriver
	Logger  *zap.Logger
	Clock   func() time.Time
}

func NewGateway(db *gorm.DB, cfg configs.PresenceConfig, ledger *ledgerSvc.Store, deriver *dailySvc.Deriver, logger *zap.Logger) *Gateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		DB:      db,
		Cfg:     cfg,
		Ledger:  ledger,
		Deriver: deriver,
		Logger:  logger.Named("swipe_gateway"),
		Clock:   time.Now,
	}
}

// Ingest memproses satu swipe. unknown_tag / invalid_room adalah hasil normal (err nil);
// error hanya untuk kegagalan storage, dan transaksi di-rollback.
func (g *Gateway) Ingest(ctx context.Context, in SwipeInput) (SwipeResult, error) {
	in.BadgeTag = strings.TrimSpace(in.BadgeTag)
	in.RoomNo = strings.TrimSpace(in.RoomNo)
	in.LocationName = strings.TrimSpace(in.LocationName)

	now := g.Clock().In(g.Cfg.Location)
	res := SwipeResult{RoomNo: in.RoomNo, LocationName: in.LocationName, At: now}

	err := g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		emp, err := orgRepo.FindActiveEmployeeByBadge(tx, in.BadgeTag)
		if err != nil {
			return fmt.Errorf("lookup badge: %w", err)
		}
		if emp == nil {
			res.Status = constants.SwipeUnknownTag
			return g.Ledger.RecordUnmatched(tx, in.BadgeTag, in.RoomNo, in.LocationName, now)
		}
		res.EmployeeCode = emp.EmployeeCode

		isGate := g.Cfg.IsGate(in.RoomNo)
		if !isGate {
			ok, err := orgRepo.RoomExists(tx, in.RoomNo, in.LocationName)
			if err != nil {
				return fmt.Errorf("lookup room: %w", err)
			}
			if !ok {
				res.Status = constants.SwipeInvalidRoom
				reason := fmt.Sprintf("room %q at %q is not registered", in.RoomNo, in.LocationName)
				return g.Ledger.RecordRejected(tx, emp.EmployeeID, in.BadgeTag, in.RoomNo, in.LocationName, reason, now)
			}
		}

		if err := orgRepo.LockEmployee(tx, emp.EmployeeID); err != nil {
			return fmt.Errorf("lock employee: %w", err)
		}

		if isGate {
			err = g.handleGate(tx, emp, in, now, &res)
		} else {
			err = g.handleBlock(tx, emp, in, now, &res)
		}
		if err != nil {
			return err
		}

		summary, created, err := g.Deriver.Derive(tx, emp.EmployeeID, now)
		if err != nil {
			return fmt.Errorf("derive daily status: %w", err)
		}
		res.DailyStatus = summary.AttendanceDailyStatus
		res.DailyCreated = created
		return nil
	})
	if err != nil {
		g.Logger.Error("swipe failed",
			zap.String("badge_tag", in.BadgeTag),
			zap.String("room_no", in.RoomNo),
			zap.String("location_name", in.LocationName),
			zap.Error(err))
		return SwipeResult{}, err
	}

	switch res.Status {
	case constants.SwipeUnknownTag:
		g.Logger.Warn("unknown badge tag", zap.String("badge_tag", in.BadgeTag), zap.String("room_no", in.RoomNo))
	case constants.SwipeInvalidRoom:
		g.Logger.Warn("swipe to unregistered room rejected",
			zap.String("employee_code", res.EmployeeCode),
			zap.String("room_no", in.RoomNo),
			zap.String("location_name", in.LocationName))
	default:
		g.Logger.Debug("swipe handled",
			zap.String("employee_code", res.EmployeeCode),
			zap.String("status", res.Status),
			zap.Bool("daily_created", res.DailyCreated))
	}
	return res, nil
}

// handleGate: tutup block yang masih terbuka, lalu toggle interval gate.
// Interval gate dicatat di lokasi gerbang yang di-swipe.
func (g *Gateway) handleGate(tx *gorm.DB, emp *orgModel.EmployeeModel, in SwipeInput, now time.Time, res *SwipeResult) error {
	block, err := g.Ledger.FindOpen(tx, emp.EmployeeID, constants.ScopeBlock)
	if err != nil {
		return err
	}
	if block != nil {
		if err := g.close(tx, block, now, res); err != nil {
			return err
		}
	}

	gate, err := g.Ledger.FindOpen(tx, emp.EmployeeID, constants.ScopeGate)
	if err != nil {
		return err
	}
	if gate != nil {
		if err := g.close(tx, gate, now, res); err != nil {
			return err
		}
		res.Status = constants.SwipeGateExited
		return nil
	}

	location := in.LocationName
	if location == "" {
		location = g.gateLocation()
	}
	opened, err := g.Ledger.Open(tx, emp.EmployeeID, constants.ScopeGate, g.Cfg.GateRoomNo, location, now)
	if err != nil {
		return err
	}
	res.OpenedIntervalID = &opened.AttendanceIntervalID
	res.Status = constants.SwipeGateEntered
	return nil
}

// handleBlock: pastikan ada gate terbuka, lalu exit/pindah/masuk ruangan.
func (g *Gateway) handleBlock(tx *gorm.DB, emp *orgModel.EmployeeModel, in SwipeInput, now time.Time, res *SwipeResult) error {
	gate, err := g.Ledger.FindOpen(tx, emp.EmployeeID, constants.ScopeGate)
	if err != nil {
		return err
	}
	if gate == nil {
		// gerbang tidak tercatat: pakai lokasi gerbang utama
		synth, err := g.Ledger.Open(tx, emp.EmployeeID, constants.ScopeGate, g.Cfg.GateRoomNo, g.gateLocation(), now)
		if err != nil {
			return err
		}
		res.SynthesizedGate = &synth.AttendanceIntervalID
	}

	block, err := g.Ledger.FindOpen(tx, emp.EmployeeID, constants.ScopeBlock)
	if err != nil {
		return err
	}
	if block != nil {
		if err := g.close(tx, block, now, res); err != nil {
			return err
		}
		if sameRoom(block, in) {
			res.Status = constants.SwipeBlockExited
			return nil
		}
	}

	opened, err := g.Ledger.Open(tx, emp.EmployeeID, constants.ScopeBlock, in.RoomNo, in.LocationName, now)
	if err != nil {
		return err
	}
	res.OpenedIntervalID = &opened.AttendanceIntervalID
	res.Status = constants.SwipeBlockEntered
	return nil
}

func (g *Gateway) close(tx *gorm.DB, iv *ledgerModel.AttendanceIntervalModel, now time.Time, res *SwipeResult) error {
	if err := g.Ledger.Close(tx, iv, now); err != nil {
		return fmt.Errorf("close %s interval: %w", iv.AttendanceIntervalScopeClass, err)
	}
	res.Closed = append(res.Closed, ClosedInterval{
		IntervalID:    iv.AttendanceIntervalID,
		ScopeClass:    iv.AttendanceIntervalScopeClass,
		RoomNo:        iv.AttendanceIntervalRoomNo,
		LocationName:  iv.AttendanceIntervalLocationName,
		DurationHours: *iv.AttendanceIntervalDurationHours,
	})
	return nil
}

func (g *Gateway) gateLocation() string {
	if v := strings.TrimSpace(g.Cfg.GateLocation); v != "" {
		return v
	}
	return "Main Gate"
}

func sameRoom(iv *ledgerModel.AttendanceIntervalModel, in SwipeInput) bool {
	return iv.AttendanceIntervalRoomNo == in.RoomNo && iv.AttendanceIntervalLocationName == in.LocationName
}
