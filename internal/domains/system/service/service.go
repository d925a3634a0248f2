package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"seatwise/config"
	"seatwise/infras/otel"
	"seatwise/internal/domains/system/model"
	"seatwise/internal/domains/system/model/dto"
	"seatwise/internal/domains/system/repository"
	"seatwise/shared"
	"seatwise/shared/cache"
	"seatwise/shared/constant"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeySystem      = "system"
	cacheKeyMaintenance = "maintenance"

	backupTimeFormat = "20060102-150405"
)

type System interface {
	GetSettings(ctx context.Context) (dto.SettingsResponse, error)
	UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (dto.SettingsResponse, error)
	Backup(ctx context.Context) (dto.BackupResponse, error)
}

type serviceImpl struct {
	repo  repository.System
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.System, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) System {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetSettings(ctx context.Context) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	settings, err := s.getOrCreate(ctx)
	if err != nil {
		return res, err
	}

	res.FromModel(settings)

	return res, nil
}

// UpdateSettings persists the changed fields and mirrors the maintenance
// flag into the cache so the maintenance middleware sees it without a
// database round trip.
func (s *serviceImpl) UpdateSettings(ctx context.Context, req dto.UpdateSettingsRequest) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateSettings")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	settings, err := s.getOrCreate(ctx)
	if err != nil {
		return res, err
	}

	filter := shared.FilterByID(settings.ID, model.FieldID, model.TableName)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update system settings")

		return res, fmt.Errorf("failed to update system settings: %w", err)
	}

	settings, err = s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload system settings")

		return res, fmt.Errorf("failed to reload system settings: %w", err)
	}

	maintenanceKey := shared.BuildCacheKey(cacheKeySystem, cacheKeyMaintenance)
	if err = s.cache.Save(ctx, maintenanceKey, settings.MaintenanceMode, 0); err != nil {
		log.Error().Err(err).Msg("failed to save maintenance flag to cache")

		return res, fmt.Errorf("failed to save maintenance flag to cache: %w", err)
	}

	res.FromModel(settings)

	return res, nil
}

// Backup shells out to pg_dump and writes a timestamped dump into the
// configured backup directory.
func (s *serviceImpl) Backup(ctx context.Context) (res dto.BackupResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Backup")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = os.MkdirAll(s.cfg.Backup.Directory, 0o755); err != nil {
		log.Error().Err(err).Msg("failed to create backup directory")

		return res, fmt.Errorf("failed to create backup directory: %w", err)
	}

	pgDump := s.cfg.Backup.PgDumpPath
	if pgDump == constant.Empty {
		pgDump = "pg_dump"
	}

	db := s.cfg.DB.Postgres.Write
	file := filepath.Join(s.cfg.Backup.Directory,
		fmt.Sprintf("%s-%s.sql", db.Name, timezone.Now().Format(backupTimeFormat)))

	cmd := exec.CommandContext(ctx, pgDump,
		"--host", db.Host,
		"--port", db.Port,
		"--username", db.Username,
		"--dbname", db.Name,
		"--file", file,
		"--format", "plain",
		"--no-owner",
	)
	cmd.Env = append(os.Environ(), "PGPASSWORD="+db.Password)

	if output, err := cmd.CombinedOutput(); err != nil {
		log.Error().Err(err).Str("output", string(output)).Msg("pg_dump failed")

		return res, fmt.Errorf("pg_dump failed: %w", err)
	}

	log.Info().Str("file", file).Msg("database backup completed")

	res.File = file
	res.CompletedAt = timezone.Format(timezone.Now(), constant.DateFormat)

	return res, nil
}

// getOrCreate returns the singleton settings row, seeding defaults on first
// use.
func (s *serviceImpl) getOrCreate(ctx context.Context) (model.Settings, error) {
	filter := shared.FilterByID(model.SingletonID, model.FieldID, model.TableName)

	settings, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get system settings")

		return settings, fmt.Errorf("failed to get system settings: %w", err)
	}

	if settings.ID != constant.Empty {
		return settings, nil
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	settings = defaultSettings(user)

	if err = s.repo.Insert(ctx, settings); err != nil {
		log.Error().Err(err).Msg("failed to seed system settings")

		return settings, fmt.Errorf("failed to seed system settings: %w", err)
	}

	return settings, nil
}

func defaultSettings(user string) model.Settings {
	return model.Settings{
		ID:                       model.SingletonID,
		MaintenanceMode:          false,
		MinBookingMinutes:        30,
		MaxBookingMinutes:        480,
		AdvanceWindowDays:        30,
		CancellationGraceMinutes: 60,
		CancellationPenaltyPct:   10,
		NotifyEmail:              true,
		NotifySMS:                false,
		Currency:                 "USD",
		TaxRatePercent:           0,
		LateFee:                  0,
		SessionTimeoutMinutes:    60,
		PasswordMinLength:        8,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}
