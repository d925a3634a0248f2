package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	b64 "encoding/base64"
	"fmt"

	"seatwise/config"
	"seatwise/infras/otel"
	"seatwise/infras/s3"
	"seatwise/internal/domains/student/model"
	"seatwise/internal/domains/student/model/dto"
	"seatwise/internal/domains/student/repository"
	"seatwise/shared"
	"seatwise/shared/base64"
	"seatwise/shared/cache"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	"seatwise/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetStudent    = "student:get"
	cacheGetAllStudent = "student:gets"
	cacheCountStudent  = "student:count"

	idProofDirectory = "students/id-proofs"
)

type Student interface {
	Create(ctx context.Context, req dto.CreateStudentRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetStudentsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.StudentResponse, error)
	Update(ctx context.Context, req dto.UpdateStudentRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Student
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Student, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Student {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateStudentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	emailFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    req.Email,
				Table:    model.TableName,
			},
		},
	}

	exists, err := s.repo.Exist(ctx, emailFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if student exists")

		return fmt.Errorf("failed to check if student exists: %w", err)
	}

	if exists {
		return failure.BadRequestFromString("email already registered")
	}

	var idProofURL *string

	if req.IDProof != constant.Empty {
		url, err := s.uploadIDProof(ctx, req.IDProof)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload id proof")

			return fmt.Errorf("failed to upload id proof: %w", err)
		}

		idProofURL = &url
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, idProofURL)); err != nil {
		log.Error().Err(err).Msg("failed to create student")

		return fmt.Errorf("failed to create student: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllStudent)
		shared.InvalidateCaches(c, s.cache, cacheCountStudent)
	}()

	return nil
}

func (s *serviceImpl) uploadIDProof(ctx context.Context, idProof string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".uploadIDProof")
	defer scope.End()
	defer scope.TraceIfError(err)

	contentType := base64.GetContentType(idProof)

	fileData, err := b64.StdEncoding.DecodeString(base64.StripPrefix(idProof))
	if err != nil {
		return constant.Empty, failure.BadRequestFromString("invalid base64 id proof")
	}

	fileName := uuid.NewString()

	return s.s3.UploadFileBytes(ctx, constant.Empty, idProofDirectory, fileName, contentType, fileData)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetStudentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllStudent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for students")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count students")

		return res, fmt.Errorf("failed to count students: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get students")

		return res, fmt.Errorf("failed to get students: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save students to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountStudent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for student count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count students")

		return res, fmt.Errorf("failed to count students: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save student count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.StudentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetStudent, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for student")

		return res, nil
	}

	student, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get student")

		return res, fmt.Errorf("failed to get student: %w", err)
	}

	if student.ID == constant.Empty {
		return res, failure.NotFound("student not found")
	}

	res.FromModel(student)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save student to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateStudentRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateStudentRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if student exists")

		return fmt.Errorf("failed to check if student exists: %w", err)
	}

	if !exist {
		return failure.NotFound("student not found")
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update student")

		return fmt.Errorf("failed to update student: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetStudent, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete student from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllStudent)
		shared.InvalidateCaches(c, s.cache, cacheCountStudent)
	}()

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	student, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get student")

		return fmt.Errorf("failed to get student: %w", err)
	}

	if student.ID == constant.Empty {
		return failure.NotFound("student not found")
	}

	if err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete student")

		return fmt.Errorf("failed to delete student: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if student.IDProofURL != nil {
			bucket := s.cfg.External.S3.BucketName
			objectName := s.s3.GetObjectNameFromURL(bucket, *student.IDProofURL)

			if objectName != constant.Empty {
				if err := s.s3.DeleteFile(c, bucket, constant.Empty, objectName); err != nil {
					log.Error().Err(err).Msg("failed to delete id proof from S3")
				}
			}
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetStudent, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete student from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllStudent)
		shared.InvalidateCaches(c, s.cache, cacheCountStudent)
	}()

	return nil
}
