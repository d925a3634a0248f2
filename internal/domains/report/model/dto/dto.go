package dto

import (
	"encoding/json"
	"time"

	"seatwise/internal/domains/report/model"
	"seatwise/shared"
	"seatwise/shared/constant"
	gDto "seatwise/shared/dto"
	gModel "seatwise/shared/model"
	"seatwise/shared/timezone"

	"github.com/google/uuid"
)

type Period struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02"`
	End   string `json:"end"   validate:"required,datetime=2006-01-02"`
}

type GenerateReportRequest struct {
	Type    string            `json:"type"    validate:"required,oneof=attendance revenue utilization activity trends performance"`
	Format  string            `json:"format"  validate:"omitempty,oneof=json csv excel pdf"`
	Period  Period            `json:"period"  validate:"required"`
	Filters map[string]string `json:"filters" validate:"omitempty"`
}

func (c *GenerateReportRequest) ToModel(user string, start, end time.Time) model.Report {
	format := model.FormatJSON
	if c.Format != "" {
		format = c.Format
	}

	return model.Report{
		ID:          uuid.NewString(),
		Type:        c.Type,
		Format:      format,
		Status:      model.StatusPending,
		PeriodStart: start,
		PeriodEnd:   end,
		GeneratedBy: user,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ReportResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Format      string          `json:"format"`
	Status      string          `json:"status"`
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Data        json.RawMessage `json:"data,omitempty"`
	DownloadURL *string         `json:"download_url,omitempty"`
	GeneratedBy string          `json:"generated_by"`
	Error       *string         `json:"error,omitempty"`
	gDto.Metadata
}

func (r *ReportResponse) FromModel(model model.Report) {
	r.ID = model.ID
	r.Type = model.Type
	r.Format = model.Format
	r.Status = model.Status
	r.PeriodStart = timezone.Format(model.PeriodStart, constant.DateOnlyFormat)
	r.PeriodEnd = timezone.Format(model.PeriodEnd, constant.DateOnlyFormat)
	r.Data = model.Data
	r.DownloadURL = model.DownloadURL
	r.GeneratedBy = model.GeneratedBy
	r.Error = model.Error
	r.Metadata.FromModel(model.Metadata)
}

type GetReportsResponse struct {
	Reports   []ReportResponse `json:"reports"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReportsResponse) FromModels(models []model.Report, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reports = make([]ReportResponse, len(models))
	for i, m := range models {
		r.Reports[i].FromModel(m)
	}
}
