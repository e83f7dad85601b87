package scheduler

import (
	"time"

	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/logger"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// IntakeDigestJob 周期性输出申请受理概况
type IntakeDigestJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewIntakeDigestJob 创建受理概况任务
func NewIntakeDigestJob(db *gorm.DB, cfg *config.Config) *IntakeDigestJob {
	return &IntakeDigestJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *IntakeDigestJob) GetName() string {
	return "intake_digest"
}

// GetSchedule 获取调度配置
func (j *IntakeDigestJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.DigestInterval) * time.Second)
}

// Execute 执行任务
func (j *IntakeDigestJob) Execute() {
	var submitted int64
	err := j.db.Model(&model.StartupModel{}).
		Where("status = ?", model.StartupStatusSubmitted).
		Count(&submitted).Error
	if err != nil {
		logger.Error("Failed to count submitted applications: %v", err)
		return
	}

	var inReview int64
	err = j.db.Model(&model.StartupModel{}).
		Where("status = ?", model.StartupStatusInReview).
		Count(&inReview).Error
	if err != nil {
		logger.Error("Failed to count in-review applications: %v", err)
		return
	}

	logger.Info("Intake digest: %d applications awaiting triage, %d in review", submitted, inReview)
}
