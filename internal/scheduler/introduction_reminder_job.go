package scheduler

import (
	"strconv"
	"time"

	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/logger"
	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// IntroductionReminderJob 提醒管理员处理积压的对接请求
type IntroductionReminderJob struct {
	db       *gorm.DB
	notifier logic.Notifier
	config   *config.Config
}

// NewIntroductionReminderJob 创建对接请求提醒任务
func NewIntroductionReminderJob(db *gorm.DB, notifier logic.Notifier, cfg *config.Config) *IntroductionReminderJob {
	return &IntroductionReminderJob{
		db:       db,
		notifier: notifier,
		config:   cfg,
	}
}

// GetName 获取任务名称
func (j *IntroductionReminderJob) GetName() string {
	return "introduction_reminder"
}

// GetSchedule 获取调度配置
func (j *IntroductionReminderJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Scheduler.ReminderInterval) * time.Second)
}

// Execute 执行任务
func (j *IntroductionReminderJob) Execute() {
	age := time.Duration(j.config.Scheduler.ReminderAgeHours) * time.Hour
	cutoff := time.Now().Add(-age)

	var stale []model.IntroductionRequestModel
	err := j.db.Where("status = ? AND created_at < ?", model.IntroductionStatusRequested, cutoff).
		Find(&stale).Error
	if err != nil {
		logger.Error("Failed to fetch stale introduction requests: %v", err)
		return
	}
	if len(stale) == 0 {
		return
	}

	logger.Info("Found %d introduction requests pending for more than %s", len(stale), age)

	if j.config.Auth.AdminEmail != "" && j.notifier != nil {
		j.notifier.Notify("introduction_backlog", j.config.Auth.AdminEmail, map[string]string{
			"count": strconv.Itoa(len(stale)),
		})
	}
}
