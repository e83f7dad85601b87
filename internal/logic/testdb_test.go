package logic

import (
	"testing"

	"github.com/fundbridge/dealroom/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// newTestDB 打开内存数据库并建表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// 内存库随连接销毁，限制为单连接
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.AccountModel{},
		&model.StartupModel{},
		&model.DocumentModel{},
		&model.DealRoomModel{},
		&model.DealRoomStartupModel{},
		&model.DealRoomInvestorModel{},
		&model.VisibilityConfigModel{},
		&model.IntroductionRequestModel{},
		&model.AuditLogModel{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string, role model.AccountRole) *model.AccountModel {
	t.Helper()

	account := &model.AccountModel{
		Email:        email,
		PasswordHash: "x",
		Name:         email,
		Role:         role,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed account %s: %v", email, err)
	}
	return account
}

func seedStartup(t *testing.T, db *gorm.DB, owner *model.AccountModel, name string) *model.StartupModel {
	t.Helper()

	startup := &model.StartupModel{
		AccountId:   owner.Id,
		CompanyName: name,
		Website:     "https://" + name + ".example",
		HQ:          "Berlin",
		Stage:       "seed",
		Sector:      "fintech",
		Status:      model.StartupStatusSubmitted,
	}
	if err := db.Create(startup).Error; err != nil {
		t.Fatalf("failed to seed startup %s: %v", name, err)
	}
	return startup
}

// seedRoom 建一个交易室并把投资人和创业公司都拉进去
func seedRoom(t *testing.T, db *gorm.DB, admin *model.AccountModel, investor *model.AccountModel, startup *model.StartupModel) *model.DealRoomModel {
	t.Helper()

	room := &model.DealRoomModel{Name: "Seed Fund Portfolio", CreatedBy: admin.Id}
	if err := db.Create(room).Error; err != nil {
		t.Fatalf("failed to seed deal room: %v", err)
	}
	if startup != nil {
		link := &model.DealRoomStartupModel{DealRoomId: room.Id, StartupId: startup.Id}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("failed to link startup: %v", err)
		}
	}
	if investor != nil {
		link := &model.DealRoomInvestorModel{DealRoomId: room.Id, InvestorId: investor.Id}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("failed to link investor: %v", err)
		}
	}
	return room
}
