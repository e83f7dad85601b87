package logic

import (
	"errors"
	"testing"

	"github.com/fundbridge/dealroom/internal/model"
)

func TestCreateStartupOnePerAccount(t *testing.T) {
	db := newTestDB(t)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startupLogic := NewStartupLogic(db, nil)

	first := &model.StartupModel{CompanyName: "Acme"}
	if err := startupLogic.CreateStartup(owner, first); err != nil {
		t.Fatalf("first application failed: %v", err)
	}
	if first.Status != model.StartupStatusDraft {
		t.Errorf("new application status = %s, want draft", first.Status)
	}

	second := &model.StartupModel{CompanyName: "Acme Again"}
	err := startupLogic.CreateStartup(owner, second)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("second application error = %v, want ErrConflict", err)
	}

	// 第一份申请不受影响
	var kept model.StartupModel
	if err := db.First(&kept, first.Id).Error; err != nil {
		t.Fatalf("first application vanished: %v", err)
	}
	if kept.CompanyName != "Acme" {
		t.Errorf("first application mutated: %s", kept.CompanyName)
	}
}

func TestCreateStartupValidation(t *testing.T) {
	db := newTestDB(t)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	startupLogic := NewStartupLogic(db, nil)

	err := startupLogic.CreateStartup(owner, &model.StartupModel{CompanyName: "   "})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("blank companyName error = %v, want ErrValidation", err)
	}

	err = startupLogic.CreateStartup(investor, &model.StartupModel{CompanyName: "Acme"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("investor create error = %v, want ErrForbidden", err)
	}
}

func TestSubmitStartup(t *testing.T) {
	db := newTestDB(t)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startupLogic := NewStartupLogic(db, nil)

	if err := startupLogic.CreateStartup(owner, &model.StartupModel{CompanyName: "Acme"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	startup, err := startupLogic.SubmitStartup(owner)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if startup.Status != model.StartupStatusSubmitted {
		t.Errorf("status after submit = %s", startup.Status)
	}

	// 已提交的申请不能再次提交
	if _, err := startupLogic.SubmitStartup(owner); !errors.Is(err, ErrValidation) {
		t.Fatalf("resubmit error = %v, want ErrValidation", err)
	}
}

func TestStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	startupLogic := NewStartupLogic(db, nil)

	if _, err := startupLogic.UpdateStatus(admin, startup.Id, model.StartupStatusInReview); err != nil {
		t.Fatalf("submitted -> in_review failed: %v", err)
	}
	if _, err := startupLogic.UpdateStatus(admin, startup.Id, model.StartupStatusFollowUp); err != nil {
		t.Fatalf("in_review -> follow_up failed: %v", err)
	}
	if _, err := startupLogic.UpdateStatus(admin, startup.Id, model.StartupStatusShortlisted); err != nil {
		t.Fatalf("follow_up -> shortlisted failed: %v", err)
	}

	// 入围是终点，不能再流转
	_, err := startupLogic.UpdateStatus(admin, startup.Id, model.StartupStatusInReview)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("shortlisted -> in_review error = %v, want ErrValidation", err)
	}
}

func TestStatusTransitionSkipRejected(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	startupLogic := NewStartupLogic(db, nil)

	_, err := startupLogic.UpdateStatus(admin, startup.Id, model.StartupStatusShortlisted)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("submitted -> shortlisted error = %v, want ErrValidation", err)
	}
}

func TestUpdateStatusForbiddenForNonAdmin(t *testing.T) {
	db := newTestDB(t)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	startupLogic := NewStartupLogic(db, nil)

	_, err := startupLogic.UpdateStatus(owner, startup.Id, model.StartupStatusInReview)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin status update error = %v, want ErrForbidden", err)
	}

	// 状态保持不变
	var kept model.StartupModel
	if err := db.First(&kept, startup.Id).Error; err != nil {
		t.Fatal(err)
	}
	if kept.Status != model.StartupStatusSubmitted {
		t.Errorf("status changed to %s despite authorization failure", kept.Status)
	}
}

func TestSetScoresAggregate(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	startupLogic := NewStartupLogic(db, nil)

	cases := []struct {
		team, market, traction, product int
		overall                         int
	}{
		{90, 80, 85, 85, 85},
		{0, 0, 0, 0, 0},
		{100, 100, 100, 100, 100},
		{1, 1, 1, 0, 1},    // 0.75 rounds up
		{1, 0, 0, 0, 0},    // 0.25 rounds down
		{70, 71, 0, 0, 35}, // 35.25 rounds down
	}
	for _, tc := range cases {
		updated, err := startupLogic.SetScores(admin, startup.Id, tc.team, tc.market, tc.traction, tc.product)
		if err != nil {
			t.Fatalf("SetScores(%d,%d,%d,%d) failed: %v", tc.team, tc.market, tc.traction, tc.product, err)
		}
		if updated.ScoreOverall != tc.overall {
			t.Errorf("SetScores(%d,%d,%d,%d) overall = %d, want %d",
				tc.team, tc.market, tc.traction, tc.product, updated.ScoreOverall, tc.overall)
		}
	}

	// 每次保存直接覆盖旧分
	var kept model.StartupModel
	if err := db.First(&kept, startup.Id).Error; err != nil {
		t.Fatal(err)
	}
	if kept.ScoreTeam != 70 || kept.ScoreOverall != 35 {
		t.Errorf("scores not overwritten: team=%d overall=%d", kept.ScoreTeam, kept.ScoreOverall)
	}
}

func TestSetScoresValidation(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	startupLogic := NewStartupLogic(db, nil)

	if _, err := startupLogic.SetScores(admin, startup.Id, 101, 0, 0, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("score 101 error = %v, want ErrValidation", err)
	}
	if _, err := startupLogic.SetScores(admin, startup.Id, -1, 0, 0, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("score -1 error = %v, want ErrValidation", err)
	}
	if _, err := startupLogic.SetScores(owner, startup.Id, 50, 50, 50, 50); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-admin scoring error = %v, want ErrForbidden", err)
	}
}

func TestUpdateOwnStartupFiltersColumns(t *testing.T) {
	db := newTestDB(t)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startupLogic := NewStartupLogic(db, nil)

	if err := startupLogic.CreateStartup(owner, &model.StartupModel{CompanyName: "Acme"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := startupLogic.UpdateOwnStartup(owner, map[string]interface{}{
		"sector":        "fintech",
		"score_overall": 99, // 管理员字段必须被忽略
		"status":        string(model.StartupStatusShortlisted),
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Sector != "fintech" {
		t.Errorf("sector = %s", updated.Sector)
	}
	if updated.ScoreOverall != 0 || updated.Status != model.StartupStatusDraft {
		t.Errorf("admin-only columns leaked through owner update: %+v", updated)
	}
}

func TestUpdateOwnStartupRejectsBadValueTypes(t *testing.T) {
	db := newTestDB(t)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startupLogic := NewStartupLogic(db, nil)

	if err := startupLogic.CreateStartup(owner, &model.StartupModel{CompanyName: "Acme"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	cases := []struct {
		name    string
		updates map[string]interface{}
	}{
		{"string for numeric column", map[string]interface{}{"founded_year": "twenty nineteen"}},
		{"number for string column", map[string]interface{}{"sector": 42}},
		{"fractional value for integer column", map[string]interface{}{"team_size": 2.5}},
	}
	for _, c := range cases {
		if _, err := startupLogic.UpdateOwnStartup(owner, c.updates); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: error = %v, want ErrValidation", c.name, err)
		}
	}

	// JSON 解码的整数以 float64 到达，必须照常接受
	updated, err := startupLogic.UpdateOwnStartup(owner, map[string]interface{}{
		"founded_year": float64(2019),
		"hq":           "Berlin",
	})
	if err != nil {
		t.Fatalf("whole-number update failed: %v", err)
	}
	if updated.FoundedYear != 2019 || updated.HQ != "Berlin" {
		t.Errorf("update not applied: %+v", updated)
	}
}
