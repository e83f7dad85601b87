package logic

import (
	"errors"
	"testing"

	"github.com/fundbridge/dealroom/internal/model"
)

func TestCreateDealRoomAdminOnly(t *testing.T) {
	db := newTestDB(t)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	roomLogic := NewDealRoomLogic(db)

	err := roomLogic.CreateDealRoom(investor, &model.DealRoomModel{Name: "Nope"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("investor create error = %v, want ErrForbidden", err)
	}
}

func TestDefaultVisibilityScenario(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	room := seedRoom(t, db, admin, investor, startup)
	roomLogic := NewDealRoomLogic(db)

	// 未配置可见性时投资人看到的恰好是14个默认字段
	projection, err := roomLogic.GetStartupForInvestor(investor, room.Id, startup.Id)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	// id 之外应当正好是默认白名单
	if len(projection) != len(DefaultVisibleFields)+1 {
		t.Fatalf("projection has %d entries, want %d: %v", len(projection), len(DefaultVisibleFields)+1, projection)
	}
	for _, name := range DefaultVisibleFields {
		if _, ok := projection[name]; !ok {
			t.Errorf("default field %q missing from projection", name)
		}
	}
	for _, hidden := range []string{"monthlyRevenue", "preMoneyValuation", "pitchDeckUrl"} {
		if _, ok := projection[hidden]; ok {
			t.Errorf("field %q leaked through default allow-list", hidden)
		}
	}
}

func TestSetVisibilityValidatesFields(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	room := seedRoom(t, db, admin, investor, startup)
	roomLogic := NewDealRoomLogic(db)

	err := roomLogic.SetVisibility(admin, room.Id, []string{"companyName", "internalNotes"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown field error = %v, want ErrValidation", err)
	}

	if err := roomLogic.SetVisibility(admin, room.Id, []string{"companyName", "sector"}); err != nil {
		t.Fatalf("valid visibility config failed: %v", err)
	}

	projection, err := roomLogic.GetStartupForInvestor(investor, room.Id, startup.Id)
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if len(projection) != 3 { // companyName, sector, id
		t.Fatalf("projection = %v", projection)
	}
	if projection["companyName"] != "acme" || projection["sector"] != "fintech" {
		t.Errorf("projection values wrong: %v", projection)
	}

	// 配置可被覆盖
	if err := roomLogic.SetVisibility(admin, room.Id, []string{"website"}); err != nil {
		t.Fatalf("visibility update failed: %v", err)
	}
	fields := roomLogic.VisibleFields(room.Id)
	if len(fields) != 1 || fields[0] != "website" {
		t.Errorf("VisibleFields = %v", fields)
	}
}

func TestInvestorMustBeMember(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	outsider := seedAccount(t, db, "other@lp.example", model.RoleInvestor)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	room := seedRoom(t, db, admin, investor, startup)
	roomLogic := NewDealRoomLogic(db)

	if _, _, err := roomLogic.GetRoomForInvestor(outsider, room.Id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider room view error = %v, want ErrForbidden", err)
	}
	if _, err := roomLogic.GetStartupForInvestor(outsider, room.Id, startup.Id); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider startup view error = %v, want ErrForbidden", err)
	}

	rooms, err := roomLogic.GetRoomsForInvestor(outsider)
	if err != nil {
		t.Fatalf("room list failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("outsider sees %d rooms", len(rooms))
	}
}

func TestStartupMustBeInRoom(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	other := seedAccount(t, db, "founder@beta.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	stranger := seedStartup(t, db, other, "beta")
	room := seedRoom(t, db, admin, investor, startup)
	roomLogic := NewDealRoomLogic(db)

	if _, err := roomLogic.GetStartupForInvestor(investor, room.Id, stranger.Id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("non-member startup view error = %v, want ErrNotFound", err)
	}
}

func TestRoomMembershipManagement(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	roomLogic := NewDealRoomLogic(db)

	room := &model.DealRoomModel{Name: "Seed Fund Portfolio"}
	if err := roomLogic.CreateDealRoom(admin, room); err != nil {
		t.Fatalf("create room failed: %v", err)
	}

	if err := roomLogic.AddStartup(admin, room.Id, startup.Id); err != nil {
		t.Fatalf("add startup failed: %v", err)
	}
	if err := roomLogic.AddStartup(admin, room.Id, startup.Id); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate startup membership error = %v, want ErrConflict", err)
	}

	if err := roomLogic.AddInvestor(admin, room.Id, investor.Id); err != nil {
		t.Fatalf("add investor failed: %v", err)
	}
	// 创业公司账户不能作为投资人加入
	if err := roomLogic.AddInvestor(admin, room.Id, owner.Id); !errors.Is(err, ErrValidation) {
		t.Fatalf("startup-as-investor error = %v, want ErrValidation", err)
	}

	if err := roomLogic.RemoveInvestor(admin, room.Id, investor.Id); err != nil {
		t.Fatalf("remove investor failed: %v", err)
	}
	if err := roomLogic.RemoveInvestor(admin, room.Id, investor.Id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double remove error = %v, want ErrNotFound", err)
	}
}

func TestDeleteDealRoomCascades(t *testing.T) {
	db := newTestDB(t)
	admin := seedAccount(t, db, "admin@fund.example", model.RoleAdmin)
	investor := seedAccount(t, db, "fund@lp.example", model.RoleInvestor)
	owner := seedAccount(t, db, "founder@acme.example", model.RoleStartup)
	startup := seedStartup(t, db, owner, "acme")
	room := seedRoom(t, db, admin, investor, startup)
	roomLogic := NewDealRoomLogic(db)

	if err := roomLogic.SetVisibility(admin, room.Id, []string{"companyName"}); err != nil {
		t.Fatalf("set visibility failed: %v", err)
	}
	if err := roomLogic.DeleteDealRoom(admin, room.Id); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	var links int64
	db.Model(&model.DealRoomStartupModel{}).Where("deal_room_id = ?", room.Id).Count(&links)
	if links != 0 {
		t.Errorf("startup links survived deletion")
	}
	db.Model(&model.VisibilityConfigModel{}).Where("deal_room_id = ?", room.Id).Count(&links)
	if links != 0 {
		t.Errorf("visibility config survived deletion")
	}
	if _, err := roomLogic.GetDealRoom(admin, room.Id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted room lookup error = %v, want ErrNotFound", err)
	}
}
